package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	arcademia "github.com/Leodas-Codes/ARcademia"
	"github.com/pkg/errors"
)

type config struct {
	Listen    string
	Timeout   time.Duration
	Backlog   int
	StatsAddr string
	LogPath   string
}

func defaultConfig() config {
	return config{
		Listen:  ":" + strconv.Itoa(arcademia.DefaultPort),
		Timeout: arcademia.DefaultTimeout,
	}
}

// arcrecv config.toml key mapping, overlaid onto defaults.
type fileConfig struct {
	Listen    string `toml:"listen"`
	TimeoutMS int    `toml:"timeout_ms"`
	Backlog   int    `toml:"backlog"`
	StatsAddr string `toml:"stats_addr"`
	LogPath   string `toml:"log_path"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.WithMessage(err, "load arcrecv config")
	}

	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("timeout_ms") {
		cfg.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("backlog") {
		cfg.Backlog = raw.Backlog
	}
	if meta.IsDefined("stats_addr") {
		cfg.StatsAddr = strings.TrimSpace(raw.StatsAddr)
	}
	if meta.IsDefined("log_path") {
		cfg.LogPath = strings.TrimSpace(raw.LogPath)
	}
	return cfg, nil
}
