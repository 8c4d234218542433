package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	arcademia "github.com/Leodas-Codes/ARcademia"
	"github.com/pkg/errors"
)

type config struct {
	Dest      string
	Port      int
	ChunkSize int
	LogPath   string
}

func defaultConfig() config {
	return config{
		Dest:      "192.168.0.10",
		Port:      arcademia.DefaultPort,
		ChunkSize: arcademia.DefaultChunkSize,
	}
}

// arcsend config.toml key mapping, overlaid onto defaults.
type fileConfig struct {
	Dest      string `toml:"dest"`
	Port      int    `toml:"port"`
	ChunkSize int    `toml:"chunk_size"`
	LogPath   string `toml:"log_path"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.WithMessage(err, "load arcsend config")
	}

	if meta.IsDefined("dest") {
		cfg.Dest = strings.TrimSpace(raw.Dest)
	}
	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}
	if meta.IsDefined("chunk_size") {
		cfg.ChunkSize = raw.ChunkSize
	}
	if meta.IsDefined("log_path") {
		cfg.LogPath = strings.TrimSpace(raw.LogPath)
	}
	return cfg, nil
}
