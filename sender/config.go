package sender

import (
	"log/slog"
	"os"

	arcademia "github.com/Leodas-Codes/ARcademia"
)

type Config struct {
	// ChunkSize is the fragment body size, default arcademia.DefaultChunkSize.
	ChunkSize int

	LogPath string
	logger  *slog.Logger
}

func (c *Config) init() *Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = arcademia.DefaultChunkSize
	}

	var err error
	var fh *os.File
	if c.LogPath == "" {
		fh = os.Stdout
	} else {
		fh, err = os.OpenFile(c.LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
		if err != nil {
			panic(err)
		}
	}
	c.logger = slog.New(slog.NewJSONHandler(fh, nil))

	return c
}
