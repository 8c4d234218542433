package receiver

import (
	"log/slog"
	"os"
	"time"

	arcademia "github.com/Leodas-Codes/ARcademia"
)

type Config struct {
	// MaxRecvBuff is the datagram read buffer size, default 64 KiB
	// (one fragment never exceeds one UDP datagram).
	MaxRecvBuff int

	// Timeout drops a partial message that received no fragment for
	// this long, default arcademia.DefaultTimeout.
	Timeout time.Duration

	// Backlog is the results channel depth, default 8. Completed
	// meshes are dropped with a warn log when the consumer lags.
	Backlog int

	LogPath string
	logger  *slog.Logger

	poll time.Duration
}

func (c *Config) init() *Config {
	if c.MaxRecvBuff == 0 {
		c.MaxRecvBuff = 64 * 1024
	}
	if c.Timeout == 0 {
		c.Timeout = arcademia.DefaultTimeout
	}
	if c.Backlog == 0 {
		c.Backlog = 8
	}

	// read deadline granularity, bounds stop latency and expiry sweep
	c.poll = min(c.Timeout/4, time.Millisecond*250)
	if c.poll < time.Millisecond {
		c.poll = time.Millisecond
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
