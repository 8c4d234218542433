// Package sender serializes meshes and transmits them as fragmented UDP
// messages. Best effort: fragments are written once, a mid-transmit send
// failure aborts the message and the receiver times the remainder out.
package sender

import (
	"context"
	"log/slog"
	"time"

	arcademia "github.com/Leodas-Codes/ARcademia"
	"github.com/Leodas-Codes/ARcademia/conn"
	"github.com/Leodas-Codes/ARcademia/mesh"
	"github.com/Leodas-Codes/ARcademia/proto"
	"github.com/lysShub/netkit/errorx"
	"github.com/lysShub/netkit/packet"
	"github.com/pkg/errors"
)

type Sender struct {
	config *Config

	conn conn.Conn

	closeErr errorx.CloseErr
}

func New(dst string, config *Config) (*Sender, error) {
	var s = &Sender{config: config.init()}

	var err error
	s.conn, err = conn.Dial(arcademia.Network, dst)
	if err != nil {
		return nil, s.close(err)
	}

	return s, nil
}

func (s *Sender) close(cause error) error {
	cause = errors.WithStack(cause)
	if cause != nil {
		s.config.logger.Error(cause.Error(), errorx.Trace(cause))
	} else {
		s.config.logger.Info("close")
	}
	return s.closeErr.Close(func() (errs []error) {
		errs = append(errs, cause)
		if s.conn != nil {
			errs = append(errs, s.conn.Close())
		}
		return errs
	})
}

func (s *Sender) Close() error { return s.close(nil) }

// Send serializes m and transmits it as one fragmented message, blocking
// until every fragment is written. Serialization and oversize failures
// surface before any network write. Returns the payload byte count.
func (s *Sender) Send(m *mesh.Mesh, capturedAt time.Time) (int, error) {
	payload, err := mesh.Marshal(m, capturedAt)
	if err != nil {
		return 0, err
	}
	return s.transmit(context.Background(), payload)
}

// SendPayload transmits an already serialized payload.
func (s *Sender) SendPayload(payload []byte) (int, error) {
	return s.transmit(context.Background(), payload)
}

func (s *Sender) transmit(ctx context.Context, payload []byte) (int, error) {
	frags, err := Split(payload, s.config.ChunkSize)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	for f, ok := frags.Next(); ok; f, ok = frags.Next() {
		select {
		case <-ctx.Done():
			return 0, errors.WithStack(ctx.Err())
		default:
		}

		pkt := packet.Make(proto.HeaderSize)
		if err := f.Encode(pkt); err != nil {
			return 0, err
		}
		if err := s.conn.Write(pkt); err != nil {
			// no per-fragment retry, the message is lost as a whole
			return 0, errors.WithStack(err)
		}
	}

	s.config.logger.Debug("sent",
		slog.Int("payload", len(payload)),
		slog.Int("fragments", frags.Total()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return len(payload), nil
}
