// Package receiver reassembles fragmented mesh messages off one UDP
// socket. Reassembly state is keyed by sender endpoint, one in-flight
// message per sender; partial messages expire after an inactivity
// timeout. No error terminates the loop short of the socket itself.
package receiver

import (
	"context"
	"log/slog"
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	arcademia "github.com/Leodas-Codes/ARcademia"
	"github.com/Leodas-Codes/ARcademia/conn"
	"github.com/Leodas-Codes/ARcademia/mesh"
	"github.com/Leodas-Codes/ARcademia/proto"
	"github.com/lysShub/netkit/debug"
	"github.com/lysShub/netkit/errorx"
	"github.com/lysShub/netkit/packet"
	"github.com/pkg/errors"
)

// Result is one reassembled message. Err is set when the payload did not
// decode back into a mesh, the loop keeps serving either way.
type Result struct {
	From       netip.AddrPort
	Mesh       *mesh.Mesh
	CapturedAt time.Time
	Payload    int
	Err        error
}

type Receiver struct {
	config *Config
	start  atomic.Bool

	conn conn.Conn

	// owned by the serve goroutine, no lock
	sessions map[netip.AddrPort]*Reassembler

	stats   Stats
	results chan Result

	closeErr errorx.CloseErr
}

func New(addr string, config *Config) (*Receiver, error) {
	var r = &Receiver{
		config:   config.init(),
		sessions: map[netip.AddrPort]*Reassembler{},
	}
	r.results = make(chan Result, r.config.Backlog)

	var err error
	r.conn, err = conn.Bind(arcademia.Network, addr)
	if err != nil {
		return nil, r.close(err)
	}

	return r, nil
}

func (r *Receiver) close(cause error) error {
	cause = errors.WithStack(cause)
	if cause != nil {
		r.config.logger.Error(cause.Error(), errorx.Trace(cause))
	} else {
		r.config.logger.Info("close")
	}
	return r.closeErr.Close(func() (errs []error) {
		errs = append(errs, cause)
		if r.conn != nil {
			errs = append(errs, r.conn.Close())
		}
		return errs
	})
}

func (r *Receiver) Close() error { return r.close(nil) }

// Results delivers reassembled meshes, one Result per message.
func (r *Receiver) Results() <-chan Result { return r.results }

func (r *Receiver) Stats() StatsSnapshot { return r.stats.Snapshot() }

func (r *Receiver) LocalAddr() netip.AddrPort { return r.conn.LocalAddr() }

// Serve reads datagrams until ctx is done or the receiver is closed.
// Fragments are processed strictly in arrival order on this goroutine.
func (r *Receiver) Serve(ctx context.Context) error {
	if r.start.Swap(true) {
		return errors.Errorf("receiver started")
	}
	r.config.logger.Info("start",
		slog.String("listen", r.conn.LocalAddr().String()),
		slog.Duration("timeout", r.config.Timeout),
		slog.Bool("debug", debug.Debug()),
	)

	var (
		pkt = packet.Make(0, r.config.MaxRecvBuff)
		hdr = &proto.Header{}
	)
	for {
		select {
		case <-ctx.Done():
			return r.close(nil)
		default:
		}

		if err := r.conn.SetReadDeadline(time.Now().Add(r.config.poll)); err != nil {
			return r.close(err)
		}
		src, err := r.conn.ReadFromAddrPort(pkt.Sets(0, 0xffff))
		now := time.Now()
		if err != nil {
			if os.IsTimeout(err) {
				r.sweep(now)
				continue
			}
			return r.close(err)
		}

		if err := hdr.Decode(pkt); err != nil {
			// stray traffic on the port, not our problem
			r.stats.badHeader.Add(1)
			r.config.logger.Debug("dropped datagram", slog.String("from", src.String()), slog.String("reason", err.Error()))
			continue
		}
		r.stats.fragments.Add(1)

		ses := r.sessions[src]
		if ses == nil {
			ses = NewReassembler(hdr.Total, now)
			r.sessions[src] = ses
		}
		payload, done := ses.Feed(*hdr, pkt.Bytes(), now)
		if !done {
			r.sweep(now)
			continue
		}
		delete(r.sessions, src)
		r.stats.completed.Add(1)
		r.stats.bytes.Add(uint64(len(payload)))

		res := Result{From: src, Payload: len(payload)}
		res.Mesh, res.CapturedAt, res.Err = mesh.Unmarshal(payload)
		if res.Err != nil {
			r.stats.malformed.Add(1)
			r.config.logger.Warn(res.Err.Error(), slog.String("from", src.String()), errorx.Trace(res.Err))
		}

		select {
		case r.results <- res:
		default:
			r.stats.overflowed.Add(1)
			r.config.logger.Warn("results backlog full, message dropped", slog.String("from", src.String()))
		}
	}
}

// sweep drops expired partial messages. Bounded by the read deadline
// granularity, expiry is eventual even on an idle socket.
func (r *Receiver) sweep(now time.Time) {
	for src, ses := range r.sessions {
		if ses.Expired(r.config.Timeout, now) {
			delete(r.sessions, src)
			r.stats.expired.Add(1)
			r.config.logger.Debug("message expired", slog.String("from", src.String()))
		}
	}
}
