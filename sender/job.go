package sender

import (
	"context"
	"time"

	"github.com/Leodas-Codes/ARcademia/mesh"
)

// Job is the handle of one background transmit, so a UI thread can hand
// off the blocking sends and still join or abandon them.
type Job struct {
	cancel context.CancelFunc
	done   chan struct{}

	n   int
	err error
}

// Go serializes and transmits m on a background goroutine.
func (s *Sender) Go(m *mesh.Mesh, capturedAt time.Time) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	j := &Job{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(j.done)
		defer cancel()

		payload, err := mesh.Marshal(m, capturedAt)
		if err != nil {
			j.err = err
			return
		}
		j.n, j.err = s.transmit(ctx, payload)
	}()
	return j
}

// Wait joins the job, returning the payload byte count sent.
func (j *Job) Wait() (int, error) {
	<-j.done
	return j.n, j.err
}

// Cancel aborts between fragment writes. Already written fragments
// stand, the receiver drops the partial message by timeout.
func (j *Job) Cancel() { j.cancel() }

func (j *Job) Done() <-chan struct{} { return j.done }
