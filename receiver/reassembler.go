package receiver

import (
	"time"

	"github.com/Leodas-Codes/ARcademia/proto"
)

// Reassembler rebuilds one in-flight message from one sender endpoint.
// The header carries no message id, so at most one message per sender is
// collecting at a time: a fragment whose total disagrees with the current
// collection starts a new message and the old partial data is discarded.
//
// Not safe for concurrent use, instances are owned by the receive loop
// (shard by sender endpoint for parallelism).
type Reassembler struct {
	total    int
	bodies   [][]byte
	seen     []bool
	received int
	last     time.Time
}

func NewReassembler(total uint16, now time.Time) *Reassembler {
	return &Reassembler{
		total:  int(total),
		bodies: make([][]byte, total),
		seen:   make([]bool, total),
		last:   now,
	}
}

// Feed stores one fragment body. Duplicate indexes overwrite and never
// error. Once all total slots are filled it returns the reconstructed
// payload and true; the Reassembler must then be discarded.
func (r *Reassembler) Feed(hdr proto.Header, body []byte, now time.Time) ([]byte, bool) {
	if int(hdr.Total) != r.total {
		// new message from this sender, drop the old partial state
		*r = *NewReassembler(hdr.Total, now)
	}
	r.last = now

	i := int(hdr.Index)
	// the read buffer is reused, keep our own copy
	r.bodies[i] = append(r.bodies[i][:0], body...)
	if !r.seen[i] {
		r.seen[i] = true
		r.received++
	}

	if r.received < r.total {
		return nil, false
	}

	var n int
	for _, b := range r.bodies {
		n += len(b)
	}
	payload := make([]byte, 0, n)
	for _, b := range r.bodies {
		payload = append(payload, b...)
	}
	return payload, true
}

// Expired reports whether no fragment arrived for timeout.
func (r *Reassembler) Expired(timeout time.Duration, now time.Time) bool {
	return now.Sub(r.last) > timeout
}
