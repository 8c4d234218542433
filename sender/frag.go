package sender

import (
	"github.com/Leodas-Codes/ARcademia/proto"
	"github.com/lysShub/netkit/packet"
	"github.com/pkg/errors"
)

// ErrPayloadTooLarge reports a payload requiring more fragments than the
// header's uint16 total field can address. The caller must raise the
// chunk size or reject the mesh, never truncate.
var ErrPayloadTooLarge = errors.New("payload too large")

// Fragment is one network-transmissible slice of a payload. Body aliases
// the payload, it is not copied.
type Fragment struct {
	Index uint16
	Total uint16
	Body  []byte
}

func (f Fragment) Encode(to *packet.Packet) error {
	hdr := proto.Header{Index: f.Index, Total: f.Total}
	to.Append(f.Body...)
	return hdr.Encode(to)
}

// Fragments yields the fragments of one payload in index order, a finite
// single pass suitable for transmitting without buffering the set.
type Fragments struct {
	payload []byte
	chunk   int
	total   int
	next    int
}

// Split slices payload into ceil(len/chunkSize) fragments, at least one:
// an empty payload still travels as a single empty fragment, the receiver
// has no other way to learn the message exists.
func Split(payload []byte, chunkSize int) (*Fragments, error) {
	if chunkSize < 1 {
		return nil, errors.Errorf("chunk size %d", chunkSize)
	}

	total := (len(payload) + chunkSize - 1) / chunkSize
	if total < 1 {
		total = 1
	}
	if total > proto.MaxFragments {
		return nil, errors.WithMessagef(ErrPayloadTooLarge,
			"%d bytes over %d-byte chunks require %d fragments, max %d",
			len(payload), chunkSize, total, proto.MaxFragments)
	}

	return &Fragments{payload: payload, chunk: chunkSize, total: total}, nil
}

func (s *Fragments) Total() int { return s.total }

func (s *Fragments) Next() (Fragment, bool) {
	if s.next >= s.total {
		return Fragment{}, false
	}

	start := s.next * s.chunk
	end := min(start+s.chunk, len(s.payload))
	f := Fragment{
		Index: uint16(s.next),
		Total: uint16(s.total),
		Body:  s.payload[start:end],
	}
	s.next++
	return f, true
}
