package proto

import (
	"encoding/binary"

	"github.com/lysShub/netkit/packet"
	"github.com/pkg/errors"
)

// Fragment header, prefixed to every datagram:
//
//	[3]byte magic "ARC" | byte version | uint16 index | uint16 total
//
// multi-byte fields big endian. A message is split into total fragments,
// index in [0, total). There is no message id: one in-flight message per
// sender endpoint, see receiver.
const (
	HeaderSize = 8

	Version = 0x01

	// MaxFragments is the addressing limit of the uint16 total field.
	MaxFragments = 0xffff
)

var magic = [3]byte{'A', 'R', 'C'}

type Header struct {
	Index uint16
	Total uint16
}

func (h *Header) Valid() error {
	if h.Total < 1 {
		return errors.Errorf("zero fragment count")
	}
	if h.Index >= h.Total {
		return errors.Errorf("fragment index %d outside of fragment count %d", h.Index, h.Total)
	}
	return nil
}

func (h *Header) Encode(to *packet.Packet) error {
	if err := h.Valid(); err != nil {
		return err
	}

	to.Attach(binary.BigEndian.AppendUint16(nil, h.Total)...)
	to.Attach(binary.BigEndian.AppendUint16(nil, h.Index)...)
	to.Attach(Version)
	to.Attach(magic[:]...)
	return nil
}

func (h *Header) Decode(from *packet.Packet) error {
	b := from.Bytes()
	if len(b) < HeaderSize {
		return errors.Errorf("packet too short %d", len(b))
	}
	if [3]byte(b[0:3]) != magic {
		return errors.Errorf("magic mismatch %#v", b[0:3])
	}
	if b[3] != Version {
		return errors.Errorf("version %d", b[3])
	}

	h.Index = binary.BigEndian.Uint16(b[4:6])
	h.Total = binary.BigEndian.Uint16(b[6:8])
	if err := h.Valid(); err != nil {
		return err
	}

	from.DetachN(HeaderSize)
	return nil
}
