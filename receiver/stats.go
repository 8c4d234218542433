package receiver

import "sync/atomic"

// Stats counts protocol events on the receive side.
type Stats struct {
	fragments  atomic.Uint64
	badHeader  atomic.Uint64
	completed  atomic.Uint64
	expired    atomic.Uint64
	malformed  atomic.Uint64
	overflowed atomic.Uint64
	bytes      atomic.Uint64
}

type StatsSnapshot struct {
	Fragments  uint64 `json:"fragments"`  // fragments accepted
	BadHeader  uint64 `json:"bad_header"` // datagrams dropped on header decode
	Completed  uint64 `json:"completed"`  // messages fully reassembled
	Expired    uint64 `json:"expired"`    // partial messages dropped by timeout
	Malformed  uint64 `json:"malformed"`  // reassembled payloads that failed to decode
	Overflowed uint64 `json:"overflowed"` // results dropped, consumer too slow
	Bytes      uint64 `json:"bytes"`      // payload bytes of completed messages
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Fragments:  s.fragments.Load(),
		BadHeader:  s.badHeader.Load(),
		Completed:  s.completed.Load(),
		Expired:    s.expired.Load(),
		Malformed:  s.malformed.Load(),
		Overflowed: s.overflowed.Load(),
		Bytes:      s.bytes.Load(),
	}
}
