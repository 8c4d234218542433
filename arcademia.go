// ARcademia streams triangle meshes from the desktop viewer to an AR
// device over UDP. The payload is fragmented on the wire, best effort:
// no acks, no retransmission, a lost fragment drops the whole message
// on the receiver after a timeout.
package arcademia

import "time"

const (
	Network = "udp4"

	// DefaultPort is the AR device's listen port.
	DefaultPort = 51234

	// DefaultChunkSize is the fragment body size. Must stay under the
	// practical UDP payload ceiling so the IP layer does not fragment
	// our fragments again.
	DefaultChunkSize = 60000

	// DefaultTimeout drops a partially reassembled message that
	// received no fragment for this long.
	DefaultTimeout = time.Second * 2
)
