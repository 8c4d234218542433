package conn

import (
	"net/netip"
	"time"

	"github.com/Leodas-Codes/ARcademia/conn/udp"
	"github.com/lysShub/netkit/packet"
	"github.com/pkg/errors"
)

// datagram connect, refer net.UDPConn
type Conn interface {
	ReadFromAddrPort(*packet.Packet) (netip.AddrPort, error)
	WriteToAddrPort(*packet.Packet, netip.AddrPort) error

	// Write requires a dialed conn.
	Write(*packet.Packet) error

	// SetReadDeadline bounds blocking reads so a serve loop can poll
	// its stop signal and expiry sweep.
	SetReadDeadline(time.Time) error

	LocalAddr() netip.AddrPort
	Close() error
}

func Dial(network string, raddr string) (Conn, error) {
	switch network {
	case "udp", "udp4":
		return udp.Dial(network, raddr)
	default:
		return nil, errors.Errorf("not support network %s", network)
	}
}

func Bind(network string, laddr string) (Conn, error) {
	switch network {
	case "udp", "udp4":
		return udp.Bind(network, laddr)
	default:
		return nil, errors.Errorf("not support network %s", network)
	}
}
