package udp

import (
	"log/slog"
	"net"
	"net/netip"
	"time"

	"github.com/lysShub/netkit/debug"
	"github.com/lysShub/netkit/errorx"
	"github.com/lysShub/netkit/packet"
	"github.com/pkg/errors"
)

type udpConn struct {
	conn *net.UDPConn
}

func Bind(network string, laddr string) (*udpConn, error) {
	addr, err := net.ResolveUDPAddr(network, laddr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	conn, err := net.ListenUDP(network, addr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &udpConn{conn}, nil
}

func Dial(network string, raddr string) (*udpConn, error) {
	addr, err := net.ResolveUDPAddr(network, raddr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	conn, err := net.DialUDP(network, nil, addr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &udpConn{conn}, nil
}

func (c *udpConn) ReadFromAddrPort(b *packet.Packet) (netip.AddrPort, error) {
	n, addr, err := c.conn.ReadFromUDPAddrPort(b.Bytes())
	if err != nil {
		return netip.AddrPort{}, err
	}
	if debug.Debug() && n == b.Data() {
		slog.Warn("too short warning", errorx.Trace(nil))
	}
	b.SetData(n)
	return addr, nil
}

func (c *udpConn) WriteToAddrPort(b *packet.Packet, dst netip.AddrPort) error {
	_, err := c.conn.WriteToUDPAddrPort(b.Bytes(), dst)
	return err
}

func (c *udpConn) Write(b *packet.Packet) error {
	_, err := c.conn.Write(b.Bytes())
	return err
}

func (c *udpConn) SetReadDeadline(t time.Time) error {
	return errors.WithStack(c.conn.SetReadDeadline(t))
}

func (c *udpConn) Close() error { return c.conn.Close() }

func (c *udpConn) LocalAddr() netip.AddrPort {
	return netip.MustParseAddrPort(c.conn.LocalAddr().String())
}
