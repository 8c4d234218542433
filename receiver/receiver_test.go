package receiver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Leodas-Codes/ARcademia/mesh"
	"github.com/Leodas-Codes/ARcademia/sender"
	"github.com/stretchr/testify/require"
)

func quad() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices:  []mesh.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Triangles: []mesh.Triangle{{0, 1, 2}, {0, 2, 3}},
	}
}

func serve(t *testing.T, config *Config) *Receiver {
	t.Helper()
	if config.LogPath == "" {
		config.LogPath = t.TempDir() + "/recv.log"
	}

	r, err := New("127.0.0.1:0", config)
	require.NoError(t, err)
	go r.Serve(context.Background())
	t.Cleanup(func() { r.Close() })
	return r
}

func dial(t *testing.T, r *Receiver, chunk int) *sender.Sender {
	t.Helper()
	s, err := sender.New(r.LocalAddr().String(), &sender.Config{
		ChunkSize: chunk,
		LogPath:   t.TempDir() + "/send.log",
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_EndToEnd(t *testing.T) {
	r := serve(t, &Config{})
	s := dial(t, r, 16)

	at := time.Unix(1700000000, 500000000)
	n, err := s.Send(quad(), at)
	require.NoError(t, err)

	select {
	case res := <-r.Results():
		require.NoError(t, res.Err)
		require.Equal(t, quad(), res.Mesh)
		require.WithinDuration(t, at, res.CapturedAt, time.Microsecond)
		require.Equal(t, n, res.Payload)
	case <-time.After(time.Second * 5):
		t.Fatal("no mesh received")
	}

	st := r.Stats()
	require.Equal(t, uint64(1), st.Completed)
	require.Equal(t, uint64(n), st.Bytes)
	require.Greater(t, st.Fragments, uint64(1))
}

func Test_Loss_Timeout(t *testing.T) {
	r := serve(t, &Config{Timeout: time.Millisecond * 50})

	payload, err := mesh.Marshal(quad(), time.Now())
	require.NoError(t, err)
	frags, err := sender.Split(payload, 16)
	require.NoError(t, err)

	peer, err := net.DialUDP("udp4", nil, net.UDPAddrFromAddrPort(r.LocalAddr()))
	require.NoError(t, err)
	defer peer.Close()

	// drop the last fragment
	total := frags.Total()
	for i := 0; i < total-1; i++ {
		f, ok := frags.Next()
		require.True(t, ok)
		writeFragment(t, peer, f)
	}

	// wait out the expiry sweep
	require.Eventually(t, func() bool { return r.Stats().Expired == 1 },
		time.Second*2, time.Millisecond*10)
	require.Zero(t, r.Stats().Completed)

	// a fresh message is accepted afterwards
	s := dial(t, r, 16)
	_, err = s.Send(quad(), time.Now())
	require.NoError(t, err)

	select {
	case res := <-r.Results():
		require.NoError(t, res.Err)
		require.Equal(t, quad(), res.Mesh)
	case <-time.After(time.Second * 5):
		t.Fatal("receiver stuck after expiry")
	}
}

func Test_StrayTraffic_Ignored(t *testing.T) {
	r := serve(t, &Config{})

	peer, err := net.DialUDP("udp4", nil, net.UDPAddrFromAddrPort(r.LocalAddr()))
	require.NoError(t, err)
	defer peer.Close()

	_, err = peer.Write([]byte("SIP/2.0 200 OK"))
	require.NoError(t, err)
	_, err = peer.Write([]byte{'A', 'R', 'C', 0x02, 0, 0, 0, 1}) // future version
	require.NoError(t, err)

	require.Eventually(t, func() bool { return r.Stats().BadHeader == 2 },
		time.Second*2, time.Millisecond*10)
	require.Zero(t, r.Stats().Fragments)

	// still serving
	s := dial(t, r, 16)
	_, err = s.Send(quad(), time.Now())
	require.NoError(t, err)
	select {
	case res := <-r.Results():
		require.NoError(t, res.Err)
	case <-time.After(time.Second * 5):
		t.Fatal("receiver stuck after stray traffic")
	}
}

func Test_MalformedPayload_Reported(t *testing.T) {
	r := serve(t, &Config{})

	peer, err := net.DialUDP("udp4", nil, net.UDPAddrFromAddrPort(r.LocalAddr()))
	require.NoError(t, err)
	defer peer.Close()

	frags, err := sender.Split([]byte("definitely not a mesh payload"), 8)
	require.NoError(t, err)
	for f, ok := frags.Next(); ok; f, ok = frags.Next() {
		writeFragment(t, peer, f)
	}

	select {
	case res := <-r.Results():
		require.ErrorIs(t, res.Err, mesh.ErrMalformedPayload)
		require.Nil(t, res.Mesh)
	case <-time.After(time.Second * 5):
		t.Fatal("no result for malformed payload")
	}
	require.Equal(t, uint64(1), r.Stats().Malformed)

	// the loop survives and accepts the next message
	s := dial(t, r, 16)
	_, err = s.Send(quad(), time.Now())
	require.NoError(t, err)
	select {
	case res := <-r.Results():
		require.NoError(t, res.Err)
		require.Equal(t, quad(), res.Mesh)
	case <-time.After(time.Second * 5):
		t.Fatal("receiver stuck after malformed payload")
	}
}

func Test_Serve_Stop(t *testing.T) {
	r, err := New("127.0.0.1:0", &Config{LogPath: t.TempDir() + "/recv.log"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Serve(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second * 2):
		t.Fatal("serve did not stop promptly")
	}
}

func writeFragment(t *testing.T, conn *net.UDPConn, f sender.Fragment) {
	t.Helper()
	b := []byte{'A', 'R', 'C', 0x01, byte(f.Index >> 8), byte(f.Index), byte(f.Total >> 8), byte(f.Total)}
	_, err := conn.Write(append(b, f.Body...))
	require.NoError(t, err)
}
