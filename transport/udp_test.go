package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lobaro/unicoap-go/endpoint"
)

// TestUDPDriverRoundTripsOverLoopback exercises a real ::1 round trip:
// one driver's Send reaches the other's ReceiveFunc with matching
// bytes and a remote endpoint whose address resolves back to the
// sender's bound port.
func TestUDPDriverRoundTripsOverLoopback(t *testing.T) {
	received := make(chan []byte, 1)

	server, err := NewUDPDriver(nil, 0, 1500, func(data []byte, truncated bool, remote, local endpoint.Endpoint) {
		require.False(t, truncated)
		received <- data
	})
	require.NoError(t, err)
	defer server.Close()

	stop := make(chan struct{})
	go server.Serve(stop)
	defer close(stop)

	client, err := NewUDPDriver(nil, 0, 1500, func([]byte, bool, endpoint.Endpoint, endpoint.Endpoint) {})
	require.NoError(t, err)
	defer client.Close()

	target := endpoint.New(endpoint.UDP, &net.UDPAddr{IP: net.ParseIP("::1"), Port: server.LocalAddr().Addr.Port})
	require.NoError(t, client.Send(target, []byte("ping")))

	select {
	case data := <-received:
		require.Equal(t, "ping", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for datagram")
	}
}

func TestUDPDriverLocalAddrReflectsBoundPort(t *testing.T) {
	d, err := NewUDPDriver(nil, 0, 1500, func([]byte, bool, endpoint.Endpoint, endpoint.Endpoint) {})
	require.NoError(t, err)
	defer d.Close()

	require.NotNil(t, d.LocalAddr().Addr)
	require.NotZero(t, d.LocalAddr().Addr.Port)
	require.Equal(t, endpoint.UDP, d.LocalAddr().Protocol)
}
