package endpoint

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualComparesProtocolAddrAndInterface(t *testing.T) {
	a1 := New(UDP, &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5683})
	a2 := New(UDP, &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5683})
	require.True(t, a1.Equal(a2))

	b := New(DTLS, &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5683})
	require.False(t, a1.Equal(b))

	c := New(UDP, &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5684})
	require.False(t, a1.Equal(c))

	withIface := a1.WithInterface(&net.Interface{Index: 2, Name: "eth0"})
	require.False(t, a1.Equal(withIface))
	require.True(t, withIface.Equal(withIface))
}

func TestIsMulticast(t *testing.T) {
	mcast := New(UDP, AllNodesLinkLocal)
	require.True(t, mcast.IsMulticast())

	unicast := New(UDP, &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5683})
	require.False(t, unicast.IsMulticast())
}

func TestReliableAndSecure(t *testing.T) {
	require.False(t, UDP.Reliable())
	require.False(t, UDP.Secure())
	require.True(t, DTLS.Secure())
	require.True(t, TCP.Reliable())
	require.True(t, WSS.Reliable())
	require.True(t, WSS.Secure())
}

func TestStringIncludesInterface(t *testing.T) {
	e := New(UDP, &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5683}).
		WithInterface(&net.Interface{Index: 1, Name: "eth0"})
	require.Contains(t, e.String(), "eth0")
	require.Contains(t, e.String(), "udp://")
}
