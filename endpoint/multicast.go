package endpoint

import (
	"net"

	"golang.org/x/net/ipv6"
)

// AllNodesLinkLocal is the CoAP all-nodes link-local multicast group,
// ff02::1, joined by UDP listeners that want to receive multicast
// requests on a given interface.
var AllNodesLinkLocal = &net.UDPAddr{IP: net.ParseIP("ff02::1")}

// JoinMulticastGroup joins pktConn to group on iface, so inbound
// datagrams addressed to that group are delivered to pktConn. Grounded
// on the teacher's udp6socket.go, which performs the equivalent join
// inline in its constructor; this is pulled out so any UDP listener
// (not just the startup path) can join additional groups at runtime.
func JoinMulticastGroup(pktConn *ipv6.PacketConn, iface *net.Interface, group *net.UDPAddr) error {
	return pktConn.JoinGroup(iface, group)
}

// LeaveMulticastGroup reverses JoinMulticastGroup.
func LeaveMulticastGroup(pktConn *ipv6.PacketConn, iface *net.Interface, group *net.UDPAddr) error {
	return pktConn.LeaveGroup(iface, group)
}
