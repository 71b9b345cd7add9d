// Package endpoint models the transport-tagged socket endpoints that
// messages are sent to and received from: a protocol discriminant plus
// the address/port/interface tuple that discriminant needs.
package endpoint

import (
	"fmt"
	"net"
)

// Protocol discriminates the transport an Endpoint speaks. Room is left
// for reliable transports (TCP/TLS/WS/WSS) alongside the UDP/DTLS pair
// (this module ships a driver for UDP only), per spec §4.3 "tagged union of
// transport-specific socket endpoints".
type Protocol uint8

const (
	UDP Protocol = iota
	DTLS
	TCP
	TLS
	WS
	WSS
)

var protocolNames = [...]string{"udp", "dtls", "tcp", "tls", "ws", "wss"}

func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return fmt.Sprintf("Protocol(%d)", uint8(p))
}

// Reliable reports whether this protocol delivers messages in order
// without the RFC 7252 CON/ACK retransmission layer above it.
func (p Protocol) Reliable() bool {
	switch p {
	case TCP, TLS, WS, WSS:
		return true
	default:
		return false
	}
}

// Secure reports whether this protocol carries DTLS/TLS transport
// security.
func (p Protocol) Secure() bool {
	switch p {
	case DTLS, TLS, WSS:
		return true
	default:
		return false
	}
}

// SessionHandle is an opaque reference to transport-specific session
// state (e.g. a DTLS session) that an Endpoint may carry. The core
// never interprets it; it is round-tripped to the transport driver.
type SessionHandle interface{}

// Endpoint is a socket-backed remote or local address tagged with the
// protocol it was reached over, plus the originating network
// interface (needed to join/leave a multicast group) and an optional
// session handle for connection-oriented/secure transports.
type Endpoint struct {
	Protocol  Protocol
	Addr      *net.UDPAddr
	Interface *net.Interface
	Session   SessionHandle
}

// New constructs a UDP/DTLS endpoint for addr.
func New(proto Protocol, addr *net.UDPAddr) Endpoint {
	return Endpoint{Protocol: proto, Addr: addr}
}

// WithInterface returns a copy of e scoped to the given network
// interface, used for link-local and multicast addresses.
func (e Endpoint) WithInterface(iface *net.Interface) Endpoint {
	e.Interface = iface
	return e
}

// WithSession returns a copy of e carrying the given session handle.
func (e Endpoint) WithSession(s SessionHandle) Endpoint {
	e.Session = s
	return e
}

// Equal compares two endpoints by protocol discriminant and, for
// socket-backed endpoints, the address/port/interface tuple, per spec
// §4.3 "Endpoint equality".
func (e Endpoint) Equal(o Endpoint) bool {
	if e.Protocol != o.Protocol {
		return false
	}
	if (e.Addr == nil) != (o.Addr == nil) {
		return false
	}
	if e.Addr != nil && !addrEqual(e.Addr, o.Addr) {
		return false
	}
	return ifaceEqual(e.Interface, o.Interface)
}

func addrEqual(a, b *net.UDPAddr) bool {
	return a.IP.Equal(b.IP) && a.Port == b.Port && a.Zone == b.Zone
}

func ifaceEqual(a, b *net.Interface) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Index == b.Index
}

// IsMulticast reports whether the endpoint's address is a multicast
// group address. Per spec §4.3 this delegates to a per-protocol
// helper; UDP and DTLS both carry an IP address, so both defer to
// net.IP.IsMulticast.
func (e Endpoint) IsMulticast() bool {
	if e.Addr == nil {
		return false
	}
	return e.Addr.IP.IsMulticast()
}

// String renders the endpoint for logging: "proto://addr%iface".
func (e Endpoint) String() string {
	if e.Addr == nil {
		return e.Protocol.String() + "://<nil>"
	}
	s := fmt.Sprintf("%s://%s", e.Protocol, e.Addr.String())
	if e.Interface != nil {
		s += "%" + e.Interface.Name
	}
	return s
}
