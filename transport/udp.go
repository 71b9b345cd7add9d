package transport

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv6"

	unicoap "github.com/lobaro/unicoap-go"
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/internal/iovec"
)

// UDPDriver is the UDP/IPv6 transport driver, grounded on
// socket/udp6socket.go: an ipv6.PacketConn listening on all addresses,
// which joins the all-nodes-link-local multicast group on a given
// interface so the core can receive CoAP multicast discovery requests
// there.
type UDPDriver struct {
	conn    *ipv6.PacketConn
	iface   *net.Interface
	local   endpoint.Endpoint
	receive ReceiveFunc
	bufSize int
}

// NewUDPDriver opens a UDP/IPv6 socket on port on all addresses. When
// iface is non-nil it joins the all-nodes link-local multicast group on
// iface, and iface is recorded on the local and remote endpoints; the
// socket itself is not bound to iface. receive is invoked once per
// datagram from Serve's goroutine.
func NewUDPDriver(iface *net.Interface, port, bufSize int, receive ReceiveFunc) (*UDPDriver, error) {
	c, err := net.ListenPacket("udp6", fmt.Sprintf("[::]:%d", port))
	if err != nil {
		return nil, unicoap.Wrap(err, "listen udp6")
	}

	p := ipv6.NewPacketConn(c)
	if iface != nil {
		if err := endpoint.JoinMulticastGroup(p, iface, endpoint.AllNodesLinkLocal); err != nil {
			c.Close()
			return nil, unicoap.Wrap(err, "join multicast group")
		}
	}

	localAddr, _ := c.LocalAddr().(*net.UDPAddr)
	d := &UDPDriver{
		conn:    p,
		iface:   iface,
		local:   endpoint.New(endpoint.UDP, localAddr).WithInterface(iface),
		receive: receive,
		bufSize: bufSize,
	}
	return d, nil
}

// Serve reads datagrams until stop is closed or the socket errors,
// dispatching each to the driver's ReceiveFunc. Per spec §5's
// "Ordering", datagrams are delivered to receive in the order Serve
// reads them off the socket.
func (d *UDPDriver) Serve(stop <-chan struct{}) error {
	done := make(chan struct{})
	go func() {
		<-stop
		d.conn.Close()
		close(done)
	}()

	buf := make([]byte, d.bufSize)
	for {
		n, _, src, err := d.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-done:
				return nil
			default:
				return unicoap.Wrap(err, "read udp6 datagram")
			}
		}
		cp := make([]byte, n)
		copy(cp, buf[:n])

		remoteAddr, _ := src.(*net.UDPAddr)
		remote := endpoint.New(endpoint.UDP, remoteAddr).WithInterface(d.iface)
		d.receive(cp, false, remote, d.local)
	}
}

// SendV implements Driver: it flattens chunk (the PacketConn API has
// no native scatter-gather write) and writes it to remote in one call.
func (d *UDPDriver) SendV(chunk *iovec.Chunk, remote endpoint.Endpoint) error {
	_, err := d.conn.WriteTo(chunk.Flatten(), nil, remote.Addr)
	return err
}

// Send adapts UDPDriver to messaging.Sender, for callers that already
// have a built contiguous wire buffer rather than a chunk chain.
func (d *UDPDriver) Send(remote endpoint.Endpoint, wire []byte) error {
	_, err := d.conn.WriteTo(wire, nil, remote.Addr)
	return err
}

func (d *UDPDriver) LocalAddr() endpoint.Endpoint { return d.local }

func (d *UDPDriver) Close() error { return d.conn.Close() }
