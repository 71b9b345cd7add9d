package messaging

import "github.com/lobaro/unicoap-go/endpoint"

// Sender is the narrow interface a transport driver implements to hand
// a built PDU to the network, per spec §6.2's "uniform send function
// sendv(iovec, remote, local?, session?)". The messaging layer depends
// only on this interface, not on any concrete transport, so it never
// imports the transport package.
type Sender interface {
	Send(ep endpoint.Endpoint, wire []byte) error
}
