// Package transport implements the narrow driver interface spec §4.3
// and §7 describe: a uniform scatter-gather send function plus an
// inbound-delivery callback, kept small enough that adding a new
// transport means adding a branch in the core's endpoint tagged union
// rather than a plugin system (spec §10 "Transport polymorphism").
package transport

import (
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/internal/iovec"
)

// ReceiveFunc is the inbound-delivery callback a driver invokes for
// every datagram it reads: the raw bytes, whether the transport
// believes the message is truncated relative to its declared length,
// and the remote/local endpoints it arrived on.
type ReceiveFunc func(data []byte, truncated bool, remote, local endpoint.Endpoint)

// Driver is the per-transport vtable spec §10 calls for: sendv,
// get_local, and session teardown. Drivers do not share code; each
// transport (UDP, DTLS, ...) implements this independently.
type Driver interface {
	// SendV writes chunk to remote without requiring the caller to
	// flatten it first, letting the messaging/exchange layers hand
	// over a carbon-copy buffer or an options container's storage
	// directly.
	SendV(chunk *iovec.Chunk, remote endpoint.Endpoint) error

	// LocalAddr reports the endpoint this driver is bound to.
	LocalAddr() endpoint.Endpoint

	// Close tears down the driver's socket and any per-session state.
	Close() error
}
