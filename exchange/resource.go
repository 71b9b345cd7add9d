// Package exchange implements spec §4.5's resource dispatch: resource
// lookup across registered listeners, handler invocation, No-Response
// suppression, and the built-in /.well-known/core discovery handler.
package exchange

import (
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/pdu"
)

// MethodMask is a bitmask over request methods, bit c standing for the
// method with code c (methods 1..7 fit in bits 1..7; bit 0 is unused
// since 0 is never a request method). A code above 7 is never allowed.
type MethodMask uint8

func MaskFor(methods ...pdu.Code) MethodMask {
	var m MethodMask
	for _, c := range methods {
		m |= 1 << uint(c)
	}
	return m
}

func (m MethodMask) Allows(method pdu.Code) bool {
	return m&(1<<uint(method)) != 0
}

// ProtocolMask is a bitmask over endpoint.Protocol values, letting a
// resource or listener opt in to a subset of transports.
type ProtocolMask uint8

func ProtocolMaskFor(protocols ...endpoint.Protocol) ProtocolMask {
	var m ProtocolMask
	for _, p := range protocols {
		m |= 1 << uint(p)
	}
	return m
}

// AllProtocols accepts every transport this module models.
const AllProtocols ProtocolMask = 0xff

func (m ProtocolMask) Allows(p endpoint.Protocol) bool {
	return m&(1<<uint(p)) != 0
}

// NoResponseSuppress is the No-Response option's bitmap value: bit
// (class-1) set means the client is uninterested in a response of that
// class (spec §4.5 "No-Response suppression").
type NoResponseSuppress uint32

func (m NoResponseSuppress) Suppresses(code pdu.Code) bool {
	class := code.Class()
	if class == 0 {
		return false
	}
	return m&(1<<uint(class-1)) != 0
}

// Ignore is the sentinel handler return value meaning "drop without
// responding; the caller vouches No-Response permits it" (spec §4.5
// "Request handling").
const Ignore = -1

// Handler processes a matched request. It returns either a positive
// CoAP response status code (an empty-body response is built and
// sent), the Ignore sentinel (drop silently), any other negative value
// (mapped to 5.00 Internal Server Error), or zero after having called
// ctx.SendResponse itself.
type Handler func(req message.Message, aux Aux, ctx *Context) int

// Aux is the auxiliary record spec §4.5 attaches to a matched request:
// the remote/local endpoints and the message's RFC 7252 properties.
type Aux struct {
	Remote     endpoint.Endpoint
	Local      endpoint.Endpoint
	Properties message.Properties
}

// LinkFormatEncoder renders one resource's RFC 6690 link-format entry
// (e.g. "</sensors/temp>;ct=0") into dst, returning the written slice.
// Used by the /.well-known/core handler.
type LinkFormatEncoder func(dst []byte) ([]byte, error)

// Resource is one registered endpoint within a Listener.
type Resource struct {
	Path         string
	MatchSubtree bool
	Methods      MethodMask
	Protocols    ProtocolMask
	Handler      Handler
	LinkFormat   LinkFormatEncoder
}
