// Package message defines the transport-agnostic message envelope that
// sits above pdu: a code, a token, an options view, and a payload, plus
// the RFC 7252 specific properties (message ID, type, notification
// flag) carried alongside it.
package message

import (
	"github.com/lobaro/unicoap-go/internal/iovec"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
)

// Properties carries the auxiliary data a message needs beyond its
// code/token/options/payload. For RFC 7252, that is the 16-bit message
// ID and the CON/NON/ACK/RST type; Notification marks an exchange as
// an observe (RFC 7641) notification rather than a plain request or
// response, which the messaging layer needs to pick the right wire
// form (see spec §4.4 "Outbound").
type Properties struct {
	MessageID    uint16
	Type         pdu.Type
	Notification bool
}

// Message is a view over caller-supplied storage: it does not own its
// token, options, or payload bytes.
type Message struct {
	Code       pdu.Code
	Token      []byte
	Options    *options.Options
	Payload    Payload
	Properties Properties
}

// IsRequest reports whether Code is a request method.
func (m Message) IsRequest() bool { return m.Code.IsRequest() }

// IsSuccess reports whether Code is a 2.xx response.
func (m Message) IsSuccess() bool { return m.Code.IsSuccess() }

// IsError reports whether Code is a 4.xx or 5.xx response.
func (m Message) IsError() bool { return m.Code.IsError() }

// FromParsed builds a Message view over an already-decoded PDU. opts
// must be the same container Parse populated, so that Options stays a
// zero-copy view over the original wire bytes.
func FromParsed(p pdu.Parsed, opts *options.Options) Message {
	return Message{
		Code:    p.Header.Code,
		Token:   p.Token,
		Options: opts,
		Payload: ContiguousPayload(p.Payload),
		Properties: Properties{
			MessageID: p.Header.MessageID,
			Type:      p.Header.Type,
		},
	}
}

// Header projects a Message's code/token/type/ID back down into a
// pdu.Header, ready for Build or BuildScatterGather.
func (m Message) Header() pdu.Header {
	return pdu.Header{
		Type:        m.Properties.Type,
		Code:        m.Code,
		MessageID:   m.Properties.MessageID,
		TokenLength: uint8(len(m.Token)),
	}
}

// Build renders the message into dst as a contiguous PDU. A chunked
// payload is first flattened into a fresh copy (see Payload.Bytes);
// BuildScatterGather references it without copying.
func (m Message) Build(dst []byte) ([]byte, error) {
	return pdu.Build(dst, m.Header(), m.Token, m.Options, m.Payload.Bytes())
}

// BuildScatterGather renders the message as an iovec chain, writing
// only the fixed header (and token) into headerBuf. If the payload is
// contiguous it is wrapped in a single-chunk Chain; if chunked, the
// existing chain is referenced directly without copying.
func (m Message) BuildScatterGather(headerBuf []byte) (*iovec.Chunk, error) {
	payload := m.Payload.Chain()
	if payload == nil && m.Payload.Kind() == PayloadContiguous {
		payload = iovec.Chain(m.Payload.Bytes())
	}
	return pdu.BuildScatterGather(headerBuf, m.Header(), m.Token, m.Options, payload)
}
