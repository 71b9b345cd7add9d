package message

import "github.com/lobaro/unicoap-go/internal/iovec"

// PayloadKind discriminates the two representations a Payload can hold.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadContiguous
	PayloadChunked
)

// Payload is a tagged union over a contiguous byte range and a linked
// iovec chain, per spec §3 "Message": payloads do not own their
// buffers, they are views over storage supplied by the caller.
type Payload struct {
	kind  PayloadKind
	bytes []byte
	chain *iovec.Chunk
}

// ContiguousPayload wraps a single byte slice. An empty slice is
// equivalent to NoPayload.
func ContiguousPayload(b []byte) Payload {
	if len(b) == 0 {
		return Payload{}
	}
	return Payload{kind: PayloadContiguous, bytes: b}
}

// ChunkedPayload wraps a scatter-gather chain. A nil or empty chain is
// equivalent to NoPayload.
func ChunkedPayload(c *iovec.Chunk) Payload {
	if c.Len() == 0 {
		return Payload{}
	}
	return Payload{kind: PayloadChunked, chain: c}
}

// NoPayload is the zero value: an absent payload.
var NoPayload = Payload{}

// Kind reports which representation this payload holds.
func (p Payload) Kind() PayloadKind { return p.kind }

// Len returns the total payload length regardless of representation.
func (p Payload) Len() int {
	switch p.kind {
	case PayloadContiguous:
		return len(p.bytes)
	case PayloadChunked:
		return p.chain.Len()
	default:
		return 0
	}
}

// Bytes returns the contiguous view of this payload, flattening a
// chunked payload into a freshly allocated slice. Callers on the hot
// path that can accept either representation should switch on Kind
// instead, to avoid the flatten copy.
func (p Payload) Bytes() []byte {
	switch p.kind {
	case PayloadContiguous:
		return p.bytes
	case PayloadChunked:
		return p.chain.Flatten()
	default:
		return nil
	}
}

// Chain returns the chunked representation, or nil if this payload is
// contiguous or empty.
func (p Payload) Chain() *iovec.Chunk {
	if p.kind == PayloadChunked {
		return p.chain
	}
	return nil
}
