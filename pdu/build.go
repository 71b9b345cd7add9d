package pdu

import (
	"github.com/lobaro/unicoap-go/internal/iovec"
	"github.com/lobaro/unicoap-go/options"
)

// Build writes the full wire-format PDU — header, token, options blob,
// optional payload marker, and payload — into dst and returns the
// written slice. It fails with ErrNoBuffer if dst's capacity is too
// small, per spec §4.2 "Contiguous" builder contract.
func Build(dst []byte, hdr Header, token []byte, opts *options.Options, payload []byte) ([]byte, error) {
	hdr.TokenLength = uint8(len(token))
	needed := HeaderSize + len(token) + opts.StorageSize()
	if len(payload) > 0 {
		needed += 1 + len(payload)
	}
	if cap(dst) < needed {
		return nil, ErrNoBuffer
	}

	dst = dst[:0]
	var hdrBytes [HeaderSize]byte
	EncodeHeader(hdrBytes[:], hdr)
	dst = append(dst, hdrBytes[:]...)
	dst = append(dst, token...)
	dst = append(dst, opts.Bytes()...)
	if len(payload) > 0 {
		dst = append(dst, 0xff)
		dst = append(dst, payload...)
	}
	return dst, nil
}

// BuildScatterGather writes the header (and token) into the caller's
// headerBuf — typically a small stack-local array — and produces an
// iovec chain [header] -> [options blob] -> [0xFF] -> [payload chunks...]
// referencing headerBuf, opts' storage, and payload directly, without an
// intermediate copy. Trailing chunks are skipped if empty: an empty
// options blob contributes no link, and a nil/empty payload omits both
// the marker and itself.
func BuildScatterGather(headerBuf []byte, hdr Header, token []byte, opts *options.Options, payload *iovec.Chunk) (*iovec.Chunk, error) {
	hdr.TokenLength = uint8(len(token))
	if len(headerBuf) < HeaderSize+len(token) {
		return nil, ErrNoBuffer
	}
	EncodeHeader(headerBuf, hdr)
	copy(headerBuf[HeaderSize:], token)

	head := &iovec.Chunk{Bytes: headerBuf[:HeaderSize+len(token)]}
	cur := head

	if ob := opts.Bytes(); len(ob) > 0 {
		cur.Next = &iovec.Chunk{Bytes: ob}
		cur = cur.Next
	}

	if payload.Len() > 0 {
		cur.Next = &iovec.Chunk{Bytes: []byte{0xff}}
		cur = cur.Next
		cur.Next = payload
	}

	return head, nil
}
