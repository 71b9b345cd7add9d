package pdu

import "encoding/binary"

// Version is the only RFC 7252 wire version this module speaks.
const Version uint8 = 1

// HeaderSize is the fixed 4-byte RFC 7252 header: Ver(2)|Type(2)|TKL(4),
// Code(8), MessageID(16 BE).
const HeaderSize = 4

// DefaultMaxTokenLength is RFC 7252's own ceiling: TKL is a 4-bit field
// and only 0-8 are valid (9-15 are reserved). A hosting hardware profile
// may configure a tighter bound.
const DefaultMaxTokenLength = 8

// Header is the fixed-size part of a PDU, decoded from its first 4 bytes.
type Header struct {
	Type        Type
	Code        Code
	MessageID   uint16
	TokenLength uint8
}

// EncodeHeader writes the 4-byte header for hdr into dst[:4]. dst must
// have length >= HeaderSize.
func EncodeHeader(dst []byte, hdr Header) {
	dst[0] = (Version&0x3)<<6 | (uint8(hdr.Type)&0x3)<<4 | (hdr.TokenLength & 0xf)
	dst[1] = byte(hdr.Code)
	binary.BigEndian.PutUint16(dst[2:4], hdr.MessageID)
}

// DecodeHeader reads the 4-byte header from buf[:4], rejecting a version
// other than 1. It does not validate the code-0.00 shape; callers (Parse)
// do, since that check needs the rest of the message.
func DecodeHeader(buf []byte) (Header, uint8, error) {
	if len(buf) < HeaderSize {
		return Header{}, 0, ErrBadMessage
	}
	version := buf[0] >> 6
	if version != Version {
		return Header{}, 0, ErrBadMessage
	}
	return Header{
		Type:        Type((buf[0] >> 4) & 0x3),
		Code:        Code(buf[1]),
		MessageID:   binary.BigEndian.Uint16(buf[2:4]),
		TokenLength: buf[0] & 0xf,
	}, buf[0] & 0xf, nil
}
