package pdu

import "github.com/lobaro/unicoap-go/options"

// Parsed is the result of a successful parse: the fixed header, the
// token, and the payload bytes. The caller's options container (passed
// into Parse) holds the decoded option entries.
type Parsed struct {
	Header    Header
	Token     []byte
	Payload   []byte
	Truncated bool
}

// Parse decodes data into hdr/token/opts/payload, per spec §4.2.
//
// opts may be constructed over any buffer: options.Parse installs the
// byte range that follows the token as the container's storage, so the
// decoded options stay a view over data. On success, opts is tightened
// to exactly the options region so later mutation cannot intrude on the
// payload bytes aliased by Parsed.Payload.
//
// Parse accepts a message whose options parse cleanly but whose byte
// range ends mid-payload: Payload holds whatever payload bytes were
// present. Parse itself cannot tell such a message from a complete one
// and never sets Truncated; ParseTruncated sets it from the length the
// transport reports. Nothing in the exchange package reads Truncated,
// so no 4.13 Request Entity Too Large reply is produced for it.
func Parse(data []byte, opts *options.Options, maxTokenLength uint8) (Parsed, error) {
	hdr, tkl, err := DecodeHeader(data)
	if err != nil {
		return Parsed{}, err
	}
	if tkl > maxTokenLength {
		return Parsed{}, ErrBadMessage
	}

	if hdr.Code == Empty {
		if tkl != 0 || len(data) != HeaderSize {
			return Parsed{}, ErrBadMessage
		}
		return Parsed{Header: hdr}, nil
	}

	if len(data) < HeaderSize+int(tkl) {
		return Parsed{}, ErrBadMessage
	}
	token := data[HeaderSize : HeaderSize+int(tkl)]
	rest := data[HeaderSize+int(tkl):]

	if len(rest) == 0 {
		return Parsed{Header: hdr, Token: token}, nil
	}

	consumed, foundMarker, err := opts.Parse(rest)
	if err != nil {
		return Parsed{}, err
	}
	opts.Tighten()

	if !foundMarker {
		return Parsed{Header: hdr, Token: token}, nil
	}

	if consumed >= len(rest) {
		// A marker with nothing after it is a message format error
		// (RFC 7252 §3): it MUST be treated as end-of-options with
		// no payload, which is itself a malformed shape.
		return Parsed{}, ErrBadMessage
	}

	return Parsed{Header: hdr, Token: token, Payload: rest[consumed:]}, nil
}

// ParseTruncated is like Parse but tolerates a rest slice that is a
// prefix of the full wire range — used when a transport driver hands up
// fewer bytes than Content-Length/Size1 implied. The options region must
// still be complete and well-formed; only the payload may be short.
func ParseTruncated(data []byte, opts *options.Options, maxTokenLength uint8, fullLength int) (Parsed, error) {
	p, err := Parse(data, opts, maxTokenLength)
	if err != nil {
		return Parsed{}, err
	}
	if fullLength > len(data) {
		p.Truncated = true
	}
	return p, nil
}
