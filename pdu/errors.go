package pdu

import "errors"

// ErrBadMessage is returned when the header is malformed: wrong version,
// an oversize token, or an illegal 0.00-code shape (spec §4.2, §7).
var ErrBadMessage = errors.New("bad message")

// ErrNoBuffer is returned by the builders when the destination buffer (or
// scratch header buffer) is too small.
var ErrNoBuffer = errors.New("no buffer")
