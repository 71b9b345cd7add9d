package options

import "errors"

// Error categories from the option codec (spec §4.1, §7).
var (
	// ErrBadOption is returned when a delta/length nibble is 15 other than
	// as the payload marker, or an extension/value runs past the buffer.
	ErrBadOption = errors.New("bad option format")

	// ErrPayloadMarker is not a user-visible error: it signals that the
	// parser reached the 0xFF payload marker and stopped reading options.
	ErrPayloadMarker = errors.New("payload marker encountered")

	// ErrNoBuffer is returned when the blob has no room to grow or the
	// entry index is full.
	ErrNoBuffer = errors.New("no buffer")

	// ErrNotFound is returned by accessors when the requested option
	// number is absent.
	ErrNotFound = errors.New("option not found")
)
