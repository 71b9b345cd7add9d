package options

// Parse decodes a run of option triplets from the front of buf into the
// container, stopping at the 0xFF payload marker or the end of buf. It
// returns the number of bytes consumed (including the marker byte, if
// found) and whether a marker was found.
//
// buf need not share a backing array with the buffer the container was
// constructed over: Value() views point into buf afterwards.
//
// Parse installs buf itself as the container's storage rather than
// routing through commit: there is no prior state to protect against a
// failed rebuild the way Add/Set/RemoveAll need, so decoding directly
// into entries that index buf keeps this the zero-copy view over the
// caller's wire buffer spec §3/§9 call for, instead of paying for a
// fresh copy on every parse.
func (o *Options) Parse(buf []byte) (consumed int, foundMarker bool, err error) {
	entries := make([]Entry, 0, o.maxEntries)
	running := Number(0)
	offset := 0
	for offset < len(buf) {
		d, derr := decodeOne(buf[offset:], running)
		if derr == ErrPayloadMarker {
			foundMarker = true
			offset++
			break
		}
		if derr != nil {
			return 0, false, derr
		}
		entries = append(entries, Entry{Offset: offset, Size: d.size, Number: d.number})
		running = d.number
		offset += d.size
		if len(entries) > o.maxEntries {
			return 0, false, ErrNoBuffer
		}
	}

	optionBytes := offset
	if foundMarker {
		optionBytes--
	}
	o.buf = buf[:optionBytes:cap(buf)]
	o.entries = entries
	return offset, foundMarker, nil
}
