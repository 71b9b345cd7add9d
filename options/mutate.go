package options

// Add inserts a new option with number n and value v, preserving ascending
// order; duplicates are allowed. It fails with ErrNoBuffer if the entry
// index is full or the blob would exceed storage_capacity, leaving the
// container untouched.
//
// Rather than shifting bytes in place (as the original C implementation
// does with raw pointer arithmetic), Add rebuilds the blob from the
// current entries plus the new one into a scratch buffer and only commits
// it once the capacity check has passed. This preserves every documented
// invariant — ascending order, contiguous offsets, atomic failure — while
// staying within what a bounds-checked Go slice can express.
func (o *Options) Add(n Number, v []byte) error {
	if len(o.entries) >= o.maxEntries {
		return ErrNoBuffer
	}
	i := o.insertionIndex(n)
	return o.rebuildWith(i, n, v)
}

// Set overwrites the first option with number n if present; otherwise it
// behaves like Add.
func (o *Options) Set(n Number, v []byte) error {
	if idx, ok := o.indexOf(n); ok {
		return o.replace(idx, v)
	}
	return o.Add(n, v)
}

// RemoveAll removes every option with number n, adjusting the delta of the
// next distinct option and shifting the remaining blob and indices.
func (o *Options) RemoveAll(n Number) error {
	if !o.Contains(n) {
		return nil
	}
	kept := make([]decoded, 0, len(o.entries))
	for _, e := range o.entries {
		if e.Number == n {
			continue
		}
		kept = append(kept, decoded{number: e.Number, value: o.Value(e)})
	}
	return o.commit(kept)
}

// replace overwrites the value of the entry at idx without changing its
// option number, which cannot change that entry's delta or its neighbors'.
func (o *Options) replace(idx int, v []byte) error {
	kept := o.snapshot()
	kept[idx].value = v
	return o.commit(kept)
}

// rebuildWith inserts (n, v) at logical position i among the current
// entries and recommits the whole blob.
func (o *Options) rebuildWith(i int, n Number, v []byte) error {
	cur := o.snapshot()
	kept := make([]decoded, 0, len(cur)+1)
	kept = append(kept, cur[:i]...)
	kept = append(kept, decoded{number: n, value: v})
	kept = append(kept, cur[i:]...)
	return o.commit(kept)
}

// snapshot copies every entry's (number, value) pair out of the current
// blob before it is overwritten.
func (o *Options) snapshot() []decoded {
	out := make([]decoded, len(o.entries))
	for i, e := range o.entries {
		val := o.Value(e)
		cp := make([]byte, len(val))
		copy(cp, val)
		out[i] = decoded{number: e.Number, value: cp}
	}
	return out
}

// commit encodes the given (ascending) sequence of options into a scratch
// buffer, checks it against storage_capacity, and only then installs it as
// the container's new state. This rebuild-and-recommit exists to keep
// Add/Set/RemoveAll atomic on failure: they mutate entries that already
// have valid committed state behind them, and a failed insert/resize must
// leave that state untouched. Parse has no prior state to protect, so it
// decodes directly over the caller's buffer instead of routing through
// here — see Parse's own comment.
func (o *Options) commit(opts []decoded) error {
	if len(opts) > o.maxEntries {
		return ErrNoBuffer
	}

	scratch := make([]byte, 0, cap(o.buf))
	entries := make([]Entry, 0, len(opts))
	prev := Number(0)
	for _, d := range opts {
		start := len(scratch)
		delta := int(d.number) - int(prev)
		next := encodeEntry(scratch, delta, d.value)
		if len(next) > cap(o.buf) {
			return ErrNoBuffer
		}
		scratch = next
		entries = append(entries, Entry{Offset: start, Size: len(scratch) - start, Number: d.number})
		prev = d.number
	}

	o.buf = o.buf[:0]
	o.buf = append(o.buf, scratch...)
	o.entries = entries
	return nil
}
