package options

// Iterator is a stateful cursor over a container's index array, yielding
// (number, value) pairs in ascending order. Iterators are invalidated by
// any mutating operation (Add/Set/RemoveAll) on the same container.
type Iterator struct {
	opts *Options
	idx  int
}

// Iter returns a fresh iterator positioned before the first entry.
func (o *Options) Iter() *Iterator {
	return &Iterator{opts: o}
}

// Next advances the cursor and returns the next entry's number and value,
// or ok=false once the index array is exhausted.
func (it *Iterator) Next() (n Number, value []byte, ok bool) {
	if it.idx >= len(it.opts.entries) {
		return 0, nil, false
	}
	e := it.opts.entries[it.idx]
	it.idx++
	return e.Number, it.opts.Value(e), true
}

// Find advances the cursor until an entry with number n is reached,
// returning it, or ok=false if none remains (since entries are ascending,
// Find does not wrap back to look for numbers it has already passed).
func (it *Iterator) Find(n Number) (value []byte, ok bool) {
	for {
		num, v, more := it.Next()
		if !more {
			return nil, false
		}
		if num == n {
			return v, true
		}
	}
}
