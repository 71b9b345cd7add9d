// Package iovec implements the scatter-gather chunk chain used by the PDU
// builder to hand a transport driver a message without an intermediate
// copy: a header chunk, an options blob chunk, a marker byte, and payload
// chunks, linked together the way spec §3 "Payload" describes the
// representation-tagged payload union.
package iovec

// Chunk is one link of a scatter-gather chain. Empty chunks are never
// linked in: Chain skips them so a trailing empty payload does not leave
// a dangling zero-length write.
type Chunk struct {
	Bytes []byte
	Next  *Chunk
}

// Chain links the given byte slices into a Chunk chain in order, omitting
// any that are empty. It returns nil if every slice was empty.
func Chain(parts ...[]byte) *Chunk {
	var head, tail *Chunk
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		c := &Chunk{Bytes: p}
		if head == nil {
			head = c
		} else {
			tail.Next = c
		}
		tail = c
	}
	return head
}

// Len returns the total number of bytes across the whole chain starting
// at c (nil-safe).
func (c *Chunk) Len() int {
	n := 0
	for cur := c; cur != nil; cur = cur.Next {
		n += len(cur.Bytes)
	}
	return n
}

// Flatten copies every chunk's bytes into one contiguous buffer. Unlike
// the zero-copy chain itself, this is for callers (tests, transports
// without native scatter-gather support) that need a single slice.
func (c *Chunk) Flatten() []byte {
	out := make([]byte, 0, c.Len())
	for cur := c; cur != nil; cur = cur.Next {
		out = append(out, cur.Bytes...)
	}
	return out
}

// Slices returns the chain as a [][]byte, suitable for handing to
// net.Buffers or a writev-style transport call.
func (c *Chunk) Slices() [][]byte {
	var out [][]byte
	for cur := c; cur != nil; cur = cur.Next {
		out = append(out, cur.Bytes)
	}
	return out
}
