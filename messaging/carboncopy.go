package messaging

import "github.com/GiterLab/crc16"

var carbonCopyCRCTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// carbonCopyPool is the fixed-size pool spec §3/§9 describes: a fixed
// number of PDU-sized byte slots. A slot's first byte is 0 when free;
// a valid RFC 7252 header never encodes to 0x00 (the version field
// alone occupies the top two bits and MUST be 1), so that byte doubles
// as the pool's free/allocated sentinel without a separate bitmap.
//
// Every method here assumes the caller holds State.mu; the pool has no
// lock of its own, per spec §5's "single mutex guards the listener
// list, the carbon-copy pool, and the transmission table."
type carbonCopyPool struct {
	slots     [][]byte
	checksums []uint16
	debug     bool
}

func newCarbonCopyPool(count, slotSize int) *carbonCopyPool {
	slots := make([][]byte, count)
	for i := range slots {
		slots[i] = make([]byte, slotSize)
	}
	return &carbonCopyPool{slots: slots, checksums: make([]uint16, count)}
}

// allocSentinel is stamped into a slot's first byte the instant alloc
// claims it, before the caller ever releases State.mu. Build later
// overwrites it with the PDU's real (always non-zero) first header
// byte; the placeholder only has to survive until then, so its exact
// value does not matter beyond being non-zero.
const allocSentinel = 0xff

// alloc claims the first free slot and returns its index and a
// zero-length, full-capacity view of it, or ok=false if every slot is
// in use. Claiming means stamping the slot's sentinel byte non-zero
// before returning, so a second alloc call made before the caller has
// built a PDU into this slot (e.g. by another goroutine racing for
// State.mu right after this one releases it) cannot observe the same
// slot as free and hand it out twice.
func (p *carbonCopyPool) alloc() (idx int, buf []byte, ok bool) {
	for i, slot := range p.slots {
		if slot[0] == 0 {
			slot[0] = allocSentinel
			return i, slot[:0:len(slot)], true
		}
	}
	return 0, nil, false
}

// free resets slot idx's sentinel byte, making it available again.
func (p *carbonCopyPool) free(idx int) {
	p.slots[idx][0] = 0
}

// stamp records a CRC16-MODBUS checksum over built, the carbon copy
// just written into slot idx. Only meaningful when the pool runs with
// debug integrity checks enabled (see verify).
func (p *carbonCopyPool) stamp(idx int, built []byte) {
	if !p.debug {
		return
	}
	h := crc16.New(carbonCopyCRCTable)
	h.Write(built)
	p.checksums[idx] = h.Sum16()
}

// verify recomputes slot idx's checksum and compares it against the
// value stamp recorded, catching a carbon copy clobbered between sends
// by a bug elsewhere in the pool (the carbon-copy discipline invariant
// assumes nothing writes a live slot except the original Build call).
// It always reports true when debug integrity checks are disabled.
func (p *carbonCopyPool) verify(idx int, current []byte) bool {
	if !p.debug {
		return true
	}
	h := crc16.New(carbonCopyCRCTable)
	h.Write(current)
	return h.Sum16() == p.checksums[idx]
}

// allocated reports how many slots are currently in use, for tests and
// diagnostics (spec §8.1's "carbon-copy discipline" invariant).
func (p *carbonCopyPool) allocated() int {
	n := 0
	for _, slot := range p.slots {
		if slot[0] != 0 {
			n++
		}
	}
	return n
}
