package unicoap

import "time"

// Config gathers the resource limits and timing constants spec §5
// calls "compile-time configurable upper bounds" into a struct, so a
// hosting program can run more than one core with different bounds
// instead of baking them in as package constants the way the teacher's
// ACK_TIMEOUT/ACK_RANDOM_FACTOR/MAX_RETRANSMIT do.
type Config struct {
	// MaxOptions bounds the options container's index array (N_opt).
	MaxOptions int
	// MaxTokenLength bounds the token length accepted by the PDU
	// parser; RFC 7252 itself allows at most 8.
	MaxTokenLength uint8
	// MaxPDUSize bounds the wire size of a single datagram.
	MaxPDUSize int
	// MaxPathBufferSize bounds the stack buffer the exchange layer
	// copies an aggregate Uri-Path into before resource lookup.
	MaxPathBufferSize int
	// MaxTransmissions bounds the number of concurrently outstanding
	// confirmable exchanges (transmission records).
	MaxTransmissions int
	// CarbonCopySlots bounds the number of fixed-size retransmission
	// buffers available at once.
	CarbonCopySlots int
	// MaxWellKnownCoreSize bounds the /.well-known/core response.
	MaxWellKnownCoreSize int

	// AckTimeout is the base confirmable retransmission timeout.
	AckTimeout time.Duration
	// AckRandomFactor widens the initial timeout to a random value in
	// [AckTimeout, AckTimeout * AckRandomFactor).
	AckRandomFactor float64
	// MaxRetransmit bounds the number of retransmissions after the
	// initial send (RFC 7252's RETRANSMISSIONS_MAX semantics).
	MaxRetransmit int

	// DebugCarbonCopyIntegrity enables a CRC16 self-check over each
	// carbon-copy slot before every resend, catching accidental writes
	// into a live slot. Off by default; it costs a checksum pass over
	// the whole PDU on every retransmission.
	DebugCarbonCopyIntegrity bool
}

// DefaultConfig mirrors RFC 7252 §4.8's suggested defaults, the same
// values the teacher hardcodes as ACK_TIMEOUT (2s), ACK_RANDOM_FACTOR
// (1.5), and MAX_RETRANSMIT (4).
func DefaultConfig() Config {
	return Config{
		MaxOptions:           16,
		MaxTokenLength:       8,
		MaxPDUSize:           1152,
		MaxPathBufferSize:    255,
		MaxTransmissions:     16,
		CarbonCopySlots:      16,
		MaxWellKnownCoreSize: 1024,
		AckTimeout:           2 * time.Second,
		AckRandomFactor:      1.5,
		MaxRetransmit:        4,
	}
}
