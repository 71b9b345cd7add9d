package messaging

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	unicoap "github.com/lobaro/unicoap-go"
	"github.com/lobaro/unicoap-go/endpoint"
)

// State is the mutex-guarded global state spec §3 "Global state" and
// §5 "Shared-resource policy" describe: one mutex protecting the
// carbon-copy pool and the transmission table, plus an independent
// atomic counter seeding outbound message IDs. The exchange package's
// listener registry is guarded by this same mutex (via the exported
// Lock/Unlock below) rather than one of its own, so the whole core
// still shares a single lock the way spec.md requires, without
// messaging importing exchange.
type State struct {
	mu sync.Mutex

	cfg    unicoap.Config
	nextID atomic.Uint32 // low 16 bits used; wraps per spec §4.4

	pool          *carbonCopyPool
	transmissions map[transmissionKey]*Transmission

	rng *rand.Rand
}

// transmissionKey identifies a transmission by the remote endpoint's
// canonical address and the message ID. A plain endpoint.Endpoint
// isn't used directly as a map key because two endpoint.Endpoint
// values describing the same peer may carry distinct *net.UDPAddr
// pointers (e.g. one per received datagram); comparing the string form
// instead gives by-value equality consistent with endpoint.Equal.
type transmissionKey struct {
	proto endpoint.Protocol
	addr  string
	id    uint16
}

func keyFor(ep endpoint.Endpoint, id uint16) transmissionKey {
	addr := ""
	if ep.Addr != nil {
		addr = ep.Addr.String()
	}
	return transmissionKey{proto: ep.Protocol, addr: addr, id: id}
}

// NewState constructs a State from cfg, seeding the message-ID counter
// from seed (a caller-supplied random 16-bit value, per spec §4.4
// "seeded once at startup from a random source").
func NewState(cfg unicoap.Config, seed uint16) *State {
	s := &State{
		cfg:           cfg,
		pool:          newCarbonCopyPool(cfg.CarbonCopySlots, cfg.MaxPDUSize),
		transmissions: make(map[transmissionKey]*Transmission, cfg.MaxTransmissions),
		rng:           rand.New(rand.NewSource(int64(seed))),
	}
	s.pool.debug = cfg.DebugCarbonCopyIntegrity
	s.nextID.Store(uint32(seed))
	return s
}

// Lock/Unlock expose State's mutex so the exchange package's listener
// registry can share it, per the single-mutex policy in spec §5.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// NextMessageID returns the next outbound message ID, via an atomic
// fetch-add independent of the mutex (spec §9 "Atomic counter").
func (s *State) NextMessageID() uint16 {
	return uint16(s.nextID.Add(1))
}

// Allocated reports the number of carbon-copy slots currently in use,
// for the "carbon-copy discipline" invariant (spec §8.1): it must
// equal the number of live transmission records.
func (s *State) Allocated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.allocated()
}

// Live reports the number of live transmission records.
func (s *State) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transmissions)
}

func (s *State) freeSlotLocked(idx int) {
	s.pool.free(idx)
}

// initialTimeout draws T0 uniformly from [AckTimeout, AckTimeout *
// AckRandomFactor), per spec §4.4 step 5.
func (s *State) initialTimeout() time.Duration {
	base := s.cfg.AckTimeout
	if s.cfg.AckRandomFactor <= 1 {
		return base
	}
	span := float64(base) * (s.cfg.AckRandomFactor - 1)
	s.mu.Lock()
	jitter := s.rng.Float64() * span
	s.mu.Unlock()
	return base + time.Duration(jitter)
}

// backoffTimeout recomputes T = base * 2^retryIndex, per spec §4.4's
// "Retransmission timer" section.
func backoffTimeout(base time.Duration, retryIndex int) time.Duration {
	return base << uint(retryIndex)
}
