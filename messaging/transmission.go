package messaging

import (
	"time"

	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/scheduler"
)

// Transmission tracks one confirmable message awaiting acknowledgement,
// per spec §3 "Transmission record". Its lifetime ends on ACK
// reception, RST reception, timeout exhaustion, or explicit
// cancellation (Cancel).
type Transmission struct {
	Remote    endpoint.Endpoint
	MessageID uint16

	slotIndex int
	pdu       []byte // the carbon copy: byte-identical across retries

	baseTimeout time.Duration // the randomized T at retryIndex 0
	retryIndex  int
	retriesLeft int

	event *scheduler.Event

	// onTimeout is invoked once retransmissions are exhausted.
	onTimeout func()
	// onComplete is invoked on ACK (ack=true) or RST (ack=false) match.
	onComplete func(ack bool)
}

// Cancel ends the transmission immediately: it cancels the retry timer
// and releases the carbon-copy slot and transmission record, without
// invoking onTimeout or onComplete. Used when the caller no longer
// cares about the outcome (e.g. the owning exchange was torn down).
func (s *State) Cancel(tr *Transmission) {
	if tr.event != nil {
		tr.event.Cancel()
	}
	s.mu.Lock()
	delete(s.transmissions, keyFor(tr.Remote, tr.MessageID))
	s.pool.free(tr.slotIndex)
	s.mu.Unlock()
}
