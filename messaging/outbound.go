package messaging

import (
	unicoap "github.com/lobaro/unicoap-go"
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
	"github.com/lobaro/unicoap-go/scheduler"
)

// OutboundClass describes the three inputs spec §4.4 "Outbound" uses
// to pick a wire form: whether the caller asked for reliable delivery,
// whether this is a piggybacked response riding a just-arrived CON
// request's own message ID, and whether it is an observe notification.
type OutboundClass struct {
	Reliable     bool
	Piggyback    bool
	Notification bool
}

// WireType implements spec §4.4's outbound classification table.
// Piggyback always wins (ACK, request's own ID); otherwise reliability
// alone decides CON vs NON. Notification does not change the wire
// type by itself — reliable notifications are CON and unreliable ones
// are NON, the same as any other reliable/unreliable standalone
// message — but callers use it to decide whether to track the
// exchange as an observe relationship above this layer.
func (c OutboundClass) WireType() pdu.Type {
	if c.Piggyback {
		return pdu.ACK
	}
	if c.Reliable {
		return pdu.CON
	}
	return pdu.NON
}

// SendPiggyback replies to a just-arrived CON request with an ACK
// carrying resp's response code/options/payload and the request's own
// message ID. No transmission record is created: an ACK is never
// itself retransmitted.
func (s *State) SendPiggyback(sender Sender, ep endpoint.Endpoint, requestID uint16, resp message.Message, buf []byte) error {
	resp.Properties.Type = pdu.ACK
	resp.Properties.MessageID = requestID
	built, err := resp.Build(buf)
	if err != nil {
		return err
	}
	return sender.Send(ep, built)
}

// SendEmptyACK sends a bare ACK (code 0.00) for requestID, used when
// the exchange layer chooses a separate response instead of piggyback.
func (s *State) SendEmptyACK(sender Sender, ep endpoint.Endpoint, requestID uint16, buf []byte) error {
	hdr := pdu.Header{Type: pdu.ACK, Code: pdu.Empty, MessageID: requestID}
	built, err := pdu.Build(buf, hdr, nil, options.New(nil, 0), nil)
	if err != nil {
		return err
	}
	return sender.Send(ep, built)
}

// SendReset sends an empty RST, used for ping/pong replies and for
// unsolicited-message rejection (spec §4.4 "Unexpected messages").
func (s *State) SendReset(sender Sender, ep endpoint.Endpoint, messageID uint16, buf []byte) error {
	hdr := pdu.Header{Type: pdu.RST, Code: pdu.Empty, MessageID: messageID}
	built, err := pdu.Build(buf, hdr, nil, options.New(nil, 0), nil)
	if err != nil {
		return err
	}
	return sender.Send(ep, built)
}

// SendNonconfirmable sends msg as NON with a fresh message ID. Like an
// ACK, a NON is never retransmitted by this layer.
func (s *State) SendNonconfirmable(sender Sender, ep endpoint.Endpoint, msg message.Message, buf []byte) error {
	msg.Properties.Type = pdu.NON
	msg.Properties.MessageID = s.NextMessageID()
	built, err := msg.Build(buf)
	if err != nil {
		return err
	}
	return sender.Send(ep, built)
}

// SendConfirmable implements spec §4.4's five-step CON send procedure:
// reserve a carbon-copy slot, reserve a transmission record, build the
// PDU directly into the slot, transmit it, and schedule the first
// ACK-timeout. onTimeout is called if retransmissions are exhausted
// without an ACK/RST; onComplete is called on ACK (true) or RST
// (false) match.
func (s *State) SendConfirmable(
	sender Sender,
	q *scheduler.Queue,
	ep endpoint.Endpoint,
	msg message.Message,
	onTimeout func(),
	onComplete func(ack bool),
) (*Transmission, error) {
	s.mu.Lock()
	if len(s.transmissions) >= s.cfg.MaxTransmissions {
		s.mu.Unlock()
		return nil, unicoap.Wrap(options.ErrNoBuffer, "reserve transmission record")
	}
	idx, slot, ok := s.pool.alloc()
	if !ok {
		s.mu.Unlock()
		return nil, unicoap.Wrap(options.ErrNoBuffer, "reserve carbon-copy slot")
	}
	id := s.NextMessageID()
	s.mu.Unlock()

	msg.Properties.Type = pdu.CON
	msg.Properties.MessageID = id

	built, err := msg.Build(slot)
	if err != nil {
		s.mu.Lock()
		s.pool.free(idx)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.pool.stamp(idx, built)
	s.mu.Unlock()

	tr := &Transmission{
		Remote:      ep,
		MessageID:   id,
		slotIndex:   idx,
		pdu:         built,
		baseTimeout: s.initialTimeout(),
		retriesLeft: s.cfg.MaxRetransmit,
		onTimeout:   onTimeout,
		onComplete:  onComplete,
	}

	s.mu.Lock()
	s.transmissions[keyFor(ep, id)] = tr
	s.mu.Unlock()

	if err := sender.Send(ep, built); err != nil {
		s.Cancel(tr)
		return nil, err
	}

	tr.event = q.Schedule(tr.baseTimeout, func() { s.onAckTimeout(sender, tr, q) })
	return tr, nil
}

// onAckTimeout is the retry timer's callback, run on the scheduler
// queue's drain goroutine. If retries remain, it re-sends the exact
// carbon copy and reschedules at the next doubled interval; once
// exhausted, it releases the slot/record and surfaces onTimeout.
func (s *State) onAckTimeout(sender Sender, tr *Transmission, q *scheduler.Queue) {
	s.mu.Lock()
	if tr.retriesLeft == 0 {
		delete(s.transmissions, keyFor(tr.Remote, tr.MessageID))
		s.pool.free(tr.slotIndex)
		s.mu.Unlock()
		if tr.onTimeout != nil {
			tr.onTimeout()
		}
		return
	}
	tr.retriesLeft--
	tr.retryIndex++
	retryIndex := tr.retryIndex
	wire := tr.pdu
	slotIndex := tr.slotIndex
	if !s.pool.verify(slotIndex, wire) {
		log.WithField("remote", tr.Remote.String()).Error("carbon-copy slot integrity check failed before resend")
	}
	s.mu.Unlock()

	sender.Send(tr.Remote, wire)

	next := backoffTimeout(tr.baseTimeout, retryIndex)
	tr.event = q.Schedule(next, func() { s.onAckTimeout(sender, tr, q) })
}
