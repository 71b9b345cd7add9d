package messaging

import (
	"github.com/sirupsen/logrus"

	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
)

var log = logrus.WithField("component", "messaging")

// InboundAction tells the caller what to do with an inbound message
// after messaging-layer classification.
type InboundAction int

const (
	// ActionDrop means the message was fully handled here (or is a
	// protocol error/duplicate); the caller does nothing further.
	ActionDrop InboundAction = iota
	// ActionPassUp means the exchange layer should process the
	// message as a request or an expected response.
	ActionPassUp
	// ActionDeregister means an RST(0.00) arrived for a known
	// exchange; the exchange layer should also treat this as an
	// observe-cancellation hint (RFC 7641 §3.6).
	ActionDeregister
)

// InboundResult is the outcome of classifying one inbound message.
type InboundResult struct {
	Action InboundAction

	// Reply is set when the messaging layer itself must answer
	// immediately (ping/pong), before any exchange-layer processing.
	Reply      message.Message
	SendReply  bool
	Confirmed  bool // true if a matching transmission was found (ACK/RST)
}

// ClassifyInbound implements spec §4.4's inbound classification table.
// It consults the transmission table keyed by (remote, message ID) and
// reports what the caller (the transport's receive path) should do
// next. This runs synchronously during "pre-processing" (spec §4.4
// "Pre-processing vs processing"): it never invokes a user handler.
func (s *State) ClassifyInbound(ep endpoint.Endpoint, msg message.Message) InboundResult {
	switch msg.Properties.Type {
	case pdu.ACK:
		return s.classifyACK(ep, msg)
	case pdu.RST:
		return s.classifyRST(ep, msg)
	case pdu.CON:
		if msg.Code == pdu.Empty {
			return pingReply(msg.Properties.MessageID)
		}
		return InboundResult{Action: ActionPassUp}
	case pdu.NON:
		if msg.Code == pdu.Empty {
			log.WithField("remote", ep.String()).Debug("dropping empty NON")
			return InboundResult{Action: ActionDrop}
		}
		return InboundResult{Action: ActionPassUp}
	default:
		return InboundResult{Action: ActionDrop}
	}
}

// classifyACK validates msg.Code before ever touching the transmission
// table: only ACK(0.00) and ACK carrying a response code are allowed to
// complete a transmission (spec §4.4's table). An ACK with a
// request-class code is a protocol error and must be dropped without
// marking anything complete, so a single malformed or spoofed packet
// that happens to reuse a live (remote, messageID) key cannot cancel a
// legitimate in-flight confirmable exchange still owed its real ACK.
func (s *State) classifyACK(ep endpoint.Endpoint, msg message.Message) InboundResult {
	switch {
	case msg.Code == pdu.Empty:
		if _, ok := s.complete(ep, msg.Properties.MessageID, true); !ok {
			// Per spec's Open Question resolution: a late ACK whose
			// transmission was already freed is treated as unmatched
			// and silently dropped, not as an error.
			return InboundResult{Action: ActionDrop}
		}
		return InboundResult{Action: ActionDrop, Confirmed: true}
	case msg.Code.IsSuccess() || msg.Code.IsError():
		if _, ok := s.complete(ep, msg.Properties.MessageID, true); !ok {
			return InboundResult{Action: ActionDrop}
		}
		return InboundResult{Action: ActionPassUp, Confirmed: true}
	default:
		log.WithField("code", msg.Code.String()).Warn("protocol error: ACK with request-class code")
		return InboundResult{Action: ActionDrop}
	}
}

// classifyRST validates msg.Code before touching the transmission
// table, for the same reason classifyACK does: only RST(0.00) is
// allowed to cancel a transmission. A non-empty RST is a protocol
// error and must leave any matching transmission untouched.
func (s *State) classifyRST(ep endpoint.Endpoint, msg message.Message) InboundResult {
	if msg.Code != pdu.Empty {
		log.WithField("code", msg.Code.String()).Warn("protocol error: RST with non-empty code")
		return InboundResult{Action: ActionDrop}
	}
	if _, ok := s.complete(ep, msg.Properties.MessageID, false); !ok {
		return InboundResult{Action: ActionDrop}
	}
	return InboundResult{Action: ActionDeregister, Confirmed: true}
}

// complete looks up and removes the transmission matching (ep, id),
// cancelling its retry timer and freeing its carbon-copy slot, and
// invokes its onComplete callback. It reports whether a match existed.
func (s *State) complete(ep endpoint.Endpoint, id uint16, ack bool) (*Transmission, bool) {
	key := keyFor(ep, id)
	s.mu.Lock()
	tr, ok := s.transmissions[key]
	if ok {
		delete(s.transmissions, key)
		s.pool.free(tr.slotIndex)
	}
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	if tr.event != nil {
		tr.event.Cancel()
	}
	if tr.onComplete != nil {
		tr.onComplete(ack)
	}
	return tr, true
}

// pingReply builds the RST "pong" for an inbound CON ping (code 0.00),
// per spec §4.4 and Scenario F: emitted before any other processing,
// with no handler invoked.
func pingReply(messageID uint16) InboundResult {
	return InboundResult{
		Action: ActionDrop,
		Reply: message.Message{
			Code:    pdu.Empty,
			Options: options.New(nil, 0),
			Properties: message.Properties{
				Type:      pdu.RST,
				MessageID: messageID,
			},
		},
		SendReply: true,
	}
}
