package exchange

import (
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/messaging"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
)

// HandleRequest implements spec §4.5's "Request handling": resource
// lookup, handler invocation, and the handler-return-value contract.
// buf is scratch space for building the response PDU; it should be
// sized to the core's configured MaxPDUSize.
func (r *Registry) HandleRequest(sender messaging.Sender, remote, local endpoint.Endpoint, req message.Message, buf []byte) error {
	uriPath := "/"
	if req.Options != nil {
		uriPath = req.Options.JoinPath(options.URIPath)
	}
	requestPath, ok := r.copyPath(uriPath)
	if !ok {
		return r.respondStatus(sender, remote, req, pdu.NotFound, buf)
	}

	result := r.lookup(remote.Protocol, req.Code, requestPath)
	if !result.Found {
		return r.respondStatus(sender, remote, req, result.Status, buf)
	}

	aux := Aux{Remote: remote, Local: local, Properties: req.Properties}
	ctx := &Context{Resource: result.Resource}
	ret := result.Resource.Handler(req, aux, ctx)

	switch {
	case ctx.sent:
		// Handler built and queued its own response via SendResponse;
		// send it now, uniformly applying No-Response suppression.
		return r.respond(sender, remote, req, ctx.response, buf)
	case ret > 0:
		resp := message.Message{Code: pdu.Code(ret), Options: options.New(nil, 0)}
		return r.respond(sender, remote, req, resp, buf)
	case ret == Ignore:
		return nil
	default:
		// Any other negative value, or a bare zero without a prior
		// SendResponse call (a handler contract violation): both map
		// to 5.00, per spec §4.5's "any other negative value" rule.
		resp := message.Message{Code: pdu.InternalServerError, Options: options.New(nil, 0)}
		return r.respond(sender, remote, req, resp, buf)
	}
}

// respondStatus builds an empty-body response carrying code and sends
// it through the same path as a handler-built response.
func (r *Registry) respondStatus(sender messaging.Sender, remote endpoint.Endpoint, req message.Message, code pdu.Code, buf []byte) error {
	resp := message.Message{Code: code, Options: options.New(nil, 0)}
	return r.respond(sender, remote, req, resp, buf)
}

// respond applies No-Response suppression (spec §4.5) and then picks
// the wire form: a piggybacked ACK for a CON request, or a plain NON
// for a NON request. Separate (non-piggybacked) responses are a
// caller-driven two-step process built on messaging.SendEmptyACK plus
// a later SendConfirmable/SendNonconfirmable, outside this synchronous
// dispatch path.
func (r *Registry) respond(sender messaging.Sender, remote endpoint.Endpoint, req message.Message, resp message.Message, buf []byte) error {
	if req.Options != nil && req.Options.Contains(options.NoResponse) {
		suppress := NoResponseSuppress(req.Options.GetUint(options.NoResponse))
		if suppress.Suppresses(resp.Code) {
			return nil
		}
	}
	if req.Properties.Type == pdu.CON {
		return r.state.SendPiggyback(sender, remote, req.Properties.MessageID, resp, buf)
	}
	return r.state.SendNonconfirmable(sender, remote, resp, buf)
}
