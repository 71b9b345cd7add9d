package exchange

import (
	"bytes"

	"github.com/hashicorp/go-multierror"

	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
)

// linkFormatContentFormat is the CoAP Content-Format code for
// application/link-format (RFC 6690 §8.1 / RFC 7252 §12.3).
const linkFormatContentFormat = 40

// buildWellKnownCore implements spec §4.5's discovery handler: iterate
// every listener and resource that accepts proto, invoke each
// resource's link-format encoder, and concatenate entries with ",".
// Encoder errors are collected via a multierror rather than aborting
// the walk early — a resource with a broken encoder shouldn't hide
// its siblings from discovery — but the final error (if any) still
// fails the whole response, matching spec's "5.00 is sent" outcome.
func (r *Registry) buildWellKnownCore(proto endpoint.Protocol) ([]byte, error) {
	var out bytes.Buffer
	var errs *multierror.Error
	first := true

	for _, l := range r.snapshot() {
		if !l.Protocols.Allows(proto) {
			continue
		}
		for i := range l.Resources {
			res := &l.Resources[i]
			if res.LinkFormat == nil || !res.Protocols.Allows(proto) {
				continue
			}
			scratch := make([]byte, 0, 128)
			entry, err := res.LinkFormat(scratch)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			if out.Len()+len(entry)+1 > r.cfg.MaxWellKnownCoreSize {
				errs = multierror.Append(errs, options.ErrNoBuffer)
				continue
			}
			if !first {
				out.WriteByte(',')
			}
			out.Write(entry)
			first = false
		}
	}

	if errs.ErrorOrNil() != nil {
		return out.Bytes(), errs
	}
	return out.Bytes(), nil
}

// WellKnownCoreHandler returns the GET /.well-known/core Handler for
// reg, for registration as an ordinary Resource.
func WellKnownCoreHandler(reg *Registry) Handler {
	return func(req message.Message, aux Aux, ctx *Context) int {
		body, err := reg.buildWellKnownCore(aux.Remote.Protocol)
		if err != nil {
			return -2 // not the Ignore sentinel; maps to 5.00 per spec
		}
		resp := message.Message{
			Code:    pdu.Content,
			Options: options.New(make([]byte, 0, 8), 8),
			Payload: message.ContiguousPayload(body),
		}
		if err := resp.Options.AddUint(options.ContentFormat, linkFormatContentFormat); err != nil {
			return -2
		}
		if err := ctx.SendResponse(resp); err != nil {
			return -2
		}
		return 0
	}
}
