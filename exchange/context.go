package exchange

import "github.com/lobaro/unicoap-go/message"

// Context is the per-request context spec §4.5 describes: the matched
// resource plus a "private packet pointer" a handler may consume
// exactly once via SendResponse. sent mirrors that pointer: once true,
// a second SendResponse call is a caller bug, reported as an error
// rather than silently double-sending.
type Context struct {
	Resource *Resource

	sent     bool
	response message.Message
}

// SendResponse lets a handler build and send its own response instead
// of returning a status code, per spec §4.5: "The handler MAY call
// send_response(response, ctx) exactly once." The response is not
// transmitted here — it is recorded and transmitted by the dispatcher
// once the handler returns, whatever it returns, which is where No-Response
// suppression is applied uniformly for both paths.
func (c *Context) SendResponse(resp message.Message) error {
	if c.sent {
		return errAlreadySent
	}
	c.sent = true
	c.response = resp
	return nil
}
