package exchange

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unicoap "github.com/lobaro/unicoap-go"
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/internal/path"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/messaging"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
)

type capturingSender struct {
	mu   sync.Mutex
	sent []message.Message
	wire [][]byte
}

func (c *capturingSender) Send(ep endpoint.Endpoint, wire []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wire = append(c.wire, append([]byte(nil), wire...))
	return nil
}

func testRegistry() (*Registry, *messaging.State) {
	cfg := unicoap.DefaultConfig()
	cfg.MaxPathBufferSize = 64
	cfg.MaxWellKnownCoreSize = 256
	state := messaging.NewState(cfg, 1)
	return NewRegistry(state, cfg), state
}

func testEndpoint() endpoint.Endpoint {
	return endpoint.New(endpoint.UDP, nil)
}

// decodeCode extracts just the response code from a built wire PDU,
// without needing a pre-sized options container.
func decodeCode(t *testing.T, wire []byte) pdu.Code {
	t.Helper()
	hdr, _, err := pdu.DecodeHeader(wire)
	require.NoError(t, err)
	return hdr.Code
}

func requestFor(method pdu.Code, uriPath string, msgType pdu.Type, id uint16) message.Message {
	opts := options.New(make([]byte, 0, 64), 64)
	_ = opts.SetPath(options.URIPath, uriPath)
	return message.Message{
		Code:    method,
		Options: opts,
		Properties: message.Properties{
			Type:      msgType,
			MessageID: id,
		},
	}
}

func TestLookupExactMatchInvokesHandler(t *testing.T) {
	reg, _ := testRegistry()
	invoked := false
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "sensors/temperature",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
		Handler: func(req message.Message, aux Aux, ctx *Context) int {
			invoked = true
			return int(pdu.Content)
		},
	})
	reg.Register(l)

	sender := &capturingSender{}
	req := requestFor(pdu.GET, "/sensors/temperature", pdu.CON, 42)
	err := reg.HandleRequest(sender, testEndpoint(), testEndpoint(), req, make([]byte, 256))
	require.NoError(t, err)
	assert.True(t, invoked)
	require.Len(t, sender.wire, 1)
}

func TestLookupMethodNotAllowedReturns405(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "sensors/temperature",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
		Handler:   func(message.Message, Aux, *Context) int { return int(pdu.Content) },
	})
	reg.Register(l)

	result := reg.lookup(endpoint.UDP, pdu.PUT, mustPath("sensors/temperature"))
	assert.False(t, result.Found)
	assert.Equal(t, pdu.MethodNotAllowed, result.Status)
}

func TestLookupNoPathMatchReturns404(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "sensors/temperature",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
	})
	reg.Register(l)

	result := reg.lookup(endpoint.UDP, pdu.GET, mustPath("actuators/leds"))
	assert.False(t, result.Found)
	assert.Equal(t, pdu.NotFound, result.Status)
}

func TestMatchSubtreeAllowsDeeperPaths(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:         "sensors",
		MatchSubtree: true,
		Methods:      MaskFor(pdu.GET),
		Protocols:    AllProtocols,
		Handler:      func(message.Message, Aux, *Context) int { return int(pdu.Content) },
	})
	reg.Register(l)

	result := reg.lookup(endpoint.UDP, pdu.GET, mustPath("sensors/temperature/inside"))
	assert.True(t, result.Found)
}

func TestIgnoreSentinelDropsWithoutResponse(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "quiet",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
		Handler:   func(message.Message, Aux, *Context) int { return Ignore },
	})
	reg.Register(l)

	sender := &capturingSender{}
	req := requestFor(pdu.GET, "/quiet", pdu.CON, 1)
	err := reg.HandleRequest(sender, testEndpoint(), testEndpoint(), req, make([]byte, 256))
	require.NoError(t, err)
	assert.Empty(t, sender.wire)
}

func TestNegativeNonIgnoreMapsToInternalServerError(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "broken",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
		Handler:   func(message.Message, Aux, *Context) int { return -2 },
	})
	reg.Register(l)

	sender := &capturingSender{}
	req := requestFor(pdu.GET, "/broken", pdu.CON, 2)
	err := reg.HandleRequest(sender, testEndpoint(), testEndpoint(), req, make([]byte, 256))
	require.NoError(t, err)
	require.Len(t, sender.wire, 1)
	assert.Equal(t, pdu.InternalServerError, decodeCode(t, sender.wire[0]))
}

func TestHandlerSendResponseIsUsedVerbatim(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "custom",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
		Handler: func(req message.Message, aux Aux, ctx *Context) int {
			resp := message.Message{Code: pdu.Created, Options: options.New(nil, 0)}
			_ = ctx.SendResponse(resp)
			return 0
		},
	})
	reg.Register(l)

	sender := &capturingSender{}
	req := requestFor(pdu.GET, "/custom", pdu.CON, 3)
	err := reg.HandleRequest(sender, testEndpoint(), testEndpoint(), req, make([]byte, 256))
	require.NoError(t, err)
	require.Len(t, sender.wire, 1)
	assert.Equal(t, pdu.Created, decodeCode(t, sender.wire[0]))
}

func TestDoubleSendResponseIsRejected(t *testing.T) {
	ctx := &Context{}
	require.NoError(t, ctx.SendResponse(message.Message{Code: pdu.Content}))
	require.Error(t, ctx.SendResponse(message.Message{Code: pdu.Changed}))
}

func TestNoResponseSuppressesMatchingClass(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols, Resource{
		Path:      "muted",
		Methods:   MaskFor(pdu.GET),
		Protocols: AllProtocols,
		Handler:   func(message.Message, Aux, *Context) int { return int(pdu.Content) },
	})
	reg.Register(l)

	sender := &capturingSender{}
	req := requestFor(pdu.GET, "/muted", pdu.CON, 4)
	// Suppress class 2 (success): bit (2-1) = bit 1 = value 2.
	require.NoError(t, req.Options.AddUint(options.NoResponse, 2))
	err := reg.HandleRequest(sender, testEndpoint(), testEndpoint(), req, make([]byte, 256))
	require.NoError(t, err)
	assert.Empty(t, sender.wire)
}

func TestWellKnownCoreConcatenatesEntries(t *testing.T) {
	reg, _ := testRegistry()
	l := NewListener("l1", AllProtocols,
		Resource{
			Path:       "a",
			Protocols:  AllProtocols,
			LinkFormat: func(dst []byte) ([]byte, error) { return append(dst, []byte("</a>")...), nil },
		},
		Resource{
			Path:       "b",
			Protocols:  AllProtocols,
			LinkFormat: func(dst []byte) ([]byte, error) { return append(dst, []byte("</b>")...), nil },
		},
	)
	reg.Register(l)

	out, err := reg.buildWellKnownCore(endpoint.UDP)
	require.NoError(t, err)
	assert.Equal(t, "</a>,</b>", string(out))
}

func mustPath(s string) path.Path {
	return path.Parse(s)
}
