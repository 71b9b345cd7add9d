// Command unicoapd is a minimal example server: it wires a UDP
// transport driver, the messaging layer's retransmission state, and an
// exchange registry together behind one registered resource plus the
// built-in /.well-known/core discovery handler. The teacher ships no
// cmd/ binary of its own (it is a library consumed by firmware), so
// this follows GiterLab-go-coap's server.go idiom instead: a main that
// builds the pieces, registers handlers, and blocks in a serve loop.
package main

import (
	"flag"
	"log"
	"time"

	unicoap "github.com/lobaro/unicoap-go"
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/exchange"
	"github.com/lobaro/unicoap-go/message"
	"github.com/lobaro/unicoap-go/messaging"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
	"github.com/lobaro/unicoap-go/scheduler"
	"github.com/lobaro/unicoap-go/transport"
)

func main() {
	port := flag.Int("port", 5683, "UDP port to listen on")
	flag.Parse()

	cfg := unicoap.DefaultConfig()
	seed := uint16(time.Now().UnixNano())
	state := messaging.NewState(cfg, seed)
	registry := exchange.NewRegistry(state, cfg)
	queue := scheduler.NewQueue()

	registerResources(registry)

	var driver *transport.UDPDriver
	receive := func(data []byte, truncated bool, remote, local endpoint.Endpoint) {
		handleDatagram(state, registry, driver, cfg, data, remote, local)
	}

	d, err := transport.NewUDPDriver(nil, *port, cfg.MaxPDUSize, receive)
	if err != nil {
		log.Fatalf("unicoapd: %v", err)
	}
	driver = d
	defer driver.Close()

	stop := make(chan struct{})
	defer close(stop)
	go queue.Run(stop)

	log.Printf("unicoapd listening on %s", driver.LocalAddr())
	if err := driver.Serve(stop); err != nil {
		log.Fatalf("unicoapd: serve: %v", err)
	}
}

// registerResources builds the example listener: a plain GET resource
// at /hello and the /.well-known/core discovery endpoint RFC 6690
// calls for.
func registerResources(registry *exchange.Registry) {
	listener := exchange.NewListener("unicoapd", exchange.AllProtocols)

	listener.Add(exchange.Resource{
		Path:      "hello",
		Methods:   exchange.MaskFor(pdu.GET),
		Protocols: exchange.AllProtocols,
		Handler:   helloHandler,
		LinkFormat: func(dst []byte) ([]byte, error) {
			return append(dst, []byte("</hello>")...), nil
		},
	})
	listener.Add(exchange.Resource{
		Path:      ".well-known/core",
		Methods:   exchange.MaskFor(pdu.GET),
		Protocols: exchange.AllProtocols,
		Handler:   exchange.WellKnownCoreHandler(registry),
	})

	registry.Register(listener)
}

func helloHandler(req message.Message, aux exchange.Aux, ctx *exchange.Context) int {
	resp := message.Message{
		Code:    pdu.Content,
		Options: options.New(make([]byte, 0, 8), 8),
		Payload: message.ContiguousPayload([]byte("hello from unicoapd")),
	}
	if err := resp.Options.AddUint(options.ContentFormat, 0); err != nil {
		return -2
	}
	if err := ctx.SendResponse(resp); err != nil {
		return -2
	}
	return 0
}

// handleDatagram is the transport's ReceiveFunc: parse the wire bytes,
// classify the result against the messaging layer's transmission
// table, and hand anything that passes classification to the exchange
// registry for resource dispatch.
func handleDatagram(state *messaging.State, registry *exchange.Registry, sender messaging.Sender, cfg unicoap.Config, data []byte, remote, local endpoint.Endpoint) {
	opts := options.New(make([]byte, 0, len(data)), cfg.MaxOptions)
	parsed, err := pdu.Parse(data, opts, cfg.MaxTokenLength)
	if err != nil {
		log.Printf("unicoapd: dropping malformed datagram from %s: %v", remote, err)
		return
	}
	msg := message.FromParsed(parsed, opts)

	result := state.ClassifyInbound(remote, msg)
	if result.SendReply {
		buf := make([]byte, cfg.MaxPDUSize)
		built, err := result.Reply.Build(buf)
		if err == nil {
			sender.Send(remote, built)
		}
	}
	if result.Action != messaging.ActionPassUp {
		return
	}

	buf := make([]byte, cfg.MaxPDUSize)
	if err := registry.HandleRequest(sender, remote, local, msg, buf); err != nil {
		log.Printf("unicoapd: dispatch error from %s: %v", remote, err)
	}
}
