package message

import (
	"testing"

	"github.com/lobaro/unicoap-go/internal/iovec"
	"github.com/lobaro/unicoap-go/options"
	"github.com/lobaro/unicoap-go/pdu"
	"github.com/stretchr/testify/require"
)

func TestFromParsedThenBuildRoundTrips(t *testing.T) {
	wire := []byte{0x44, 0x02, 0x0c, 0x3e, 0xd1, 0x97, 0x96, 0xc3, 0xc1, 0x3c, 0xff, 0x0a}

	opts := options.New(make([]byte, 0, len(wire)), 4)
	parsed, err := pdu.Parse(wire, opts, pdu.DefaultMaxTokenLength)
	require.NoError(t, err)

	msg := FromParsed(parsed, opts)
	require.True(t, msg.IsRequest())
	require.Equal(t, uint32(60), opts.GetUint(options.ContentFormat))
	require.Equal(t, []byte{0x0a}, msg.Payload.Bytes())

	rebuilt, err := msg.Build(make([]byte, 0, len(wire)))
	require.NoError(t, err)
	require.Equal(t, wire, rebuilt)
}

func TestBuildScatterGatherChainsChunkedPayload(t *testing.T) {
	opts := options.New(make([]byte, 0, 16), 4)
	require.NoError(t, opts.SetUint(options.ContentFormat, 60))

	chain := iovec.Chain([]byte{0x01, 0x02}, []byte{0x03})
	msg := Message{
		Code:    pdu.POST,
		Token:   []byte{0xAB},
		Options: opts,
		Payload: ChunkedPayload(chain),
		Properties: Properties{
			MessageID: 7,
			Type:      pdu.CON,
		},
	}

	var headerBuf [pdu.HeaderSize + 1]byte
	head, err := msg.BuildScatterGather(headerBuf[:])
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, head.Next.Next.Next.Flatten())
	require.Equal(t, 4+1+len(opts.Bytes())+1+3, head.Len())
}

func TestNoPayloadOmitsMarker(t *testing.T) {
	opts := options.New(nil, 0)
	msg := Message{
		Code:  pdu.GET,
		Token: nil,
		Options: opts,
		Properties: Properties{
			MessageID: 1,
			Type:      pdu.NON,
		},
	}
	built, err := msg.Build(make([]byte, 0, pdu.HeaderSize))
	require.NoError(t, err)
	require.Len(t, built, pdu.HeaderSize)
}
