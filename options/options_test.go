package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberPredicates(t *testing.T) {
	tests := []struct {
		n          Number
		critical   bool
		safe       bool
		noCacheKey bool
	}{
		{IfMatch, true, true, false},
		{URIHost, true, false, false},
		{ETag, false, true, false},
		{IfNoneMatch, true, true, false},
		{URIPort, true, false, false},
		{LocationPath, false, true, false},
		{URIPath, true, false, false},
		{ContentFormat, false, true, false},
		{MaxAge, false, false, false},
		{URIQuery, true, false, false},
		{Accept, true, true, false},
		{ProxyURI, true, false, false},
		{Size1, false, true, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.critical, tt.n.Critical(), "Critical(%s)", tt.n)
		require.Equal(t, tt.safe, tt.n.SafeToForward(), "SafeToForward(%s)", tt.n)
	}
}

func TestAddKeepsAscendingOrder(t *testing.T) {
	o := New(make([]byte, 0, 256), 16)
	require.NoError(t, o.Add(URIPath, []byte("actuators")))
	require.NoError(t, o.Add(ContentFormat, EncodeUint(50)))
	require.NoError(t, o.Add(URIPath, []byte("leds")))
	require.NoError(t, o.Add(URIQuery, []byte("color=g")))
	require.NoError(t, o.Add(Accept, EncodeUint(50)))

	var numbers []Number
	it := o.Iter()
	for {
		n, _, ok := it.Next()
		if !ok {
			break
		}
		numbers = append(numbers, n)
	}
	for i := 1; i < len(numbers); i++ {
		require.LessOrEqual(t, numbers[i-1], numbers[i])
	}
	require.Equal(t, []string{"actuators", "leds"}, o.Strings(URIPath))
}

func TestSetOverwritesFirstOccurrence(t *testing.T) {
	o := New(make([]byte, 0, 64), 8)
	require.NoError(t, o.Add(Observe, EncodeUint(5)))
	require.Equal(t, uint32(5), o.GetUint(Observe))

	require.NoError(t, o.Set(Observe, EncodeUint(7)))
	require.Equal(t, uint32(7), o.GetUint(Observe))
	require.Equal(t, 1, len(o.GetAll(Observe)))
}

func TestRemoveAll(t *testing.T) {
	o := New(make([]byte, 0, 64), 8)
	require.NoError(t, o.Add(URIPath, []byte("a")))
	require.NoError(t, o.Add(ContentFormat, EncodeUint(0)))
	require.NoError(t, o.Add(URIPath, []byte("b")))

	require.NoError(t, o.RemoveAll(URIPath))
	require.False(t, o.Contains(URIPath))
	require.True(t, o.Contains(ContentFormat))
}

func TestNoBufferLeavesStateUntouched(t *testing.T) {
	o := New(make([]byte, 0, 4), 8)
	require.NoError(t, o.Add(URIPath, []byte("a")))
	before := o.StorageSize()

	err := o.Add(URIPath, []byte("this value does not fit"))
	require.ErrorIs(t, err, ErrNoBuffer)
	require.Equal(t, before, o.StorageSize())
	require.Equal(t, []string{"a"}, o.Strings(URIPath))
}

func TestEntryIndexFull(t *testing.T) {
	o := New(make([]byte, 0, 1024), 2)
	require.NoError(t, o.Add(URIPath, []byte("a")))
	require.NoError(t, o.Add(URIPath, []byte("b")))
	require.ErrorIs(t, o.Add(URIPath, []byte("c")), ErrNoBuffer)
}

func TestEncodeDecodeUint(t *testing.T) {
	tests := []uint32{0, 1, 12, 13, 255, 256, 65535, 65536, 1<<32 - 1}
	for _, v := range tests {
		enc := EncodeUint(v)
		if v == 0 {
			require.Empty(t, enc)
		}
		require.Equal(t, v, DecodeUint(enc))
	}
}

func TestJoinAndSetPath(t *testing.T) {
	o := New(make([]byte, 0, 64), 8)
	require.NoError(t, o.SetPath(URIPath, "/sensors//temperature/"))
	require.Equal(t, []string{"sensors", "temperature"}, o.Strings(URIPath))
	require.Equal(t, "/sensors/temperature", o.JoinPath(URIPath))
}

func TestQueryValue(t *testing.T) {
	o := New(make([]byte, 0, 64), 8)
	require.NoError(t, o.SetQuery(URIQuery, "color=g&bright"))
	v, ok := o.QueryValue(URIQuery, "color")
	require.True(t, ok)
	require.Equal(t, "g", v)
	_, ok = o.QueryValue(URIQuery, "bright")
	require.True(t, ok)
	_, ok = o.QueryValue(URIQuery, "missing")
	require.False(t, ok)
}
