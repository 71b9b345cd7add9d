// Package options implements the RFC 7252 option container: a
// delta-encoded, length-prefixed TLV stream plus a bounded index of
// entries pointing into a caller-supplied buffer.
package options

import "fmt"

// Number identifies an option in a message, per the CoAP option registry.
type Number uint16

// Standardized option numbers used by the exchange layer (RFC 7252 §12.2,
// RFC 7252 §5.10, RFC 7967 No-Response).
const (
	IfMatch       Number = 1
	URIHost       Number = 3
	ETag          Number = 4
	IfNoneMatch   Number = 5
	Observe       Number = 6
	URIPort       Number = 7
	LocationPath  Number = 8
	URIPath       Number = 11
	ContentFormat Number = 12
	MaxAge        Number = 14
	URIQuery      Number = 15
	Accept        Number = 17
	LocationQuery Number = 20
	Block2        Number = 23
	Block1        Number = 27
	Size2         Number = 28
	ProxyURI      Number = 35
	ProxyScheme   Number = 39
	Size1         Number = 60
	NoResponse    Number = 258
)

var numberNames = map[Number]string{
	IfMatch:       "If-Match",
	URIHost:       "Uri-Host",
	ETag:          "ETag",
	IfNoneMatch:   "If-None-Match",
	Observe:       "Observe",
	URIPort:       "Uri-Port",
	LocationPath:  "Location-Path",
	URIPath:       "Uri-Path",
	ContentFormat: "Content-Format",
	MaxAge:        "Max-Age",
	URIQuery:      "Uri-Query",
	Accept:        "Accept",
	LocationQuery: "Location-Query",
	Block2:        "Block2",
	Block1:        "Block1",
	Size2:         "Size2",
	ProxyURI:      "Proxy-Uri",
	ProxyScheme:   "Proxy-Scheme",
	Size1:         "Size1",
	NoResponse:    "No-Response",
}

func (n Number) String() string {
	if name, ok := numberNames[n]; ok {
		return name
	}
	return fmt.Sprintf("Option(%d)", uint16(n))
}

// Critical reports whether an unrecognized option of this number MUST
// cause the message to be rejected (bit 0 set).
func (n Number) Critical() bool {
	return uint16(n)&1 != 0
}

// SafeToForward reports whether a proxy may forward this option without
// understanding it (bit 1 clear).
func (n Number) SafeToForward() bool {
	return uint16(n)&2 == 0
}

// NoCacheKey reports whether this option, although safe-to-forward, must
// not be part of the cache key (bits [1:4] == 0b11100).
func (n Number) NoCacheKey() bool {
	return uint16(n)&0x1e == 0x1c
}

// Format describes the canonical wire representation of an option's value
// (RFC 7252 §3.2).
type Format uint8

const (
	FormatUnknown Format = iota
	FormatEmpty
	FormatOpaque
	FormatUint
	FormatString
)

// Definition carries the bounds and canonical format used to validate and
// pretty-print a standardized option.
type Definition struct {
	Number     Number
	MinLength  int
	MaxLength  int
	Repeatable bool
	Format     Format
}

var definitions = map[Number]Definition{
	IfMatch:       {Number: IfMatch, MinLength: 0, MaxLength: 8, Repeatable: true, Format: FormatOpaque},
	URIHost:       {Number: URIHost, MinLength: 1, MaxLength: 255, Format: FormatString},
	ETag:          {Number: ETag, MinLength: 1, MaxLength: 8, Repeatable: true, Format: FormatOpaque},
	IfNoneMatch:   {Number: IfNoneMatch, MinLength: 0, MaxLength: 0, Format: FormatEmpty},
	Observe:       {Number: Observe, MinLength: 0, MaxLength: 3, Format: FormatUint},
	URIPort:       {Number: URIPort, MinLength: 0, MaxLength: 2, Format: FormatUint},
	LocationPath:  {Number: LocationPath, MinLength: 0, MaxLength: 255, Repeatable: true, Format: FormatString},
	URIPath:       {Number: URIPath, MinLength: 0, MaxLength: 255, Repeatable: true, Format: FormatString},
	ContentFormat: {Number: ContentFormat, MinLength: 0, MaxLength: 2, Format: FormatUint},
	MaxAge:        {Number: MaxAge, MinLength: 0, MaxLength: 4, Format: FormatUint},
	URIQuery:      {Number: URIQuery, MinLength: 0, MaxLength: 255, Repeatable: true, Format: FormatString},
	Accept:        {Number: Accept, MinLength: 0, MaxLength: 2, Format: FormatUint},
	LocationQuery: {Number: LocationQuery, MinLength: 0, MaxLength: 255, Repeatable: true, Format: FormatString},
	Block2:        {Number: Block2, MinLength: 0, MaxLength: 3, Format: FormatUint},
	Block1:        {Number: Block1, MinLength: 0, MaxLength: 3, Format: FormatUint},
	Size2:         {Number: Size2, MinLength: 0, MaxLength: 4, Format: FormatUint},
	ProxyURI:      {Number: ProxyURI, MinLength: 1, MaxLength: 1034, Format: FormatString},
	ProxyScheme:   {Number: ProxyScheme, MinLength: 1, MaxLength: 255, Format: FormatString},
	Size1:         {Number: Size1, MinLength: 0, MaxLength: 4, Format: FormatUint},
	NoResponse:    {Number: NoResponse, MinLength: 0, MaxLength: 1, Format: FormatUint},
}

// DefinitionOf returns the registered definition for n, if any.
func DefinitionOf(n Number) (Definition, bool) {
	d, ok := definitions[n]
	return d, ok
}
