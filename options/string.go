package options

import (
	"fmt"
	"strings"
)

// String renders the container for debugging, in the teacher's
// Code/Type/Token-style "field: value" log format.
func (o *Options) String() string {
	parts := make([]string, 0, len(o.entries))
	for _, e := range o.entries {
		def, ok := DefinitionOf(e.Number)
		val := o.Value(e)
		switch {
		case ok && def.Format == FormatUint:
			parts = append(parts, fmt.Sprintf("%s=%d", e.Number, DecodeUint(val)))
		case ok && def.Format == FormatString:
			parts = append(parts, fmt.Sprintf("%s=%q", e.Number, string(val)))
		case ok && def.Format == FormatEmpty:
			parts = append(parts, e.Number.String())
		default:
			parts = append(parts, fmt.Sprintf("%s=0x%x", e.Number, val))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
