package options

import "strings"

// GetUint returns the variable-width unsigned integer value of the first
// option with number n, zero if absent (per RFC 7252, absent uint options
// default to zero).
func (o *Options) GetUint(n Number) uint32 {
	v, ok := o.Get(n)
	if !ok {
		return 0
	}
	return DecodeUint(v)
}

// SetUint sets option n to the canonical encoding of v, replacing any
// existing value. Setting zero stores an empty value, per RFC 7252 §3.2.
func (o *Options) SetUint(n Number, v uint32) error {
	return o.Set(n, EncodeUint(v))
}

// AddUint appends a new option n with the canonical encoding of v.
func (o *Options) AddUint(n Number, v uint32) error {
	return o.Add(n, EncodeUint(v))
}

// GetString returns the first option with number n interpreted as UTF-8.
func (o *Options) GetString(n Number) (string, bool) {
	v, ok := o.Get(n)
	if !ok {
		return "", false
	}
	return string(v), true
}

// Strings returns every option with number n, interpreted as UTF-8, in
// the order they appear — used for options segmented across repeatable
// instances such as Uri-Path and Uri-Query.
func (o *Options) Strings(n Number) []string {
	raw := o.GetAll(n)
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = string(v)
	}
	return out
}

// JoinPath joins the components of a repeatable path-valued option
// (Uri-Path or Location-Path) into a single "/"-prefixed string.
func (o *Options) JoinPath(n Number) string {
	parts := o.Strings(n)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// SetPath replaces every option with number n with one option per
// non-empty component of the "/"-separated path s.
func (o *Options) SetPath(n Number, s string) error {
	if err := o.RemoveAll(n); err != nil {
		return err
	}
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			continue
		}
		if err := o.Add(n, []byte(part)); err != nil {
			return err
		}
	}
	return nil
}

// MatchesPath reports whether the container's path-valued option n,
// split on "/", matches the components of want. Consecutive and trailing
// "/" in want are treated as one and ignored, per spec §4.3.
func (o *Options) MatchesPath(n Number, want []string) bool {
	got := o.Strings(n)
	nonEmpty := make([]string, 0, len(want))
	for _, w := range want {
		if w != "" {
			nonEmpty = append(nonEmpty, w)
		}
	}
	want = nonEmpty
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// JoinQuery joins the components of Uri-Query/Location-Query into a
// single "&"-separated string.
func (o *Options) JoinQuery(n Number) string {
	return strings.Join(o.Strings(n), "&")
}

// SetQuery replaces every option with number n with one option per
// non-empty component of the "&"-separated query string s.
func (o *Options) SetQuery(n Number, s string) error {
	if err := o.RemoveAll(n); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		if err := o.Add(n, []byte(part)); err != nil {
			return err
		}
	}
	return nil
}

// QueryValue returns the value of the first query component name=value
// matching name. It splits each option value at the first "=".
func (o *Options) QueryValue(n Number, name string) (string, bool) {
	for _, q := range o.Strings(n) {
		k, v, found := strings.Cut(q, "=")
		if found && k == name {
			return v, true
		}
		if !found && k == name {
			return "", true
		}
	}
	return "", false
}
