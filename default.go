package goshape

import "time"

// Default describes how a missing value is filled in before the required
// check: a literal, a zero-argument supplier, or a relative-time offset
// resolved against the clock at parse time.
type Default struct {
	value  any
	thunk  func() any
	offset time.Duration
	rel    bool
}

// DefaultValue returns a literal default.
func DefaultValue(v any) *Default { return &Default{value: v} }

// DefaultThunk returns a supplier default, invoked once per parse that needs
// it.
func DefaultThunk(f func() any) *Default { return &Default{thunk: f} }

// DefaultIn returns a relative-time default: time.Now().Add(d) at resolution
// time.
func DefaultIn(d time.Duration) *Default { return &Default{offset: d, rel: true} }

// Literal reports the default's literal value, if it has one. Supplier and
// relative-time defaults report false (their value is not known until parse
// time) and are therefore omitted from JSON Schema.
func (d *Default) Literal() (any, bool) {
	if d == nil || d.thunk != nil || d.rel {
		return nil, false
	}
	return d.value, true
}

// resolve produces the default value. A nil result is a programming error in
// the schema, not a validation issue, so Context.Run treats it as fatal.
func (d *Default) resolve() any {
	switch {
	case d.rel:
		return time.Now().Add(d.offset)
	case d.thunk != nil:
		return d.thunk()
	default:
		return d.value
	}
}
