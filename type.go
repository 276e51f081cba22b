package goshape

import (
	js "github.com/reoring/goshape/jsonschema"
)

// Type is the capability every descriptor kind implements. Descriptors are
// immutable trees; Parse must be a pure function of (receiver, v, opt).
//
// Leaf kinds return Ok or Err outcomes only; composite kinds may additionally
// return a partial outcome carrying the substructure that did validate.
type Type interface {
	// Common exposes the envelope shared by every descriptor kind.
	Common() Common
	// Parse validates/coerces a non-nil value. Default resolution, the
	// required check and the effects pipeline are driven by Context.Run and
	// never reach Parse.
	Parse(v any, opt ParseOpt) Outcome
	// JSONSchema projects the descriptor into a JSON Schema fragment.
	JSONSchema() *js.Schema
}

// Outcome is the closed result of one Type.Parse call.
type Outcome struct {
	Value   any
	Issues  Issues
	Partial bool // Issues present but Value carries recovered substructure
}

// OK returns a successful outcome carrying the (possibly coerced) value.
func OK(v any) Outcome { return Outcome{Value: v} }

// Fail returns a failed outcome with the given issues.
func Fail(iss ...Issue) Outcome { return Outcome{Issues: iss} }

// FailIssues returns a failed outcome adopting an existing issue list.
func FailIssues(iss Issues) Outcome { return Outcome{Issues: iss} }

// PartialResult returns a partial-success outcome: issues plus the
// substructure built from the children that did validate.
func PartialResult(iss Issues, v any) Outcome {
	return Outcome{Value: v, Issues: iss, Partial: true}
}

// Ok reports whether the outcome carries no issues.
func (o Outcome) Ok() bool { return len(o.Issues) == 0 }

// Common is the envelope carried by every descriptor: required (default
// true), default resolution, the ordered effects list, and documentation
// metadata surfaced in JSON Schema. The zero value means required, no
// default, no effects.
type Common struct {
	optional    bool
	def         *Default
	effects     []Effect
	description string
	example     any
}

// Optional returns a copy with the required flag cleared.
func (c Common) Optional() Common { c.optional = true; return c }

// Required reports whether the descriptor rejects null/absent input.
func (c Common) Required() bool { return !c.optional }

// WithDefault returns a copy carrying d.
func (c Common) WithDefault(d *Default) Common { c.def = d; return c }

// DefaultSpec returns the configured default, or nil.
func (c Common) DefaultSpec() *Default { return c.def }

// WithEffect returns a copy with e appended to the effects list. The
// underlying slice is copied so earlier descriptors never observe the append.
func (c Common) WithEffect(e Effect) Common {
	es := make([]Effect, 0, len(c.effects)+1)
	es = append(es, c.effects...)
	es = append(es, e)
	c.effects = es
	return c
}

// Effects returns the ordered effects list.
func (c Common) Effects() []Effect { return c.effects }

// WithDescription returns a copy carrying a description.
func (c Common) WithDescription(s string) Common { c.description = s; return c }

// WithExample returns a copy carrying an example value.
func (c Common) WithExample(v any) Common { c.example = v; return c }

// Describe applies the envelope's documentation metadata to a JSON Schema
// fragment: description, example, and a literal default.
func (c Common) Describe(s *js.Schema) *js.Schema {
	if s == nil {
		s = &js.Schema{}
	}
	if c.description != "" {
		s.Description = c.description
	}
	if c.example != nil {
		s.Examples = append(s.Examples, c.example)
	}
	if c.def != nil {
		if v, ok := c.def.Literal(); ok {
			s.Default = v
		}
	}
	return s
}
