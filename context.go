package goshape

import (
	"fmt"

	"github.com/reoring/goshape/i18n"
)

// Context is the state of one parse attempt for one value. It is immutable
// by replacement: every pipeline state and every helper returns a new value,
// and parent contexts never alias a child's state. One Context exists per
// node visited, including each recursive child parse.
type Context struct {
	Type   Type
	Input  any
	Output any
	Path   Path
	Issues Issues
	Score  int  // used only by the union resolver
	Valid  bool // false permanently once any issue is appended
	Opt    ParseOpt

	halted  bool // optional null/absent: success, skip remaining states
	partial bool // delegate recovered a partial value
}

// NewContext prepares a parse of v against t. Run drives it to a terminal
// state.
func NewContext(t Type, v any, opt ParseOpt) Context {
	return Context{Type: t, Input: v, Output: v, Opt: opt, Valid: true}
}

// Run drives the parse state machine in its fixed order: default resolution,
// required check, delegation to the Type contract, then the effects pipeline.
// Every state returns a fresh Context; any state may short-circuit.
func (c Context) Run() Context {
	c = c.resolveDefault()
	c = c.checkRequired()
	if c.halted || !c.Valid {
		return c
	}
	c = c.delegate()
	if !c.Valid {
		return c
	}
	return c.applyEffects()
}

// Unwrap yields the terminal result: the output when valid, the issue list
// otherwise.
func (c Context) Unwrap() (any, error) {
	if c.Valid {
		return c.Output, nil
	}
	return nil, c.Issues
}

// Outcome converts a terminal Context back into the Type-contract result
// shape, used when a resolver delegates an entire parse to another
// descriptor.
func (c Context) Outcome() Outcome {
	switch {
	case c.Valid:
		return OK(c.Output)
	case c.partial:
		return PartialResult(c.Issues, c.Output)
	default:
		return FailIssues(c.Issues)
	}
}

func (c Context) resolveDefault() Context {
	if c.Output != nil {
		return c
	}
	d := c.Type.Common().DefaultSpec()
	if d == nil {
		return c
	}
	v := d.resolve()
	if v == nil {
		// a default that resolves to nil is schema misconfiguration
		panic(fmt.Sprintf("goshape: default for %T resolved to nil", c.Type))
	}
	c.Output = v
	return c
}

func (c Context) checkRequired() Context {
	if c.Output != nil {
		return c
	}
	if c.Type.Common().Required() {
		return c.fail(Issue{
			Path:     c.Path,
			Code:     CodeRequired,
			Template: i18n.T(CodeRequired),
			Params:   map[string]any{},
		})
	}
	c.halted = true
	return c
}

func (c Context) delegate() Context {
	out := c.Type.Parse(c.Output, c.Opt)
	switch {
	case out.Ok():
		c.Output = out.Value
		return c
	case out.Partial:
		c = c.failIssues(out.Issues.Prefix(c.Path...))
		c.Output = out.Value
		c.Score += structuralSize(out.Value)
		c.partial = true
		return c
	default:
		return c.failIssues(out.Issues.Prefix(c.Path...))
	}
}

func (c Context) applyEffects() Context {
	for _, e := range c.Type.Common().Effects() {
		c = e.apply(c)
		if !c.Valid {
			return c
		}
	}
	return c
}

// fail appends one issue and marks the context invalid.
func (c Context) fail(iss ...Issue) Context {
	return c.failIssues(iss)
}

// failIssues appends issues into a fresh slice so sibling contexts never
// share backing arrays.
func (c Context) failIssues(iss Issues) Context {
	merged := make(Issues, 0, len(c.Issues)+len(iss))
	merged = append(merged, c.Issues...)
	merged = append(merged, iss...)
	c.Issues = merged
	c.Valid = false
	return c
}

// structuralSize is the union resolver's score estimate for a partial value:
// a deep leaf count, so that "more of the input validated" scores higher.
// The exact weighting is a heuristic, not a contract.
func structuralSize(v any) int {
	switch t := v.(type) {
	case map[string]any:
		n := 1
		for _, e := range t {
			n += structuralSize(e)
		}
		return n
	case []any:
		n := 1
		for _, e := range t {
			n += structuralSize(e)
		}
		return n
	case nil:
		return 0
	default:
		return 1
	}
}

// ParseChild runs the full pipeline for one child of a composite and rebases
// the resulting issues under seg. Composites call this once per field, item
// or pair; a failing child never suppresses its siblings.
func ParseChild(t Type, v any, opt ParseOpt, seg Segment) Context {
	child := NewContext(t, v, opt).Run()
	child.Issues = child.Issues.Prefix(seg)
	return child
}
