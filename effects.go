package goshape

import "github.com/reoring/goshape/i18n"

// Effect is one post-parse step in a descriptor's ordered pipeline: either a
// Transform (always succeeds, replaces the output) or a Refine (predicate
// that can fail the whole pipeline). The set is closed.
type Effect interface {
	apply(c Context) Context
}

// TransformEffect wraps a pure function from current output to new output.
// A panic inside fn is a fault, not a validation issue; it propagates out of
// the whole parse.
func TransformEffect(fn func(any) any) Effect { return transformEffect{fn: fn} }

type transformEffect struct {
	fn func(any) any
}

func (t transformEffect) apply(c Context) Context {
	c.Output = t.fn(c.Output)
	return c
}

// Verdict is the closed result of a two-argument refine: Continue,
// Fail(message) or FailWith(context).
type Verdict struct {
	kind     verdictKind
	template string
	issues   Issues
}

type verdictKind int

const (
	verdictPass verdictKind = iota
	verdictReject
	verdictRejectWith
)

// Pass continues the pipeline unchanged.
func Pass() Verdict { return Verdict{} }

// Reject fails with the refine's configured template.
func Reject() Verdict { return Verdict{kind: verdictReject} }

// RejectMessage fails with an ad-hoc template, overriding the configured one.
func RejectMessage(tpl string) Verdict {
	return Verdict{kind: verdictReject, template: tpl}
}

// RejectWith adopts the state of a Context the refine evaluated itself: a
// valid context continues the pipeline, an invalid one fails with its issues
// verbatim.
func RejectWith(c Context) Verdict {
	if c.Valid {
		return Pass()
	}
	return Verdict{kind: verdictRejectWith, issues: c.Issues}
}

// RefineEffect wraps a one-argument predicate. On false the pipeline stops
// with an issue rendered from tpl (the leaf/default template when tpl is
// empty), %{actual} bound to the current output.
func RefineEffect(pred func(any) bool, tpl string) Effect {
	return refineEffect{pred: pred, template: tpl}
}

// RefineWithEffect wraps the two-argument form, which additionally receives
// the current Context and answers with a Verdict.
func RefineWithEffect(fn func(any, Context) Verdict, tpl string) Effect {
	return refineEffect{with: fn, template: tpl}
}

type refineEffect struct {
	pred     func(any) bool
	with     func(any, Context) Verdict
	template string
}

func (r refineEffect) apply(c Context) Context {
	if r.pred != nil {
		if r.pred(c.Output) {
			return c
		}
		return c.fail(r.issue(r.template, c))
	}
	v := r.with(c.Output, c)
	switch v.kind {
	case verdictPass:
		return c
	case verdictRejectWith:
		return c.failIssues(v.issues)
	default:
		tpl := v.template
		if tpl == "" {
			tpl = r.template
		}
		return c.fail(r.issue(tpl, c))
	}
}

func (r refineEffect) issue(tpl string, c Context) Issue {
	if tpl == "" {
		tpl = i18n.T(CodeRefine)
	}
	return Issue{
		Path:     c.Path,
		Code:     CodeRefine,
		Template: tpl,
		Params:   map[string]any{"actual": c.Output},
	}
}
