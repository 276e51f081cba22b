package goshape

// ErrParams carries the per-constraint overrides of a Parameterized value:
// chiefly a custom error template, plus extra params merged into the Issue.
type ErrParams struct {
	Error string
	Extra map[string]any
}

// ParamOpt customizes a Parameterized constraint at construction.
type ParamOpt func(*ErrParams)

// Message overrides the constraint's error template.
func Message(tpl string) ParamOpt {
	return func(e *ErrParams) { e.Error = tpl }
}

// With adds an extra named param made available to the error template.
func With(key string, v any) ParamOpt {
	return func(e *ErrParams) {
		if e.Extra == nil {
			e.Extra = map[string]any{}
		}
		e.Extra[key] = v
	}
}

// Parameterized pairs a configured constraint value with its own override
// params. Leaf kinds wrap every fallible constraint in it so the engine never
// special-cases constraint shapes: each carries a default error template from
// the leaf, overridable by the caller.
type Parameterized[T any] struct {
	Value  T
	Params ErrParams
}

// Param wraps a constraint value with optional overrides.
func Param[T any](v T, opts ...ParamOpt) Parameterized[T] {
	p := Parameterized[T]{Value: v}
	for _, o := range opts {
		o(&p.Params)
	}
	return p
}

// Issue builds the constraint's Issue: the caller-supplied template wins over
// the leaf default, and Extra params are merged under the call-site params.
func (p Parameterized[T]) Issue(code, defaultTpl string, params map[string]any) Issue {
	tpl := p.Params.Error
	if tpl == "" {
		tpl = defaultTpl
	}
	if len(p.Params.Extra) > 0 {
		merged := make(map[string]any, len(params)+len(p.Params.Extra))
		for k, v := range p.Params.Extra {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		params = merged
	}
	return Issue{Code: code, Template: tpl, Params: params}
}
