package dsl

import (
	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

const (
	tplListTooShort = "should have at least %{min} items, got %{actual}"
	tplListTooLong  = "should have at most %{max} items, got %{actual}"
)

// ListType is the homogeneous-list composite descriptor.
type ListType struct {
	common goshape.Common
	elem   goshape.Type
	min    *goshape.Parameterized[int]
	max    *goshape.Parameterized[int]
}

var _ goshape.Type = ListType{}

// List returns a list descriptor whose items parse against elem.
func List(elem goshape.Type) ListType {
	return ListType{elem: elem}
}

// Min requires at least n items.
func (s ListType) Min(n int, opts ...goshape.ParamOpt) ListType {
	p := goshape.Param(n, opts...)
	s.min = &p
	return s
}

// Max requires at most n items.
func (s ListType) Max(n int, opts ...goshape.ParamOpt) ListType {
	p := goshape.Param(n, opts...)
	s.max = &p
	return s
}

// Common implements goshape.Type.
func (s ListType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s ListType) Optional() ListType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s ListType) Default(v any) ListType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s ListType) Describe(d string) ListType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s ListType) Example(v any) ListType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect over the parsed slice.
func (s ListType) Transform(fn func([]any) []any) ListType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if l, ok := v.([]any); ok {
			return fn(l)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect over the parsed slice.
func (s ListType) Refine(pred func([]any) bool, opts ...goshape.ParamOpt) ListType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		l, ok := v.([]any)
		return ok && pred(l)
	}, refineTemplate(opts)))
	return s
}

// RefineWith appends the two-argument refine form.
func (s ListType) RefineWith(fn func(any, goshape.Context) goshape.Verdict, opts ...goshape.ParamOpt) ListType {
	s.common = s.common.WithEffect(goshape.RefineWithEffect(fn, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type. Every item runs through its own child
// pipeline at its index; the partial output carries the items that validated,
// in order.
func (s ListType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	elems, ok := sliceOf(v)
	if !ok {
		return goshape.Fail(typeMismatch("list", v))
	}
	var iss goshape.Issues
	if s.min != nil && len(elems) < s.min.Value {
		iss = goshape.AppendIssues(iss, s.min.Issue(goshape.CodeTooShort, tplListTooShort,
			map[string]any{"min": s.min.Value, "actual": len(elems)}))
	}
	if s.max != nil && len(elems) > s.max.Value {
		iss = goshape.AppendIssues(iss, s.max.Issue(goshape.CodeTooLong, tplListTooLong,
			map[string]any{"max": s.max.Value, "actual": len(elems)}))
	}
	out := make([]any, 0, len(elems))
	succeeded := 0
	for i, e := range elems {
		child := goshape.ParseChild(s.elem, e, opt, i)
		if !child.Valid {
			iss = goshape.AppendIssues(iss, child.Issues...)
			continue
		}
		out = append(out, child.Output)
		succeeded++
	}
	return aggregate(iss, succeeded, out)
}

// JSONSchema implements goshape.Type.
func (s ListType) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", Items: s.elem.JSONSchema()}
	if s.min != nil {
		out.MinItems = js.IntPtr(s.min.Value)
	}
	if s.max != nil {
		out.MaxItems = js.IntPtr(s.max.Value)
	}
	return s.common.Describe(out)
}
