package dsl

import (
	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

const tplTupleArity = "expected a tuple of %{expected} elements, got %{actual}"

// TupleType is the fixed-arity positional composite descriptor.
type TupleType struct {
	common goshape.Common
	elems  []goshape.Type
}

var _ goshape.Type = TupleType{}

// Tuple returns a positional descriptor over elems.
func Tuple(elems ...goshape.Type) TupleType {
	return TupleType{elems: elems}
}

// Common implements goshape.Type.
func (s TupleType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s TupleType) Optional() TupleType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s TupleType) Default(v any) TupleType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s TupleType) Describe(d string) TupleType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s TupleType) Example(v any) TupleType { s.common = s.common.WithExample(v); return s }

// Refine appends a predicate effect over the parsed slice.
func (s TupleType) Refine(pred func([]any) bool, opts ...goshape.ParamOpt) TupleType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		l, ok := v.([]any)
		return ok && pred(l)
	}, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type. An arity mismatch is a type mismatch, not a
// length constraint; otherwise every position runs through its own child
// pipeline at its index.
func (s TupleType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	elems, ok := sliceOf(v)
	if !ok {
		return goshape.Fail(typeMismatch("tuple", v))
	}
	if len(elems) != len(s.elems) {
		return goshape.Fail(goshape.Issue{
			Code:     goshape.CodeInvalidType,
			Template: tplTupleArity,
			Params:   map[string]any{"expected": len(s.elems), "actual": len(elems)},
		})
	}
	out := make([]any, 0, len(elems))
	var iss goshape.Issues
	succeeded := 0
	for i, et := range s.elems {
		child := goshape.ParseChild(et, elems[i], opt, i)
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
func (s TupleType) JSONSchema() *js.Schema {
	items := make([]*js.Schema, len(s.elems))
	for i, et := range s.elems {
		items[i] = et.JSONSchema()
	}
	n := len(s.elems)
	return s.common.Describe(&js.Schema{
		Type:        "array",
		PrefixItems: items,
		MinItems:    js.IntPtr(n),
		MaxItems:    js.IntPtr(n),
	})
}
