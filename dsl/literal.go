package dsl

import (
	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

const (
	tplLiteral = "expected %{expected}, got %{actual}"
	tplEnum    = "expected one of %{values}, got %{actual}"
)

// ---- literal ----

// LiteralType accepts exactly one scalar value, compared with
// identifier/string equivalence (Atom("dog") matches "dog"). It is the only
// kind accepted as a discriminator field.
type LiteralType struct {
	common goshape.Common
	value  any
	params goshape.Parameterized[any]
}

var _ goshape.Type = LiteralType{}

// Literal returns a single-value leaf.
func Literal(v any, opts ...goshape.ParamOpt) LiteralType {
	return LiteralType{value: v, params: goshape.Param[any](v, opts...)}
}

// Value exposes the accepted literal.
func (s LiteralType) Value() any { return s.value }

// Common implements goshape.Type.
func (s LiteralType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s LiteralType) Optional() LiteralType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s LiteralType) Default(v any) LiteralType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s LiteralType) Describe(d string) LiteralType {
	s.common = s.common.WithDescription(d)
	return s
}

// Example attaches an example surfaced in JSON Schema.
func (s LiteralType) Example(v any) LiteralType { s.common = s.common.WithExample(v); return s }

// Parse implements goshape.Type. A match normalizes the output to the
// declared literal (so an Atom input yields the declared string form and vice
// versa).
func (s LiteralType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	if looseEqual(v, s.value) {
		return goshape.OK(s.value)
	}
	return goshape.Fail(s.params.Issue(goshape.CodeInvalidEnum, tplLiteral,
		map[string]any{"expected": s.value, "actual": v}))
}

// JSONSchema implements goshape.Type.
func (s LiteralType) JSONSchema() *js.Schema {
	return s.common.Describe(&js.Schema{Const: schemaValue(s.value)})
}

// ---- enum ----

// EnumType accepts any member of a fixed scalar set.
type EnumType struct {
	common goshape.Common
	values []any
	params goshape.Parameterized[[]any]
}

var _ goshape.Type = EnumType{}

// Enum returns an inclusion leaf over vs.
func Enum(vs ...any) EnumType {
	return EnumType{values: vs, params: goshape.Param(vs)}
}

// WithError overrides the inclusion error template.
func (s EnumType) WithError(opts ...goshape.ParamOpt) EnumType {
	s.params = goshape.Param(s.values, opts...)
	return s
}

// Common implements goshape.Type.
func (s EnumType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s EnumType) Optional() EnumType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s EnumType) Default(v any) EnumType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s EnumType) Describe(d string) EnumType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s EnumType) Example(v any) EnumType { s.common = s.common.WithExample(v); return s }

// Parse implements goshape.Type.
func (s EnumType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	for _, allowed := range s.values {
		if looseEqual(v, allowed) {
			return goshape.OK(allowed)
		}
	}
	return goshape.Fail(s.params.Issue(goshape.CodeInvalidEnum, tplEnum,
		map[string]any{"values": goshape.Disjunction(s.values...), "actual": v}))
}

// JSONSchema implements goshape.Type.
func (s EnumType) JSONSchema() *js.Schema {
	vs := make([]any, len(s.values))
	for i, v := range s.values {
		vs[i] = schemaValue(v)
	}
	return s.common.Describe(&js.Schema{Enum: vs})
}

// schemaValue maps engine values to their JSON Schema form (Atoms render as
// plain strings).
func schemaValue(v any) any {
	if a, ok := v.(goshape.Atom); ok {
		return string(a)
	}
	return v
}
