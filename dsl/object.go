package dsl

import (
	"sort"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	js "github.com/reoring/goshape/jsonschema"
)

// UnknownPolicy controls how input keys outside the declared shape are
// handled.
type UnknownPolicy int

const (
	UnknownStrict      UnknownPolicy = iota // Reject unknown keys with an issue each.
	UnknownStrip                            // Drop unknown keys.
	UnknownPassthrough                      // Keep unknown keys in the output verbatim.
)

// Shape declares an object's fields. Whether a field may be absent is carried
// by the field descriptor itself (Optional/Default), not by the shape.
type Shape map[string]goshape.Type

// ObjectType is the object-shaped composite descriptor.
type ObjectType struct {
	common  goshape.Common
	shape   Shape
	unknown UnknownPolicy
}

var _ goshape.Type = ObjectType{}

// Object returns an object descriptor over shape. Unknown keys are rejected
// by default.
func Object(shape Shape) ObjectType {
	return ObjectType{shape: shape, unknown: UnknownStrict}
}

// Strict rejects unknown input keys (the default).
func (s ObjectType) Strict() ObjectType { s.unknown = UnknownStrict; return s }

// Strip drops unknown input keys.
func (s ObjectType) Strip() ObjectType { s.unknown = UnknownStrip; return s }

// Passthrough keeps unknown input keys in the output unchanged.
func (s ObjectType) Passthrough() ObjectType { s.unknown = UnknownPassthrough; return s }

// Common implements goshape.Type.
func (s ObjectType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s ObjectType) Optional() ObjectType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s ObjectType) Default(v any) ObjectType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s ObjectType) DefaultFunc(f func() any) ObjectType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s ObjectType) Describe(d string) ObjectType {
	s.common = s.common.WithDescription(d)
	return s
}

// Example attaches an example surfaced in JSON Schema.
func (s ObjectType) Example(v any) ObjectType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect over the parsed map.
func (s ObjectType) Transform(fn func(map[string]any) map[string]any) ObjectType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if m, ok := v.(map[string]any); ok {
			return fn(m)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect over the parsed map.
func (s ObjectType) Refine(pred func(map[string]any) bool, opts ...goshape.ParamOpt) ObjectType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		m, ok := v.(map[string]any)
		return ok && pred(m)
	}, refineTemplate(opts)))
	return s
}

// RefineWith appends the two-argument refine form.
func (s ObjectType) RefineWith(fn func(any, goshape.Context) goshape.Verdict, opts ...goshape.ParamOpt) ObjectType {
	s.common = s.common.WithEffect(goshape.RefineWithEffect(fn, refineTemplate(opts)))
	return s
}

// sortedFields returns the declared field names in ascending order for
// deterministic visiting and issue ordering.
func (s ObjectType) sortedFields() []string {
	ks := make([]string, 0, len(s.shape))
	for k := range s.shape {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Parse implements goshape.Type. Every field is visited through its own
// child pipeline; a failing field never suppresses its siblings.
func (s ObjectType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	src, ok := normalizeMap(v)
	if !ok {
		return goshape.Fail(typeMismatch("map", v))
	}
	out := make(map[string]any, len(src))
	var iss goshape.Issues
	succeeded := 0
	for _, k := range s.sortedFields() {
		ft := s.shape[k]
		val, present := src[k]
		child := goshape.ParseChild(ft, val, opt, k)
		if !child.Valid {
			iss = goshape.AppendIssues(iss, child.Issues...)
			continue
		}
		if !present && child.Output == nil {
			// absent optional field with no default: leave the key out
			continue
		}
		out[k] = child.Output
		succeeded++
	}
	iss = goshape.AppendIssues(iss, s.collectUnknown(src, out)...)
	return aggregate(iss, succeeded, out)
}

// collectUnknown handles input keys outside the shape according to the
// unknown policy, in key-sorted order.
func (s ObjectType) collectUnknown(src, out map[string]any) goshape.Issues {
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := s.shape[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss goshape.Issues
	for _, k := range uks {
		switch s.unknown {
		case UnknownStrict:
			iss = goshape.AppendIssues(iss, goshape.Issue{
				Path:     goshape.Path{k},
				Code:     goshape.CodeUnknownKey,
				Template: i18n.T(goshape.CodeUnknownKey),
				Params:   map[string]any{"key": k},
			})
		case UnknownStrip:
			// drop
		case UnknownPassthrough:
			out[k] = src[k]
		}
	}
	return iss
}

// JSONSchema implements goshape.Type.
func (s ObjectType) JSONSchema() *js.Schema {
	props := make(map[string]*js.Schema, len(s.shape))
	var req []string
	for _, k := range s.sortedFields() {
		ft := s.shape[k]
		props[k] = ft.JSONSchema()
		// a field with a default is satisfiable when absent
		if ft.Common().Required() && ft.Common().DefaultSpec() == nil {
			req = append(req, k)
		}
	}
	var additional any
	switch s.unknown {
	case UnknownStrict:
		additional = false
	default:
		// Strip accepts then discards unknown keys, so JSON Schema marks them
		// as accepted, same as Passthrough.
		additional = true
	}
	return s.common.Describe(&js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             req,
		AdditionalProperties: additional,
	})
}

// shapeField is used by the discriminated-union resolver's construction-time
// checks.
func (s ObjectType) shapeField(name string) (goshape.Type, bool) {
	t, ok := s.shape[name]
	return t, ok
}
