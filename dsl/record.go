package dsl

import (
	"sort"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// RecordType is the homogeneous-map composite descriptor: arbitrary keys,
// one value descriptor, optionally one key descriptor. Input keys are
// canonicalized so identifier and string keys are the same key.
type RecordType struct {
	common goshape.Common
	key    goshape.Type // nil accepts any key
	value  goshape.Type
}

var _ goshape.Type = RecordType{}

// Record returns a map descriptor whose values parse against value.
func Record(value goshape.Type) RecordType {
	return RecordType{value: value}
}

// Keys validates every canonicalized key against k.
func (s RecordType) Keys(k goshape.Type) RecordType { s.key = k; return s }

// Common implements goshape.Type.
func (s RecordType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s RecordType) Optional() RecordType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s RecordType) Default(v any) RecordType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s RecordType) Describe(d string) RecordType {
	s.common = s.common.WithDescription(d)
	return s
}

// Example attaches an example surfaced in JSON Schema.
func (s RecordType) Example(v any) RecordType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect over the parsed map.
func (s RecordType) Transform(fn func(map[string]any) map[string]any) RecordType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if m, ok := v.(map[string]any); ok {
			return fn(m)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect over the parsed map.
func (s RecordType) Refine(pred func(map[string]any) bool, opts ...goshape.ParamOpt) RecordType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		m, ok := v.(map[string]any)
		return ok && pred(m)
	}, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type. Every key/value pair is one child of the
// aggregation protocol: a pair succeeds only when both its key and its value
// validate, and a failing pair never suppresses the others.
func (s RecordType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	src, ok := normalizeMap(v)
	if !ok {
		return goshape.Fail(typeMismatch("map", v))
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(src))
	var iss goshape.Issues
	succeeded := 0
	for _, k := range keys {
		pairOK := true
		if s.key != nil {
			kc := goshape.ParseChild(s.key, k, opt, k)
			if !kc.Valid {
				iss = goshape.AppendIssues(iss, kc.Issues...)
				pairOK = false
			}
		}
		vc := goshape.ParseChild(s.value, src[k], opt, k)
		if !vc.Valid {
			iss = goshape.AppendIssues(iss, vc.Issues...)
			pairOK = false
		}
		if pairOK {
			out[k] = vc.Output
			succeeded++
		}
	}
	return aggregate(iss, succeeded, out)
}

// JSONSchema implements goshape.Type.
func (s RecordType) JSONSchema() *js.Schema {
	return s.common.Describe(&js.Schema{
		Type:                 "object",
		AdditionalProperties: s.value.JSONSchema(),
	})
}
