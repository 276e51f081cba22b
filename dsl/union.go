package dsl

import (
	"sort"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// UnionType tries an ordered list of alternatives against one input. The
// first fully valid alternative wins immediately. When none validates, the
// alternative whose context scored highest — the one that got furthest into
// the input — supplies the issues; the other attempts are discarded, so the
// caller sees the most relevant near-miss instead of a generic "no match".
type UnionType struct {
	common goshape.Common
	alts   []goshape.Type
}

var _ goshape.Type = UnionType{}

// Union returns a union descriptor over alts. An empty alternative list is
// schema misconfiguration and panics.
func Union(alts ...goshape.Type) UnionType {
	if len(alts) == 0 {
		panic("dsl: union needs at least one alternative")
	}
	return UnionType{alts: alts}
}

// Common implements goshape.Type.
func (s UnionType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s UnionType) Optional() UnionType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s UnionType) Default(v any) UnionType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s UnionType) Describe(d string) UnionType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s UnionType) Example(v any) UnionType { s.common = s.common.WithExample(v); return s }

// Parse implements goshape.Type. Alternatives are evaluated in order, each
// through a fully independent context; ties on score go to the last-evaluated
// candidate (prepend, then head of a stable descending sort).
func (s UnionType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	failed := make([]goshape.Context, 0, len(s.alts))
	for _, alt := range s.alts {
		c := goshape.NewContext(alt, v, opt).Run()
		if c.Valid {
			return goshape.OK(c.Output)
		}
		failed = append([]goshape.Context{c}, failed...)
	}
	sort.SliceStable(failed, func(i, j int) bool {
		return failed[i].Score > failed[j].Score
	})
	return goshape.FailIssues(failed[0].Issues)
}

// JSONSchema implements goshape.Type.
func (s UnionType) JSONSchema() *js.Schema {
	oneOf := make([]*js.Schema, len(s.alts))
	for i, alt := range s.alts {
		oneOf[i] = alt.JSONSchema()
	}
	return s.common.Describe(&js.Schema{OneOf: oneOf})
}
