package dsl

import (
	"fmt"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	js "github.com/reoring/goshape/jsonschema"
)

// DiscriminatedUnionType dispatches on a literal-valued tag field: the input
// is routed entirely to the first branch whose literal matches, so only that
// branch's issues can surface. Branch shapes are validated at construction.
type DiscriminatedUnionType struct {
	common   goshape.Common
	field    string
	branches []ObjectType
	literals []any
}

var _ goshape.Type = DiscriminatedUnionType{}

// DiscriminatedUnion builds a tagged union over object branches. Every
// branch must declare field, and that field's descriptor must be a Literal;
// violations are construction errors, never runtime issues.
func DiscriminatedUnion(field string, branches ...ObjectType) (DiscriminatedUnionType, error) {
	if field == "" {
		return DiscriminatedUnionType{}, fmt.Errorf("dsl: discriminated union needs a discriminator field")
	}
	if len(branches) == 0 {
		return DiscriminatedUnionType{}, fmt.Errorf("dsl: discriminated union needs at least one branch")
	}
	literals := make([]any, len(branches))
	for i, b := range branches {
		ft, ok := b.shapeField(field)
		if !ok {
			return DiscriminatedUnionType{}, fmt.Errorf("dsl: branch %d does not declare discriminator %q", i, field)
		}
		lit, ok := ft.(LiteralType)
		if !ok {
			return DiscriminatedUnionType{}, fmt.Errorf("dsl: discriminator %q of branch %d must be a literal", field, i)
		}
		for j := 0; j < i; j++ {
			if looseEqual(literals[j], lit.Value()) {
				return DiscriminatedUnionType{}, fmt.Errorf("dsl: duplicate discriminator value %v", lit.Value())
			}
		}
		literals[i] = lit.Value()
	}
	return DiscriminatedUnionType{field: field, branches: branches, literals: literals}, nil
}

// MustDiscriminatedUnion is DiscriminatedUnion that panics on a construction
// error.
func MustDiscriminatedUnion(field string, branches ...ObjectType) DiscriminatedUnionType {
	u, err := DiscriminatedUnion(field, branches...)
	if err != nil {
		panic(err)
	}
	return u
}

// Common implements goshape.Type.
func (s DiscriminatedUnionType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s DiscriminatedUnionType) Optional() DiscriminatedUnionType {
	s.common = s.common.Optional()
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s DiscriminatedUnionType) Describe(d string) DiscriminatedUnionType {
	s.common = s.common.WithDescription(d)
	return s
}

// Parse implements goshape.Type. The discriminator is read with
// identifier/string key equivalence and compared against each branch literal
// the same way; no per-field issues are produced when no branch matches.
func (s DiscriminatedUnionType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	src, ok := normalizeMap(v)
	if !ok {
		return goshape.Fail(typeMismatch("map", v))
	}
	dv, present := src[s.field]
	if !present {
		return goshape.Fail(goshape.Issue{
			Code:     goshape.CodeDiscriminatorMissing,
			Template: i18n.T(goshape.CodeDiscriminatorMissing),
			Params:   map[string]any{"field": goshape.Verbatim(s.field)},
		})
	}
	for i, lit := range s.literals {
		if looseEqual(dv, lit) {
			return goshape.NewContext(s.branches[i], v, opt).Run().Outcome()
		}
	}
	return goshape.Fail(goshape.Issue{
		Code:     goshape.CodeDiscriminatorUnknown,
		Template: i18n.T(goshape.CodeDiscriminatorUnknown),
		Params: map[string]any{
			"field":  goshape.Verbatim(s.field),
			"values": goshape.Disjunction(s.literals...),
			"actual": dv,
		},
	})
}

// JSONSchema implements goshape.Type.
func (s DiscriminatedUnionType) JSONSchema() *js.Schema {
	oneOf := make([]*js.Schema, len(s.branches))
	for i, b := range s.branches {
		oneOf[i] = b.JSONSchema()
	}
	return s.common.Describe(&js.Schema{
		OneOf:         oneOf,
		Discriminator: &js.Discriminator{PropertyName: s.field},
	})
}
