package dsl

import (
	"net/mail"
	"net/url"

	"github.com/google/uuid"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

const tplFormat = "is not a valid %{format}, got %{actual}"

// FormatType is a string leaf with a named grammar check (uuid, email, uri).
type FormatType struct {
	common goshape.Common
	format string
	check  func(string) bool
	params goshape.Parameterized[string]
}

var _ goshape.Type = FormatType{}

// UUID returns a string leaf accepting RFC 4122 UUIDs.
func UUID(opts ...goshape.ParamOpt) FormatType {
	return FormatType{
		format: "uuid",
		check: func(s string) bool {
			_, err := uuid.Parse(s)
			return err == nil
		},
		params: goshape.Param("uuid", opts...),
	}
}

// Email returns a string leaf accepting bare RFC 5322 addresses.
func Email(opts ...goshape.ParamOpt) FormatType {
	return FormatType{
		format: "email",
		check: func(s string) bool {
			a, err := mail.ParseAddress(s)
			return err == nil && a.Address == s
		},
		params: goshape.Param("email", opts...),
	}
}

// URL returns a string leaf accepting absolute URLs.
func URL(opts ...goshape.ParamOpt) FormatType {
	return FormatType{
		format: "uri",
		check: func(s string) bool {
			u, err := url.Parse(s)
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		params: goshape.Param("uri", opts...),
	}
}

// Common implements goshape.Type.
func (s FormatType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s FormatType) Optional() FormatType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s FormatType) Default(v any) FormatType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s FormatType) DefaultFunc(f func() any) FormatType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s FormatType) Describe(d string) FormatType {
	s.common = s.common.WithDescription(d)
	return s
}

// Example attaches an example surfaced in JSON Schema.
func (s FormatType) Example(v any) FormatType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect.
func (s FormatType) Transform(fn func(string) string) FormatType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if sv, ok := v.(string); ok {
			return fn(sv)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect.
func (s FormatType) Refine(pred func(string) bool, opts ...goshape.ParamOpt) FormatType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		sv, ok := v.(string)
		return ok && pred(sv)
	}, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type.
func (s FormatType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	sv, ok := v.(string)
	if !ok {
		cv, cok, attempted := coerceString(v, opt.Coerce)
		if !cok {
			if attempted {
				return goshape.Fail(coercionFailure("string", v))
			}
			return goshape.Fail(typeMismatch("string", v))
		}
		sv = cv
	}
	if !s.check(sv) {
		return goshape.Fail(s.params.Issue(goshape.CodeInvalidFormat, tplFormat,
			map[string]any{"format": goshape.Verbatim(s.format), "actual": sv}))
	}
	return goshape.OK(sv)
}

// JSONSchema implements goshape.Type.
func (s FormatType) JSONSchema() *js.Schema {
	return s.common.Describe(&js.Schema{Type: "string", Format: s.format})
}
