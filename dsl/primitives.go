package dsl

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// Default constraint templates of the scalar leaves. Any of them can be
// overridden per constraint via goshape.Message.
const (
	tplStringTooShort = "should have at least %{min} characters, got %{actual}"
	tplStringTooLong  = "should have at most %{max} characters, got %{actual}"
	tplStringPattern  = "does not match pattern %{pattern}"
	tplStringContains = "should contain %{substring}, got %{actual}"
	tplNumberTooSmall = "should be greater than or equal to %{min}, got %{actual}"
	tplNumberTooBig   = "should be less than or equal to %{max}, got %{actual}"
)

// ---- string ----

// StringType is the string leaf descriptor.
type StringType struct {
	common   goshape.Common
	minLen   *goshape.Parameterized[int]
	maxLen   *goshape.Parameterized[int]
	pattern  *goshape.Parameterized[*regexp.Regexp]
	contains *goshape.Parameterized[string]
	trim     bool
}

var _ goshape.Type = StringType{}

// String returns the string leaf.
func String() StringType { return StringType{} }

// Common implements goshape.Type.
func (s StringType) Common() goshape.Common { return s.common }

// MinLen requires at least n characters (counted in runes).
func (s StringType) MinLen(n int, opts ...goshape.ParamOpt) StringType {
	p := goshape.Param(n, opts...)
	s.minLen = &p
	return s
}

// MaxLen requires at most n characters.
func (s StringType) MaxLen(n int, opts ...goshape.ParamOpt) StringType {
	p := goshape.Param(n, opts...)
	s.maxLen = &p
	return s
}

// Pattern requires the value to match expr. An invalid expression is schema
// misconfiguration and panics at construction.
func (s StringType) Pattern(expr string, opts ...goshape.ParamOpt) StringType {
	p := goshape.Param(regexp.MustCompile(expr), opts...)
	s.pattern = &p
	return s
}

// Contains requires sub to occur in the value.
func (s StringType) Contains(sub string, opts ...goshape.ParamOpt) StringType {
	p := goshape.Param(sub, opts...)
	s.contains = &p
	return s
}

// Trim strips surrounding whitespace before any constraint runs.
func (s StringType) Trim() StringType { s.trim = true; return s }

// Optional allows null/absent input.
func (s StringType) Optional() StringType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s StringType) Default(v any) StringType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s StringType) DefaultFunc(f func() any) StringType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s StringType) Describe(d string) StringType {
	s.common = s.common.WithDescription(d)
	return s
}

// Example attaches an example surfaced in JSON Schema.
func (s StringType) Example(v any) StringType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect.
func (s StringType) Transform(fn func(string) string) StringType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if sv, ok := v.(string); ok {
			return fn(sv)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect; a false return fails the parse.
func (s StringType) Refine(pred func(string) bool, opts ...goshape.ParamOpt) StringType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		sv, ok := v.(string)
		return ok && pred(sv)
	}, refineTemplate(opts)))
	return s
}

// RefineWith appends the two-argument refine form.
func (s StringType) RefineWith(fn func(any, goshape.Context) goshape.Verdict, opts ...goshape.ParamOpt) StringType {
	s.common = s.common.WithEffect(goshape.RefineWithEffect(fn, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type.
func (s StringType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
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
	if s.trim {
		sv = strings.TrimSpace(sv)
	}
	var iss goshape.Issues
	n := utf8.RuneCountInString(sv)
	if s.minLen != nil && n < s.minLen.Value {
		iss = goshape.AppendIssues(iss, s.minLen.Issue(goshape.CodeTooShort, tplStringTooShort,
			map[string]any{"min": s.minLen.Value, "actual": sv}))
	}
	if s.maxLen != nil && n > s.maxLen.Value {
		iss = goshape.AppendIssues(iss, s.maxLen.Issue(goshape.CodeTooLong, tplStringTooLong,
			map[string]any{"max": s.maxLen.Value, "actual": sv}))
	}
	if s.pattern != nil && !s.pattern.Value.MatchString(sv) {
		iss = goshape.AppendIssues(iss, s.pattern.Issue(goshape.CodePattern, tplStringPattern,
			map[string]any{"pattern": goshape.Verbatim(s.pattern.Value.String()), "actual": sv}))
	}
	if s.contains != nil && !strings.Contains(sv, s.contains.Value) {
		iss = goshape.AppendIssues(iss, s.contains.Issue(goshape.CodeContains, tplStringContains,
			map[string]any{"substring": s.contains.Value, "actual": sv}))
	}
	if len(iss) > 0 {
		return goshape.FailIssues(iss)
	}
	return goshape.OK(sv)
}

// JSONSchema implements goshape.Type.
func (s StringType) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "string"}
	if s.minLen != nil {
		out.MinLength = js.IntPtr(s.minLen.Value)
	}
	if s.maxLen != nil {
		out.MaxLength = js.IntPtr(s.maxLen.Value)
	}
	if s.pattern != nil {
		out.Pattern = s.pattern.Value.String()
	}
	return s.common.Describe(out)
}

// coerceString reports (value, ok, attempted): attempted is true when v is a
// declared coercion source type for string under the given mode.
func coerceString(v any, mode goshape.CoerceMode) (string, bool, bool) {
	if mode == goshape.CoerceOff {
		return "", false, false
	}
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t), true, true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true, true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true, true
	}
	if i, ok := intOf(v); ok {
		return strconv.FormatInt(i, 10), true, true
	}
	if mode == goshape.CoerceUnsafe {
		if a, ok := v.(goshape.Atom); ok {
			return string(a), true, true
		}
	}
	return "", false, false
}

// ---- integer ----

// IntType is the integer leaf descriptor. Its canonical output is int64.
type IntType struct {
	common goshape.Common
	min    *goshape.Parameterized[int64]
	max    *goshape.Parameterized[int64]
}

var _ goshape.Type = IntType{}

// Int returns the integer leaf.
func Int() IntType { return IntType{} }

// Common implements goshape.Type.
func (s IntType) Common() goshape.Common { return s.common }

// Min requires the value to be >= n.
func (s IntType) Min(n int64, opts ...goshape.ParamOpt) IntType {
	p := goshape.Param(n, opts...)
	s.min = &p
	return s
}

// Max requires the value to be <= n.
func (s IntType) Max(n int64, opts ...goshape.ParamOpt) IntType {
	p := goshape.Param(n, opts...)
	s.max = &p
	return s
}

// Optional allows null/absent input.
func (s IntType) Optional() IntType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s IntType) Default(v any) IntType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s IntType) DefaultFunc(f func() any) IntType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s IntType) Describe(d string) IntType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s IntType) Example(v any) IntType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect.
func (s IntType) Transform(fn func(int64) int64) IntType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if iv, ok := v.(int64); ok {
			return fn(iv)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect.
func (s IntType) Refine(pred func(int64) bool, opts ...goshape.ParamOpt) IntType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		iv, ok := v.(int64)
		return ok && pred(iv)
	}, refineTemplate(opts)))
	return s
}

// RefineWith appends the two-argument refine form.
func (s IntType) RefineWith(fn func(any, goshape.Context) goshape.Verdict, opts ...goshape.ParamOpt) IntType {
	s.common = s.common.WithEffect(goshape.RefineWithEffect(fn, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type.
func (s IntType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	if i, ok := intOf(v); ok {
		return s.check(i)
	}
	if f, ok := floatOf(v); ok {
		switch opt.Coerce {
		case goshape.CoerceOff:
			return goshape.Fail(typeMismatch("integer", v))
		case goshape.CoerceOn:
			if f == math.Trunc(f) && !math.IsInf(f, 0) {
				return s.check(int64(f))
			}
			return goshape.Fail(coercionFailure("integer", v))
		default:
			return s.check(int64(math.Round(f)))
		}
	}
	if sv, ok := v.(string); ok && opt.Coerce != goshape.CoerceOff {
		if i, err := strconv.ParseInt(strings.TrimSpace(sv), 10, 64); err == nil {
			return s.check(i)
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(sv), 64); err == nil {
			if f == math.Trunc(f) {
				return s.check(int64(f))
			}
			if opt.Coerce == goshape.CoerceUnsafe {
				return s.check(int64(math.Round(f)))
			}
		}
		return goshape.Fail(coercionFailure("integer", v))
	}
	return goshape.Fail(typeMismatch("integer", v))
}

func (s IntType) check(i int64) goshape.Outcome {
	var iss goshape.Issues
	if s.min != nil && i < s.min.Value {
		iss = goshape.AppendIssues(iss, s.min.Issue(goshape.CodeTooSmall, tplNumberTooSmall,
			map[string]any{"min": s.min.Value, "actual": i}))
	}
	if s.max != nil && i > s.max.Value {
		iss = goshape.AppendIssues(iss, s.max.Issue(goshape.CodeTooBig, tplNumberTooBig,
			map[string]any{"max": s.max.Value, "actual": i}))
	}
	if len(iss) > 0 {
		return goshape.FailIssues(iss)
	}
	return goshape.OK(i)
}

// JSONSchema implements goshape.Type.
func (s IntType) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "integer"}
	if s.min != nil {
		out.Minimum = js.FloatPtr(float64(s.min.Value))
	}
	if s.max != nil {
		out.Maximum = js.FloatPtr(float64(s.max.Value))
	}
	return s.common.Describe(out)
}

// ---- float ----

// FloatType is the float leaf descriptor. Its canonical output is float64;
// integer-typed numbers are accepted and widened.
type FloatType struct {
	common goshape.Common
	min    *goshape.Parameterized[float64]
	max    *goshape.Parameterized[float64]
}

var _ goshape.Type = FloatType{}

// Float returns the float leaf.
func Float() FloatType { return FloatType{} }

// Common implements goshape.Type.
func (s FloatType) Common() goshape.Common { return s.common }

// Min requires the value to be >= n.
func (s FloatType) Min(n float64, opts ...goshape.ParamOpt) FloatType {
	p := goshape.Param(n, opts...)
	s.min = &p
	return s
}

// Max requires the value to be <= n.
func (s FloatType) Max(n float64, opts ...goshape.ParamOpt) FloatType {
	p := goshape.Param(n, opts...)
	s.max = &p
	return s
}

// Optional allows null/absent input.
func (s FloatType) Optional() FloatType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s FloatType) Default(v any) FloatType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s FloatType) DefaultFunc(f func() any) FloatType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s FloatType) Describe(d string) FloatType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s FloatType) Example(v any) FloatType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect.
func (s FloatType) Transform(fn func(float64) float64) FloatType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if fv, ok := v.(float64); ok {
			return fn(fv)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect.
func (s FloatType) Refine(pred func(float64) bool, opts ...goshape.ParamOpt) FloatType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		fv, ok := v.(float64)
		return ok && pred(fv)
	}, refineTemplate(opts)))
	return s
}

// RefineWith appends the two-argument refine form.
func (s FloatType) RefineWith(fn func(any, goshape.Context) goshape.Verdict, opts ...goshape.ParamOpt) FloatType {
	s.common = s.common.WithEffect(goshape.RefineWithEffect(fn, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type.
func (s FloatType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	if f, ok := numberOf(v); ok {
		return s.check(f)
	}
	if sv, ok := v.(string); ok && opt.Coerce != goshape.CoerceOff {
		if f, err := strconv.ParseFloat(strings.TrimSpace(sv), 64); err == nil {
			return s.check(f)
		}
		return goshape.Fail(coercionFailure("float", v))
	}
	return goshape.Fail(typeMismatch("float", v))
}

func (s FloatType) check(f float64) goshape.Outcome {
	var iss goshape.Issues
	if s.min != nil && f < s.min.Value {
		iss = goshape.AppendIssues(iss, s.min.Issue(goshape.CodeTooSmall, tplNumberTooSmall,
			map[string]any{"min": s.min.Value, "actual": f}))
	}
	if s.max != nil && f > s.max.Value {
		iss = goshape.AppendIssues(iss, s.max.Issue(goshape.CodeTooBig, tplNumberTooBig,
			map[string]any{"max": s.max.Value, "actual": f}))
	}
	if len(iss) > 0 {
		return goshape.FailIssues(iss)
	}
	return goshape.OK(f)
}

// JSONSchema implements goshape.Type.
func (s FloatType) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "number"}
	if s.min != nil {
		out.Minimum = js.FloatPtr(s.min.Value)
	}
	if s.max != nil {
		out.Maximum = js.FloatPtr(s.max.Value)
	}
	return s.common.Describe(out)
}

// ---- bool ----

// BoolType is the boolean leaf descriptor.
type BoolType struct {
	common goshape.Common
}

var _ goshape.Type = BoolType{}

// Bool returns the boolean leaf.
func Bool() BoolType { return BoolType{} }

// Common implements goshape.Type.
func (s BoolType) Common() goshape.Common { return s.common }

// Optional allows null/absent input.
func (s BoolType) Optional() BoolType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s BoolType) Default(v any) BoolType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s BoolType) DefaultFunc(f func() any) BoolType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s BoolType) Describe(d string) BoolType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s BoolType) Example(v any) BoolType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect.
func (s BoolType) Transform(fn func(bool) bool) BoolType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if bv, ok := v.(bool); ok {
			return fn(bv)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect.
func (s BoolType) Refine(pred func(bool) bool, opts ...goshape.ParamOpt) BoolType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		bv, ok := v.(bool)
		return ok && pred(bv)
	}, refineTemplate(opts)))
	return s
}

// RefineWith appends the two-argument refine form.
func (s BoolType) RefineWith(fn func(any, goshape.Context) goshape.Verdict, opts ...goshape.ParamOpt) BoolType {
	s.common = s.common.WithEffect(goshape.RefineWithEffect(fn, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type.
func (s BoolType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	if b, ok := v.(bool); ok {
		return goshape.OK(b)
	}
	if opt.Coerce == goshape.CoerceOff {
		return goshape.Fail(typeMismatch("boolean", v))
	}
	if sv, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(sv)) {
		case "true":
			return goshape.OK(true)
		case "false":
			return goshape.OK(false)
		}
		if opt.Coerce == goshape.CoerceUnsafe {
			switch strings.ToLower(strings.TrimSpace(sv)) {
			case "yes", "1", "on":
				return goshape.OK(true)
			case "no", "0", "off":
				return goshape.OK(false)
			}
		}
		return goshape.Fail(coercionFailure("boolean", v))
	}
	if i, ok := intOf(v); ok && opt.Coerce == goshape.CoerceUnsafe {
		switch i {
		case 0:
			return goshape.OK(false)
		case 1:
			return goshape.OK(true)
		}
		return goshape.Fail(coercionFailure("boolean", v))
	}
	return goshape.Fail(typeMismatch("boolean", v))
}

// JSONSchema implements goshape.Type.
func (s BoolType) JSONSchema() *js.Schema {
	return s.common.Describe(&js.Schema{Type: "boolean"})
}
