package dsl

import (
	"time"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

const (
	tplTimeFormat   = "is not a valid RFC3339 timestamp, got %{actual}"
	tplTimeTooEarly = "should not be before %{min}, got %{actual}"
	tplTimeTooLate  = "should not be after %{max}, got %{actual}"
)

// TimeType is the timestamp leaf. Strings are its wire form and parse as
// RFC3339 regardless of coercion mode.
type TimeType struct {
	common goshape.Common
	min    *goshape.Parameterized[time.Time]
	max    *goshape.Parameterized[time.Time]
}

var _ goshape.Type = TimeType{}

// Time returns the timestamp leaf.
func Time() TimeType { return TimeType{} }

// Common implements goshape.Type.
func (s TimeType) Common() goshape.Common { return s.common }

// Min requires the value not to be before t.
func (s TimeType) Min(t time.Time, opts ...goshape.ParamOpt) TimeType {
	p := goshape.Param(t, opts...)
	s.min = &p
	return s
}

// Max requires the value not to be after t.
func (s TimeType) Max(t time.Time, opts ...goshape.ParamOpt) TimeType {
	p := goshape.Param(t, opts...)
	s.max = &p
	return s
}

// Optional allows null/absent input.
func (s TimeType) Optional() TimeType { s.common = s.common.Optional(); return s }

// Default fills in v when input is null/absent.
func (s TimeType) Default(v any) TimeType {
	s.common = s.common.WithDefault(goshape.DefaultValue(v))
	return s
}

// DefaultFunc fills in f() when input is null/absent.
func (s TimeType) DefaultFunc(f func() any) TimeType {
	s.common = s.common.WithDefault(goshape.DefaultThunk(f))
	return s
}

// DefaultIn fills in now+d when input is null/absent, resolved against the
// clock at parse time.
func (s TimeType) DefaultIn(d time.Duration) TimeType {
	s.common = s.common.WithDefault(goshape.DefaultIn(d))
	return s
}

// Describe attaches a description surfaced in JSON Schema.
func (s TimeType) Describe(d string) TimeType { s.common = s.common.WithDescription(d); return s }

// Example attaches an example surfaced in JSON Schema.
func (s TimeType) Example(v any) TimeType { s.common = s.common.WithExample(v); return s }

// Transform appends a pure transform effect.
func (s TimeType) Transform(fn func(time.Time) time.Time) TimeType {
	s.common = s.common.WithEffect(goshape.TransformEffect(func(v any) any {
		if tv, ok := v.(time.Time); ok {
			return fn(tv)
		}
		return v
	}))
	return s
}

// Refine appends a predicate effect.
func (s TimeType) Refine(pred func(time.Time) bool, opts ...goshape.ParamOpt) TimeType {
	s.common = s.common.WithEffect(goshape.RefineEffect(func(v any) bool {
		tv, ok := v.(time.Time)
		return ok && pred(tv)
	}, refineTemplate(opts)))
	return s
}

// Parse implements goshape.Type.
func (s TimeType) Parse(v any, opt goshape.ParseOpt) goshape.Outcome {
	switch t := v.(type) {
	case time.Time:
		return s.check(t)
	case string:
		tv, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return goshape.Fail(goshape.Issue{
				Code:     goshape.CodeInvalidFormat,
				Template: tplTimeFormat,
				Params:   map[string]any{"actual": t},
			})
		}
		return s.check(tv)
	default:
		return goshape.Fail(typeMismatch("datetime", v))
	}
}

func (s TimeType) check(t time.Time) goshape.Outcome {
	var iss goshape.Issues
	if s.min != nil && t.Before(s.min.Value) {
		iss = goshape.AppendIssues(iss, s.min.Issue(goshape.CodeTooSmall, tplTimeTooEarly,
			map[string]any{"min": s.min.Value, "actual": t}))
	}
	if s.max != nil && t.After(s.max.Value) {
		iss = goshape.AppendIssues(iss, s.max.Issue(goshape.CodeTooBig, tplTimeTooLate,
			map[string]any{"max": s.max.Value, "actual": t}))
	}
	if len(iss) > 0 {
		return goshape.FailIssues(iss)
	}
	return goshape.OK(t)
}

// JSONSchema implements goshape.Type.
func (s TimeType) JSONSchema() *js.Schema {
	return s.common.Describe(&js.Schema{Type: "string", Format: "date-time"})
}
