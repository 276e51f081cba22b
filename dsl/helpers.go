package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
)

// typeMismatch builds the canonical type-mismatch issue, with a node-relative
// (empty) path; enclosing composites prepend their segments on the way up.
func typeMismatch(expected string, v any) goshape.Issue {
	return goshape.Issue{
		Code:     goshape.CodeInvalidType,
		Template: i18n.T(goshape.CodeInvalidType),
		Params: map[string]any{
			"expected": goshape.Verbatim(expected),
			"actual":   goshape.Verbatim(goshape.TypeName(v)),
		},
	}
}

// coercionFailure reports a failed conversion from a declared coercion source
// type. Scalar inputs render as values, composites by type name.
func coercionFailure(expected string, v any) goshape.Issue {
	var actual any
	switch v.(type) {
	case string, goshape.Atom, bool, int, int64, float64, json.Number:
		actual = v
	default:
		actual = goshape.Verbatim(goshape.TypeName(v))
	}
	return goshape.Issue{
		Code:     goshape.CodeCoercion,
		Template: i18n.T(goshape.CodeCoercion),
		Params: map[string]any{
			"expected": goshape.Verbatim(expected),
			"actual":   actual,
		},
	}
}

// aggregate applies the shared three-way partial-success rule of the
// composite kinds: no issues means full success, no successful children means
// plain failure, otherwise a partial success carrying only the children that
// validated.
func aggregate(iss goshape.Issues, succeeded int, out any) goshape.Outcome {
	switch {
	case len(iss) == 0:
		return goshape.OK(out)
	case succeeded == 0:
		return goshape.FailIssues(iss)
	default:
		return goshape.PartialResult(iss, out)
	}
}

// ---- input normalization ----

// normalizeMap accepts the map shapes produced by JSON/YAML decoding and by
// Go callers (including Atom keys) and returns a canonically string-keyed
// view.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ck, ok := goshape.CanonicalKey(k)
			if !ok {
				ck = fmt.Sprint(k)
			}
			out[ck] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// sliceOf normalizes slice inputs to []any.
func sliceOf(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ---- numeric classification ----

// intOf reports v as an integer when it is integer-typed (including integral
// json.Number).
func intOf(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// floatOf reports v as a float when it is float-typed (not integer-typed).
func floatOf(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return 0, false
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// numberOf reports any numeric value as float64.
func numberOf(v any) (float64, bool) {
	if i, ok := intOf(v); ok {
		return float64(i), true
	}
	return floatOf(v)
}

// ---- loose equality (identifier/string equivalence) ----

func stringish(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case goshape.Atom:
		return string(t), true
	default:
		return "", false
	}
}

// looseEqual compares scalar values with identifier/string equivalence
// (Atom("dog") equals "dog") and numeric equivalence across widths.
func looseEqual(a, b any) bool {
	if as, ok := stringish(a); ok {
		bs, ok2 := stringish(b)
		return ok2 && as == bs
	}
	if af, ok := numberOf(a); ok {
		bf, ok2 := numberOf(b)
		return ok2 && af == bf
	}
	return a == b
}

// refineTemplate extracts a Message override from refine options.
func refineTemplate(opts []goshape.ParamOpt) string {
	var ep goshape.ErrParams
	for _, o := range opts {
		o(&ep)
	}
	return ep.Error
}
