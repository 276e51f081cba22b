package goshape_test

import (
	"strings"
	"testing"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func TestParseRequiredNull(t *testing.T) {
	_, err := goshape.Parse(dsl.String(), nil)
	iss, ok := goshape.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T", err)
	}
	if len(iss) != 1 {
		t.Fatalf("expected exactly one issue, got %#v", iss)
	}
	if iss[0].Code != goshape.CodeRequired {
		t.Fatalf("code: %q", iss[0].Code)
	}
	if got := iss[0].Message(); got != "is required" {
		t.Fatalf("message: %q", got)
	}
	if len(iss[0].Path) != 0 {
		t.Fatalf("path should be root, got %#v", iss[0].Path)
	}
}

func TestParseRequiredSkipsEffects(t *testing.T) {
	calls := 0
	s := dsl.Int().Transform(func(i int64) int64 { calls++; return i })
	if _, err := goshape.Parse(s, nil); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 0 {
		t.Fatalf("transform ran %d times on a required failure", calls)
	}
}

func TestParseOptionalNull(t *testing.T) {
	v, err := goshape.Parse(dsl.String().Optional(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil, got %#v", v)
	}
}

func TestParseDefaultValue(t *testing.T) {
	v, err := goshape.Parse(dsl.String().Default("fallback"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "fallback" {
		t.Fatalf("got %#v", v)
	}
}

func TestParseDefaultThunk(t *testing.T) {
	calls := 0
	s := dsl.Int().DefaultFunc(func() any { calls++; return int64(7) })
	v, err := goshape.Parse(s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != int64(7) || calls != 1 {
		t.Fatalf("got %#v after %d calls", v, calls)
	}
	// present input never consults the default
	if _, err := goshape.Parse(s, int64(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("thunk ran for present input")
	}
}

func TestParseDefaultThenValidate(t *testing.T) {
	// a default that violates the leaf's constraints still fails
	_, err := goshape.Parse(dsl.Int().Min(10).Default(int64(3)), nil)
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooSmall {
		t.Fatalf("got %#v", iss)
	}
}

func TestTransformRunsAfterValidation(t *testing.T) {
	s := dsl.String().MinLen(3).Transform(strings.ToUpper)
	v, err := goshape.Parse(s, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "ABC" {
		t.Fatalf("got %#v", v)
	}
	if _, err := goshape.Parse(s, "ab"); err == nil {
		t.Fatalf("constraint should fail before the transform")
	}
}

func TestEffectsRunInOrder(t *testing.T) {
	s := dsl.String().
		Transform(strings.ToUpper).
		Refine(func(v string) bool { return v == strings.ToUpper(v) })
	if _, err := goshape.Parse(s, "hello"); err != nil {
		t.Fatalf("refine should observe the transformed value: %v", err)
	}
}

func TestRefineFailureMessage(t *testing.T) {
	s := dsl.Int().Refine(func(i int64) bool { return i%2 == 0 },
		goshape.Message("should be even, got %{actual}"))
	_, err := goshape.Parse(s, int64(3))
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeRefine {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "should be even, got 3" {
		t.Fatalf("message: %q", got)
	}
}

func TestRefineDefaultMessage(t *testing.T) {
	s := dsl.Int().Refine(func(i int64) bool { return false })
	_, err := goshape.Parse(s, int64(1))
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "is invalid" {
		t.Fatalf("message: %q", got)
	}
}

func TestRefineStopsPipeline(t *testing.T) {
	calls := 0
	s := dsl.Int().
		Refine(func(int64) bool { return false }).
		Transform(func(i int64) int64 { calls++; return i })
	if _, err := goshape.Parse(s, int64(1)); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 0 {
		t.Fatalf("later effect ran after a refine failure")
	}
}

func TestRefineWithVerdicts(t *testing.T) {
	pass := dsl.Int().RefineWith(func(v any, c goshape.Context) goshape.Verdict {
		return goshape.Pass()
	})
	if _, err := goshape.Parse(pass, int64(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reject := dsl.Int().RefineWith(func(v any, c goshape.Context) goshape.Verdict {
		return goshape.RejectMessage("no good: %{actual}")
	})
	_, err := goshape.Parse(reject, int64(9))
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "no good: 9" {
		t.Fatalf("message: %q", got)
	}
}

func TestRefineWithAdoptsContext(t *testing.T) {
	inner := dsl.String().MinLen(5)
	s := dsl.Object(dsl.Shape{"id": dsl.String()}).RefineWith(
		func(v any, c goshape.Context) goshape.Verdict {
			m := v.(map[string]any)
			nested := goshape.NewContext(inner, m["id"], c.Opt).Run()
			nested.Issues = nested.Issues.Prefix("id")
			return goshape.RejectWith(nested)
		})
	if _, err := goshape.Parse(s, map[string]any{"id": "abcdef"}); err != nil {
		t.Fatalf("valid nested context should pass: %v", err)
	}
	_, err := goshape.Parse(s, map[string]any{"id": "abc"})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooShort {
		t.Fatalf("got %#v", iss)
	}
	if iss[0].Path.Dot() != "id" {
		t.Fatalf("path: %q", iss[0].Path.Dot())
	}
}

func TestParseFromJSON(t *testing.T) {
	s := dsl.Object(dsl.Shape{"name": dsl.String(), "count": dsl.Int()})
	v, err := goshape.ParseFrom(s, goshape.JSONBytes([]byte(`{"name":"a","count":42}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["name"] != "a" || m["count"] != int64(42) {
		t.Fatalf("got %#v", m)
	}
}

func TestParseFromJSONKeepsFloats(t *testing.T) {
	_, err := goshape.ParseFrom(dsl.Int(), goshape.JSONBytes([]byte(`3.14`)))
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "expected type integer, got float" {
		t.Fatalf("message: %q", got)
	}
}

func TestParseFromMalformedJSON(t *testing.T) {
	_, err := goshape.ParseFrom(dsl.Int(), goshape.JSONBytes([]byte(`{oops`)))
	iss, ok := goshape.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("got %#v", err)
	}
	if iss[0].Code != goshape.CodeInvalidFormat {
		t.Fatalf("code: %q", iss[0].Code)
	}
	if !strings.Contains(iss[0].Message(), "json") {
		t.Fatalf("message: %q", iss[0].Message())
	}
}

func TestParseFromYAML(t *testing.T) {
	s := dsl.Object(dsl.Shape{"name": dsl.String(), "count": dsl.Int()})
	v, err := goshape.ParseFrom(s, goshape.YAMLBytes([]byte("name: a\ncount: 42\n")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["name"] != "a" || m["count"] != int64(42) {
		t.Fatalf("got %#v", m)
	}
}

func TestParseFromEmptyYAML(t *testing.T) {
	v, err := goshape.ParseFrom(dsl.String().Optional(), goshape.YAMLBytes(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("got %#v", v)
	}
}

func TestParseNilDescriptor(t *testing.T) {
	_, err := goshape.Parse(nil, "x")
	if _, ok := goshape.AsIssues(err); !ok {
		t.Fatalf("got %#v", err)
	}
}

func TestNilDefaultPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	goshape.Parse(dsl.String().Default(nil), nil)
}
