package dsl_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func mustParse(t *testing.T, s goshape.Type, v any, opts ...goshape.ParseOpt) any {
	t.Helper()
	out, err := goshape.Parse(s, v, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func mustFail(t *testing.T, s goshape.Type, v any, opts ...goshape.ParseOpt) goshape.Issues {
	t.Helper()
	_, err := goshape.Parse(s, v, opts...)
	iss, ok := goshape.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %#v", err)
	}
	return iss
}

func TestStringConstraints(t *testing.T) {
	s := dsl.String().MinLen(3).MaxLen(5)
	if got := mustParse(t, s, "abcd"); got != "abcd" {
		t.Fatalf("got %#v", got)
	}

	iss := mustFail(t, s, "ab")
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooShort {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "should have at least 3 characters, got 'ab'" {
		t.Fatalf("message: %q", got)
	}

	iss = mustFail(t, s, "abcdef")
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooLong {
		t.Fatalf("got %#v", iss)
	}
}

func TestStringLengthCountsRunes(t *testing.T) {
	s := dsl.String().MaxLen(3)
	if got := mustParse(t, s, "日本語"); got != "日本語" {
		t.Fatalf("got %#v", got)
	}
}

func TestStringPattern(t *testing.T) {
	s := dsl.String().Pattern(`^[a-z]+$`)
	mustParse(t, s, "abc")
	iss := mustFail(t, s, "ABC")
	if len(iss) != 1 || iss[0].Code != goshape.CodePattern {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "does not match pattern ^[a-z]+$" {
		t.Fatalf("message: %q", got)
	}
}

func TestStringContains(t *testing.T) {
	s := dsl.String().Contains("@")
	mustParse(t, s, "a@b")
	iss := mustFail(t, s, "ab")
	if len(iss) != 1 || iss[0].Code != goshape.CodeContains {
		t.Fatalf("got %#v", iss)
	}
}

func TestStringTrim(t *testing.T) {
	s := dsl.String().Trim().MinLen(3)
	if got := mustParse(t, s, "  abc  "); got != "abc" {
		t.Fatalf("got %#v", got)
	}
	// constraints see the trimmed value
	mustFail(t, s, "  ab  ")
}

func TestStringConstraintViolationsAllCollected(t *testing.T) {
	s := dsl.String().MinLen(10).Pattern(`^[a-z]+$`)
	iss := mustFail(t, s, "ABC")
	if len(iss) != 2 {
		t.Fatalf("expected both violations, got %#v", iss)
	}
}

func TestStringMismatchAndCoercion(t *testing.T) {
	iss := mustFail(t, dsl.String(), 42)
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "expected type string, got integer" {
		t.Fatalf("message: %q", got)
	}

	on := goshape.ParseOpt{Coerce: goshape.CoerceOn}
	if got := mustParse(t, dsl.String(), 42, on); got != "42" {
		t.Fatalf("got %#v", got)
	}
	if got := mustParse(t, dsl.String(), true, on); got != "true" {
		t.Fatalf("got %#v", got)
	}
	if got := mustParse(t, dsl.String(), 2.5, on); got != "2.5" {
		t.Fatalf("got %#v", got)
	}

	// atoms convert only under unsafe coercion
	mustFail(t, dsl.String(), goshape.Atom("id"), on)
	unsafe := goshape.ParseOpt{Coerce: goshape.CoerceUnsafe}
	if got := mustParse(t, dsl.String(), goshape.Atom("id"), unsafe); got != "id" {
		t.Fatalf("got %#v", got)
	}
}

func TestIntConstraints(t *testing.T) {
	s := dsl.Int().Min(18).Max(99)
	if got := mustParse(t, s, int64(21)); got != int64(21) {
		t.Fatalf("got %#v", got)
	}
	iss := mustFail(t, s, 16)
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooSmall {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "should be greater than or equal to 18, got 16" {
		t.Fatalf("message: %q", got)
	}
	iss = mustFail(t, s, 120)
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooBig {
		t.Fatalf("got %#v", iss)
	}
}

func TestIntConstraintMessageOverride(t *testing.T) {
	s := dsl.Int().Min(18, goshape.Message("must be an adult age, got %{actual}"))
	iss := mustFail(t, s, 16)
	if got := iss[0].Message(); got != "must be an adult age, got 16" {
		t.Fatalf("message: %q", got)
	}
}

func TestIntRejectsFloatWithoutCoercion(t *testing.T) {
	iss := mustFail(t, dsl.Int(), 3.14)
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "expected type integer, got float" {
		t.Fatalf("message: %q", got)
	}
}

func TestIntCoercion(t *testing.T) {
	on := goshape.ParseOpt{Coerce: goshape.CoerceOn}
	unsafe := goshape.ParseOpt{Coerce: goshape.CoerceUnsafe}

	if got := mustParse(t, dsl.Int(), "42", on); got != int64(42) {
		t.Fatalf("got %#v", got)
	}
	if got := mustParse(t, dsl.Int(), 42.0, on); got != int64(42) {
		t.Fatalf("got %#v", got)
	}

	// lossy conversions only under unsafe coercion
	iss := mustFail(t, dsl.Int(), 3.14, on)
	if len(iss) != 1 || iss[0].Code != goshape.CodeCoercion {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "cannot coerce 3.14 into integer" {
		t.Fatalf("message: %q", got)
	}
	if got := mustParse(t, dsl.Int(), 3.7, unsafe); got != int64(4) {
		t.Fatalf("got %#v", got)
	}

	iss = mustFail(t, dsl.Int(), "not a number", on)
	if len(iss) != 1 || iss[0].Code != goshape.CodeCoercion {
		t.Fatalf("got %#v", iss)
	}

	// a string source stays a type mismatch with coercion off
	iss = mustFail(t, dsl.Int(), "42")
	if iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}
}

func TestIntAcceptsGoIntegerWidths(t *testing.T) {
	for _, v := range []any{int(7), int32(7), uint8(7), uint64(7)} {
		if got := mustParse(t, dsl.Int(), v); got != int64(7) {
			t.Fatalf("Parse(%#v) = %#v", v, got)
		}
	}
}

func TestFloatAcceptsIntegers(t *testing.T) {
	if got := mustParse(t, dsl.Float(), 42); got != float64(42) {
		t.Fatalf("got %#v", got)
	}
	if got := mustParse(t, dsl.Float(), 2.5); got != 2.5 {
		t.Fatalf("got %#v", got)
	}
	iss := mustFail(t, dsl.Float().Min(0.5), 0.25)
	if len(iss) != 1 || iss[0].Code != goshape.CodeTooSmall {
		t.Fatalf("got %#v", iss)
	}
}

func TestFloatCoercion(t *testing.T) {
	on := goshape.ParseOpt{Coerce: goshape.CoerceOn}
	if got := mustParse(t, dsl.Float(), "2.5", on); got != 2.5 {
		t.Fatalf("got %#v", got)
	}
	iss := mustFail(t, dsl.Float(), "x", on)
	if iss[0].Code != goshape.CodeCoercion {
		t.Fatalf("got %#v", iss)
	}
}

func TestBool(t *testing.T) {
	if got := mustParse(t, dsl.Bool(), true); got != true {
		t.Fatalf("got %#v", got)
	}
	iss := mustFail(t, dsl.Bool(), "true")
	if iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}

	on := goshape.ParseOpt{Coerce: goshape.CoerceOn}
	unsafe := goshape.ParseOpt{Coerce: goshape.CoerceUnsafe}
	if got := mustParse(t, dsl.Bool(), "true", on); got != true {
		t.Fatalf("got %#v", got)
	}
	if got := mustParse(t, dsl.Bool(), "False", on); got != false {
		t.Fatalf("got %#v", got)
	}
	mustFail(t, dsl.Bool(), "yes", on)
	if got := mustParse(t, dsl.Bool(), "yes", unsafe); got != true {
		t.Fatalf("got %#v", got)
	}
	if got := mustParse(t, dsl.Bool(), 0, unsafe); got != false {
		t.Fatalf("got %#v", got)
	}
	mustFail(t, dsl.Bool(), 2, unsafe)
}

// reparsing a successful output must yield the same value without coercion
func TestOutputsReparseCleanly(t *testing.T) {
	cases := []struct {
		name string
		s    goshape.Type
		in   any
	}{
		{"string", dsl.String(), "abc"},
		{"int", dsl.Int(), 42},
		{"float", dsl.Float(), 2.5},
		{"bool", dsl.Bool(), true},
		{"coerced int", dsl.Int(), "42"},
		{"coerced string", dsl.String(), 42},
		{"literal", dsl.Literal("dog"), goshape.Atom("dog")},
		{"enum", dsl.Enum("a", "b"), "a"},
		{"time", dsl.Time(), "2024-05-01T12:00:00Z"},
	}
	unsafe := goshape.ParseOpt{Coerce: goshape.CoerceUnsafe}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := goshape.Parse(tc.s, tc.in, unsafe)
			if err != nil {
				t.Fatalf("first parse: %v", err)
			}
			second, err := goshape.Parse(tc.s, first)
			if err != nil {
				t.Fatalf("reparse without coercion: %v", err)
			}
			if first != second {
				t.Fatalf("not stable: %#v != %#v", first, second)
			}
		})
	}
}
