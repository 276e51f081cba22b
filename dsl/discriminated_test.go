package dsl_test

import (
	"reflect"
	"strings"
	"testing"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func petSchema(t *testing.T) dsl.DiscriminatedUnionType {
	t.Helper()
	return dsl.MustDiscriminatedUnion("type",
		dsl.Object(dsl.Shape{
			"type":  dsl.Literal("dog"),
			"barks": dsl.Bool(),
		}),
		dsl.Object(dsl.Shape{
			"type":  dsl.Literal("cat"),
			"lives": dsl.Int(),
		}),
	)
}

func TestDiscriminatedUnionRoutes(t *testing.T) {
	s := petSchema(t)
	v := mustParse(t, s, map[string]any{"type": "dog", "barks": true})
	want := map[string]any{"type": "dog", "barks": true}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v", v)
	}
}

func TestDiscriminatedUnionBranchErrors(t *testing.T) {
	s := petSchema(t)
	iss := mustFail(t, s, map[string]any{"type": "dog", "barks": "loud"})
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}
	if iss[0].Path.Dot() != "barks" {
		t.Fatalf("path: %q", iss[0].Path.Dot())
	}
}

func TestDiscriminatedUnionUnknownTag(t *testing.T) {
	s := petSchema(t)
	iss := mustFail(t, s, map[string]any{"type": "bird", "flies": true})
	if len(iss) != 1 || iss[0].Code != goshape.CodeDiscriminatorUnknown {
		t.Fatalf("expected the single tag issue, got %#v", iss)
	}
	if len(iss[0].Path) != 0 {
		t.Fatalf("path should be root, got %#v", iss[0].Path)
	}
	want := "expected field type to be one of 'dog' or 'cat', got 'bird'"
	if got := iss[0].Message(); got != want {
		t.Fatalf("message: %q", got)
	}
}

func TestDiscriminatedUnionMissingTag(t *testing.T) {
	s := petSchema(t)
	iss := mustFail(t, s, map[string]any{"barks": true})
	if len(iss) != 1 || iss[0].Code != goshape.CodeDiscriminatorMissing {
		t.Fatalf("got %#v", iss)
	}
	if got := iss[0].Message(); got != "missing discriminator field type" {
		t.Fatalf("message: %q", got)
	}
}

func TestDiscriminatedUnionRejectsNonMap(t *testing.T) {
	iss := mustFail(t, petSchema(t), []any{})
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("got %#v", iss)
	}
}

func TestDiscriminatedUnionAtomTag(t *testing.T) {
	s := petSchema(t)
	v := mustParse(t, s, map[any]any{
		goshape.Atom("type"): goshape.Atom("dog"),
		"barks":              true,
	})
	m := v.(map[string]any)
	// the literal normalizes the tag to its declared form
	if m["type"] != "dog" {
		t.Fatalf("got %#v", m)
	}
}

func TestDiscriminatedUnionConstructionErrors(t *testing.T) {
	// a branch without the discriminator field
	_, err := dsl.DiscriminatedUnion("type",
		dsl.Object(dsl.Shape{"name": dsl.String()}),
	)
	if err == nil || !strings.Contains(err.Error(), "does not declare") {
		t.Fatalf("got %v", err)
	}

	// a discriminator that is not a literal
	_, err = dsl.DiscriminatedUnion("type",
		dsl.Object(dsl.Shape{"type": dsl.String()}),
	)
	if err == nil || !strings.Contains(err.Error(), "must be a literal") {
		t.Fatalf("got %v", err)
	}

	// duplicate tag values, with atom/string equivalence
	_, err = dsl.DiscriminatedUnion("type",
		dsl.Object(dsl.Shape{"type": dsl.Literal("dog")}),
		dsl.Object(dsl.Shape{"type": dsl.Literal(goshape.Atom("dog"))}),
	)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("got %v", err)
	}

	if _, err := dsl.DiscriminatedUnion(""); err == nil {
		t.Fatalf("empty field must be rejected")
	}
	if _, err := dsl.DiscriminatedUnion("type"); err == nil {
		t.Fatalf("empty branch list must be rejected")
	}
}

func TestMustDiscriminatedUnionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	dsl.MustDiscriminatedUnion("type",
		dsl.Object(dsl.Shape{"type": dsl.String()}),
	)
}
