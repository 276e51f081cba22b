package goshape_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
)

func TestPathDot(t *testing.T) {
	cases := []struct {
		p    goshape.Path
		want string
	}{
		{nil, ""},
		{goshape.Path{"items"}, "items"},
		{goshape.Path{"items", 2, "price"}, "items.2.price"},
		{goshape.Path{goshape.Atom("tag")}, "tag"},
	}
	for _, tc := range cases {
		if got := tc.p.Dot(); got != tc.want {
			t.Fatalf("Dot(%#v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestPathPrepend(t *testing.T) {
	base := goshape.Path{"price"}
	got := base.Prepend("items", 2)
	if got.Dot() != "items.2.price" {
		t.Fatalf("got %q", got.Dot())
	}
	// the receiver stays untouched
	if base.Dot() != "price" {
		t.Fatalf("receiver mutated: %q", base.Dot())
	}
}

func TestIssuesPrefixDoesNotMutate(t *testing.T) {
	iss := goshape.Issues{{Path: goshape.Path{"x"}}}
	out := iss.Prefix("outer")
	if out[0].Path.Dot() != "outer.x" {
		t.Fatalf("got %q", out[0].Path.Dot())
	}
	if iss[0].Path.Dot() != "x" {
		t.Fatalf("receiver mutated: %q", iss[0].Path.Dot())
	}
}

func TestCanonicalKey(t *testing.T) {
	if k, ok := goshape.CanonicalKey("name"); !ok || k != "name" {
		t.Fatalf("string: %q %v", k, ok)
	}
	if k, ok := goshape.CanonicalKey(goshape.Atom("name")); !ok || k != "name" {
		t.Fatalf("atom: %q %v", k, ok)
	}
	if k, ok := goshape.CanonicalKey(3); !ok || k != "3" {
		t.Fatalf("int: %q %v", k, ok)
	}
	if _, ok := goshape.CanonicalKey([]any{}); ok {
		t.Fatalf("composite keys have no canonical form")
	}
}
