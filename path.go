package goshape

import (
	"strconv"
	"strings"
)

// Atom is a string-kinded identifier value. It models the identifier keys and
// tags that may appear alongside plain strings in input maps; key lookup and
// unknown-field detection treat Atom("k") and "k" as the same key.
type Atom string

// Segment is one step in an issue path: a field name (string), a list or
// tuple index (int), or an identifier key (Atom).
type Segment = any

// Path is an ordered list of segments from the schema root down to the value
// an Issue refers to. The empty path denotes the root.
type Path []Segment

// Prepend returns a new Path with segs placed before the existing segments.
// Paths are rebased this way as recursion unwinds: a leaf creates issues with
// a path relative to itself and each enclosing composite prepends its own
// segment.
func (p Path) Prepend(segs ...Segment) Path {
	if len(segs) == 0 {
		return p
	}
	out := make(Path, 0, len(segs)+len(p))
	out = append(out, segs...)
	out = append(out, p...)
	return out
}

// Dot renders the path with dot-joined segments ("items.2.price"). The root
// path renders as "".
func (p Path) Dot() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i, s := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segmentString(s))
	}
	return b.String()
}

func segmentString(s Segment) string {
	switch t := s.(type) {
	case string:
		return t
	case Atom:
		return string(t)
	case int:
		return strconv.Itoa(t)
	default:
		// unexpected segment kinds fall back to their canonical key form
		k, _ := CanonicalKey(s)
		return k
	}
}

// CanonicalKey normalizes a map key to its string representation. It reports
// false for key kinds that have no string equivalent (composite values).
func CanonicalKey(k any) (string, bool) {
	switch t := k.(type) {
	case string:
		return t, true
	case Atom:
		return string(t), true
	case int:
		return strconv.Itoa(t), true
	default:
		return "", false
	}
}
