package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired             = "required"
	CodeInvalidType          = "invalid_type"
	CodeCoercion             = "coercion_failure"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeTooShort             = "too_short"
	CodeTooLong              = "too_long"
	CodePattern              = "pattern"
	CodeInvalidEnum          = "invalid_enum"
	CodeContains             = "contains"
	CodeInvalidFormat        = "invalid_format"
	CodeUnknownKey           = "unknown_key"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeRefine               = "refine"
)

// Issue represents a single validation entry. The final message is produced
// lazily by Message, substituting Params into the %{name} placeholders of
// Template.
type Issue struct {
	Path     Path   // segments from the schema root; empty means root
	Code     string // one of the codes listed above
	Template string // message template with %{name} placeholders
	// Params carries the named values substituted into Template. Values render
	// kind-aware: strings single-quoted, Atoms with a ':' sigil, Verbatim
	// passed through, Conjunction/Disjunction as natural-language lists.
	Params map[string]any
}

// prefixed returns a copy of the issue with segs prepended to its path.
func (i Issue) prefixed(segs ...Segment) Issue {
	i.Path = i.Path.Prepend(segs...)
	return i
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at items.2
		p := it.Path.Dot()
		if p == "" {
			p = "(root)"
		}
		fmt.Fprintf(b, "%s at %s", it.Code, p)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Prefix returns a new Issues slice with segs prepended to every path. The
// receiver is never mutated.
func (iss Issues) Prefix(segs ...Segment) Issues {
	if len(iss) == 0 || len(segs) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i := range iss {
		out[i] = iss[i].prefixed(segs...)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
