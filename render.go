package goshape

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Verbatim marks a param value that is already rendered; it is substituted
// into the template as-is, without quoting.
type Verbatim string

type wordList struct {
	items []any
	sep   string
}

// Conjunction renders a param as "a, b and c".
func Conjunction(items ...any) any { return wordList{items: items, sep: "and"} }

// Disjunction renders a param as "a, b or c".
func Disjunction(items ...any) any { return wordList{items: items, sep: "or"} }

// Message renders the issue's template by substituting every %{key}
// placeholder with a kind-aware rendering of Params[key]. Rendering is pure
// and idempotent; placeholders with no matching param are left untouched.
func (i Issue) Message() string {
	tpl := i.Template
	if tpl == "" {
		return ""
	}
	b := &strings.Builder{}
	for {
		at := strings.Index(tpl, "%{")
		if at < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		end := strings.IndexByte(tpl[at:], '}')
		if end < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		b.WriteString(tpl[:at])
		key := tpl[at+2 : at+end]
		if v, ok := i.Params[key]; ok {
			b.WriteString(renderParam(v))
		} else {
			b.WriteString(tpl[at : at+end+1])
		}
		tpl = tpl[at+end+1:]
	}
}

func renderParam(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case Verbatim:
		return string(t)
	case Atom:
		return ":" + string(t)
	case string:
		return "'" + t + "'"
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	case wordList:
		return renderList(t)
	case []any:
		return renderList(wordList{items: t, sep: "and"})
	default:
		return fmt.Sprintf("%v", t)
	}
}

func renderList(l wordList) string {
	n := len(l.items)
	switch n {
	case 0:
		return ""
	case 1:
		return renderParam(l.items[0])
	}
	b := &strings.Builder{}
	for i, it := range l.items {
		switch {
		case i == 0:
		case i == n-1:
			b.WriteString(" " + l.sep + " ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(renderParam(it))
	}
	return b.String()
}

// TypeName classifies a runtime value into the type vocabulary used by
// type-mismatch and coercion messages.
func TypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case string:
		return "string"
	case Atom:
		return "atom"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return "integer"
		}
		return "float"
	case time.Time:
		return "datetime"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "map"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "map"
	default:
		return reflect.TypeOf(v).String()
	}
}

// Summarize groups rendered messages by dot-joined path, preserving issue
// order within each path. Root-level issues are keyed by "".
func Summarize(iss Issues) map[string][]string {
	out := make(map[string][]string, len(iss))
	for _, it := range iss {
		k := it.Path.Dot()
		out[k] = append(out[k], it.Message())
	}
	return out
}

// Pretty renders a multi-line human-readable report grouped by path, in
// first-seen path order.
func Pretty(iss Issues) string {
	if len(iss) == 0 {
		return ""
	}
	order := make([]string, 0, len(iss))
	grouped := make(map[string][]string, len(iss))
	for _, it := range iss {
		k := it.Path.Dot()
		if k == "" {
			k = "(root)"
		}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], it.Message())
	}
	b := &strings.Builder{}
	for _, k := range order {
		b.WriteString(k)
		b.WriteString(":\n")
		for _, m := range grouped[k] {
			b.WriteString("  - ")
			b.WriteString(m)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
