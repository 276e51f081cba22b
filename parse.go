package goshape

import (
	js "github.com/reoring/goshape/jsonschema"
)

// Parse is the primary entry point: one pure evaluation of input against a
// descriptor. It returns the validated/coerced value, or the complete list
// of Issues for this attempt as the error.
func Parse(t Type, v any, opts ...ParseOpt) (any, error) {
	if t == nil {
		return nil, Issues{{Code: CodeInvalidType, Template: "nil descriptor"}}
	}
	return NewContext(t, v, lastOpt(opts)).Run().Unwrap()
}

// ParseFrom decodes a whole value from the Source and evaluates it, the same
// way Parse does. Decode failures surface as a single coercion-channel-free
// parse issue at the root.
func ParseFrom(t Type, src Source, opts ...ParseOpt) (any, error) {
	v, err := src.Decode()
	if err != nil {
		return nil, Issues{{
			Code:     CodeInvalidFormat,
			Template: "input is not well-formed %{format}: %{detail}",
			Params:   map[string]any{"format": Verbatim(src.Name()), "detail": Verbatim(err.Error())},
		}}
	}
	return Parse(t, v, opts...)
}

// ToJSONSchema projects a descriptor into its JSON Schema fragment.
func ToJSONSchema(t Type) *js.Schema { return t.JSONSchema() }

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
