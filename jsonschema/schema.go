package jsonschema

import (
	gojson "github.com/goccy/go-json"
)

// Schema is a minimal JSON Schema representation used for export. Keys whose
// value is unset are omitted from the serialized form.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Examples    []any  `json:"examples,omitempty"`

	// Value constraints
	Const   any      `json:"const,omitempty"`
	Enum    []any    `json:"enum,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`

	// Union
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`
}

// Discriminator documents the tag field of a discriminated union, in the
// OpenAPI style.
type Discriminator struct {
	PropertyName string `json:"propertyName"`
}

// JSON serializes the schema fragment, omitting null-valued keys.
func (s *Schema) JSON() ([]byte, error) {
	return gojson.Marshal(s)
}

// IntPtr is a convenience for the pointer-valued count keywords.
func IntPtr(n int) *int { return &n }

// FloatPtr is a convenience for the pointer-valued bound keywords.
func FloatPtr(f float64) *float64 { return &f }
