package goshape

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source decodes one whole input document into an any value for evaluation.
// JSON numbers are preserved as json.Number so integer/float classification
// stays lossless.
type Source interface {
	Decode() (any, error)
	Name() string
}

// JSONBytes wraps a JSON document.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps a JSON stream.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

type jsonSource struct {
	r io.Reader
}

func (s jsonSource) Name() string { return "json" }

func (s jsonSource) Decode() (any, error) {
	dec := gojson.NewDecoder(s.r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLBytes wraps a YAML document.
func YAMLBytes(b []byte) Source { return yamlSource{r: bytes.NewReader(b)} }

// YAMLReader wraps a YAML stream.
func YAMLReader(r io.Reader) Source { return yamlSource{r: r} }

type yamlSource struct {
	r io.Reader
}

func (s yamlSource) Name() string { return "yaml" }

func (s yamlSource) Decode() (any, error) {
	var v any
	if err := yaml.NewDecoder(s.r).Decode(&v); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
