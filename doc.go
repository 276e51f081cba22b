// Package goshape provides:
//
//   - Declarative, immutable type descriptors composed via dsl/ builders
//   - A single evaluation entry point (Parse/ParseFrom) returning either the
//     coerced value or the complete list of Issues with exact paths
//   - Opt-in coercion per call (ParseOpt.Coerce), a partial-success protocol
//     for composite descriptors, and scored union resolution
//   - JSON Schema projection for every descriptor (ToJSONSchema)
//
// Design policy:
//
//   - Keep the engine (Context, Issue, Outcome, effects) in the root package;
//     descriptor kinds and builders live under dsl/.
//   - Evaluation is a pure function of (descriptor, input, options).
//     Descriptors never mutate after construction, so sharing them across
//     goroutines needs no locking.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := dsl.Object(dsl.Shape{
//		"name": dsl.String().MinLen(1),
//		"age":  dsl.Int().Min(18).Optional(),
//	})
//	v, err := goshape.Parse(user, input)
//	v, err = goshape.ParseFrom(user, goshape.JSONBytes(data))
package goshape
