// Package dsl provides the descriptor kinds and builder surface of goshape.
//
// Constructors (String, Int, Object, List, Union, ...) return immutable
// value-typed descriptors; every modifier is a wither that returns a new
// descriptor, so schemas can be composed and shared freely:
//
//	user := dsl.Object(dsl.Shape{
//		"name": dsl.String().Trim().MinLen(1).MaxLen(100),
//		"age":  dsl.Int().Min(18).Optional(),
//	})
//
// All kinds satisfy goshape.Type; evaluation goes through goshape.Parse.
package dsl
