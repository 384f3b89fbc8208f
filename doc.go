// Package goforma compiles declarative schema trees into validators for
// untrusted form/JSON-shaped input.
//
// - A schema is composed with the dsl package and lowered by Compile into a
//   compact IR plus a refs store of runtime callbacks.
// - Validation walks the compiled tree, running each field's rules in
//   declaration order under bail/implicit gating, and either returns the
//   narrowed, transformed output value or an Issues aggregate.
//
// Design policy:
// - Keep only public APIs in the root package; put the IR and input decoding
//   under internal/.
// - Place the builder DSL under dsl/, the leaf rule library under rules/,
//   and messages under i18n/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema := dsl.Object(dsl.Fields{
//		"username": dsl.String(),
//		"password": dsl.String().MinLength(8),
//	})
//	v, err := goforma.Compile(schema)
//	out, err := v.Validate(ctx, input)
//	out, err := v.ValidateJSON(ctx, raw)
package goforma
