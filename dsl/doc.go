// Package dsl provides the schema node builders. A node is a declarative
// description of the expected shape for one value; composing nodes yields a
// tree that goforma.Compile lowers into IR plus a refs store.
//
// Builders are fluent and mutate their own receiver; use Clone before
// reusing a node as a template:
//
//	schema := dsl.Object(dsl.Fields{
//		"email":    dsl.String().Email(),
//		"password": dsl.String().MinLength(8),
//		"contacts": dsl.Array(dsl.Object(dsl.Fields{
//			"email": dsl.String().Email(),
//		})).Optional(),
//	})
//
// Conditional shapes are expressed with Union (value selection) and Group
// (object-level property merging), both predicate-ordered with a mandatory
// fallback.
package dsl
