package dsl

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"

	goforma "github.com/reoring/goforma"
)

// WhenExpr builds a union branch whose predicate is an expr-lang expression
// compiled at schema-construction time. The expression sees value (the field
// value), data (the root input) and meta, and must evaluate to a boolean:
//
//	dsl.WhenExpr(`value.type == "card"`, cardSchema)
//
// An expression that fails to compile panics, since that is API misuse; a
// runtime evaluation error counts as no match.
func WhenExpr(code string, node Node) UnionBranch {
	return When(exprPredicate(code), node)
}

// WhenGroupExpr builds a group branch from an expr-lang expression. The
// expression sees the owning object as value.
func WhenGroupExpr(code string, fields Fields) GroupBranch {
	return WhenGroup(exprPredicate(code), fields)
}

func exprPredicate(code string) goforma.Predicate {
	prog, err := expr.Compile(code)
	if err != nil {
		panic(fmt.Sprintf("dsl: invalid condition expression %q: %v", code, err))
	}
	return func(_ context.Context, value any, f *goforma.FieldContext) bool {
		out, err := expr.Run(prog, map[string]any{
			"value": value,
			"data":  f.Data,
			"meta":  f.Meta,
		})
		if err != nil {
			return false
		}
		b, _ := out.(bool)
		return b
	}
}
