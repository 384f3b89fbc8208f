package rules

import (
	"context"
	"fmt"

	goforma "github.com/reoring/goforma"
)

// Array rules run on the raw []any before element validation.

// ArrayMinLength fails when an array has fewer than min elements.
func ArrayMinLength(min int) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "array.minLength",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				arr, ok := value.([]any)
				if ok && len(arr) < min {
					f.Report("the {{field}} field must have at least {{min}} items",
						"array.minLength", map[string]any{"min": min})
				}
			},
		},
		Options: map[string]any{"min": min},
	}
}

// ArrayMaxLength fails when an array has more than max elements.
func ArrayMaxLength(max int) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "array.maxLength",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				arr, ok := value.([]any)
				if ok && len(arr) > max {
					f.Report("the {{field}} field must not have more than {{max}} items",
						"array.maxLength", map[string]any{"max": max})
				}
			},
		},
		Options: map[string]any{"max": max},
	}
}

// NotEmpty fails when an array has no elements.
func NotEmpty() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "notEmpty",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			if arr, ok := value.([]any); ok && len(arr) == 0 {
				f.Report("the {{field}} field must not be empty", "notEmpty", nil)
			}
		},
	}}
}

// Distinct fails when an array holds duplicate scalar elements. Elements are
// compared by their printed representation, so 1 and "1" stay distinct but
// equal numbers collide.
func Distinct() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "distinct",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			arr, ok := value.([]any)
			if !ok {
				return
			}
			seen := make(map[string]struct{}, len(arr))
			for _, el := range arr {
				key := fmt.Sprintf("%T:%v", el, el)
				if _, dup := seen[key]; dup {
					f.Report("the {{field}} field has duplicate values", "distinct", nil)
					return
				}
				seen[key] = struct{}{}
			}
		},
	}}
}
