package rules

import (
	"context"
	"math"

	goforma "github.com/reoring/goforma"
)

// Number rules assume the node's type rule already narrowed the value to
// float64; other representations are skipped.

// Min fails when a number is below min.
func Min(min float64) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "min",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				n, ok := value.(float64)
				if ok && n < min {
					f.Report("the {{field}} field must be at least {{min}}",
						"min", map[string]any{"min": min})
				}
			},
		},
		Options: map[string]any{"min": min},
	}
}

// Max fails when a number is above max.
func Max(max float64) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "max",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				n, ok := value.(float64)
				if ok && n > max {
					f.Report("the {{field}} field must not be greater than {{max}}",
						"max", map[string]any{"max": max})
				}
			},
		},
		Options: map[string]any{"max": max},
	}
}

// Range fails when a number lies outside [min, max].
func Range(min, max float64) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "range",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				n, ok := value.(float64)
				if ok && (n < min || n > max) {
					f.Report("the {{field}} field must be between {{min}} and {{max}}",
						"range", map[string]any{"min": min, "max": max})
				}
			},
		},
		Options: map[string]any{"min": min, "max": max},
	}
}

// Positive fails when a number is not strictly positive.
func Positive() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "positive",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			if n, ok := value.(float64); ok && n <= 0 {
				f.Report("the {{field}} field must be positive", "positive", nil)
			}
		},
	}}
}

// Negative fails when a number is not strictly negative.
func Negative() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "negative",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			if n, ok := value.(float64); ok && n >= 0 {
				f.Report("the {{field}} field must be negative", "negative", nil)
			}
		},
	}}
}

// WithoutDecimals fails when a number has a fractional part.
func WithoutDecimals() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "withoutDecimals",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			if n, ok := value.(float64); ok && n != math.Trunc(n) {
				f.Report("the {{field}} field must be an integer", "withoutDecimals", nil)
			}
		},
	}}
}
