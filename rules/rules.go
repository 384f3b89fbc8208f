// Package rules is the leaf rule library: named, parameterized units of
// validation and transformation conforming to the goforma.Rule contract.
// Every rule signals failure through the field's Report capability and
// silently skips values of the wrong type, since the node's type rule has
// already reported those.
package rules

import (
	"context"

	goforma "github.com/reoring/goforma"
)

// Custom wraps fn as a named synchronous rule with no options.
func Custom(name string, fn goforma.RuleValidator) goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{Name: name, Validate: fn}}
}

// CustomAsync wraps fn as a rule that may block on I/O. Only the async
// validation path may run it; ValidateSync refuses the whole tree.
func CustomAsync(name string, fn goforma.RuleValidator) goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{Name: name, IsAsync: true, Validate: fn}}
}

// CustomImplicit wraps fn as a rule that runs even when the field is absent,
// for required-style semantics.
func CustomImplicit(name string, fn goforma.RuleValidator) goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{Name: name, Implicit: true, Validate: fn}}
}

// RequiredWhen is an implicit rule reporting absence only when the predicate
// holds for the run.
func RequiredWhen(predicate func(ctx context.Context, f *goforma.FieldContext) bool) goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name:     goforma.RuleRequired,
		Implicit: true,
		Validate: func(ctx context.Context, _ any, _ any, f *goforma.FieldContext) {
			if !f.IsDefined && predicate(ctx, f) {
				f.Report("the {{field}} field is required", goforma.RuleRequired, nil)
			}
		},
	}}
}
