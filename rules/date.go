package rules

import (
	"context"
	"time"

	goforma "github.com/reoring/goforma"
)

// Date rules assume the node's type rule already narrowed the value to
// time.Time.

// Before fails when a date is not strictly before t.
func Before(t time.Time) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "before",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				d, ok := value.(time.Time)
				if ok && !d.Before(t) {
					f.Report("the {{field}} field must be a date before {{limit}}",
						"before", map[string]any{"limit": t.Format(time.RFC3339)})
				}
			},
		},
		Options: map[string]any{"limit": t},
	}
}

// After fails when a date is not strictly after t.
func After(t time.Time) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "after",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				d, ok := value.(time.Time)
				if ok && !d.After(t) {
					f.Report("the {{field}} field must be a date after {{limit}}",
						"after", map[string]any{"limit": t.Format(time.RFC3339)})
				}
			},
		},
		Options: map[string]any{"limit": t},
	}
}
