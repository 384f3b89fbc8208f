package rules

import (
	"context"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	goforma "github.com/reoring/goforma"
)

// MinLength fails when a string is shorter than min runes.
func MinLength(min int) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "minLength",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				s, ok := value.(string)
				if !ok {
					return
				}
				if utf8.RuneCountInString(s) < min {
					f.Report("the {{field}} field must have at least {{min}} characters",
						"minLength", map[string]any{"min": min})
				}
			},
		},
		Options: map[string]any{"min": min},
	}
}

// MaxLength fails when a string is longer than max runes.
func MaxLength(max int) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "maxLength",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				s, ok := value.(string)
				if !ok {
					return
				}
				if utf8.RuneCountInString(s) > max {
					f.Report("the {{field}} field must not be greater than {{max}} characters",
						"maxLength", map[string]any{"max": max})
				}
			},
		},
		Options: map[string]any{"max": max},
	}
}

// Email fails when a string is not a parseable address.
func Email() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "email",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			s, ok := value.(string)
			if !ok {
				return
			}
			addr, err := mail.ParseAddress(s)
			if err != nil || addr.Address != s {
				f.Report("the {{field}} field must be a valid email address", "email", nil)
			}
		},
	}}
}

// URL fails when a string is not an absolute http(s) URL.
func URL() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "url",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			s, ok := value.(string)
			if !ok {
				return
			}
			u, err := url.Parse(s)
			if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
				f.Report("the {{field}} field must be a valid URL", "url", nil)
			}
		},
	}}
}

// UUID fails when a string is not a canonical UUID.
func UUID() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "uuid",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			s, ok := value.(string)
			if !ok {
				return
			}
			if _, err := uuid.Parse(s); err != nil {
				f.Report("the {{field}} field must be a valid UUID", "uuid", nil)
			}
		},
	}}
}

// Regex fails when a string does not match re.
func Regex(re *regexp.Regexp) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "regex",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				s, ok := value.(string)
				if !ok {
					return
				}
				if !re.MatchString(s) {
					f.Report("the {{field}} field format is invalid", "regex",
						map[string]any{"pattern": re.String()})
				}
			},
		},
		Options: map[string]any{"pattern": re.String()},
	}
}

// Trim strips surrounding whitespace. It is a pure transform and never
// reports; it runs before later rules, so length checks see the trimmed
// value.
func Trim() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: "trim",
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			if s, ok := value.(string); ok {
				f.Mutate(strings.TrimSpace(s))
			}
		},
	}}
}

// In fails when a string is not one of choices.
func In(choices ...string) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: "in",
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				s, ok := value.(string)
				if !ok {
					return
				}
				for _, c := range choices {
					if s == c {
						return
					}
				}
				f.Report("the selected {{field}} is invalid", "in",
					map[string]any{"choices": choices})
			},
		},
		Options: map[string]any{"choices": choices},
	}
}
