package rules_test

import (
	"context"
	"testing"
	"time"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/dsl"
	"github.com/reoring/goforma/rules"
)

// Rules are exercised black-box through compiled validators, since field
// contexts only exist inside a validation run.

func check(t *testing.T, node dsl.Node, value any) error {
	t.Helper()
	v, err := goforma.Compile(dsl.Object(dsl.Fields{"v": node}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = v.Validate(context.Background(), map[string]any{"v": value})
	return err
}

func wantRule(t *testing.T, err error, rule string) {
	t.Helper()
	iss, ok := goforma.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Rule != rule {
		t.Fatalf("expected a single %s issue, got %v", rule, err)
	}
}

func TestStringRules(t *testing.T) {
	if err := check(t, dsl.String().MinLength(3), "ab"); err == nil {
		t.Fatalf("minLength must fail")
	} else {
		wantRule(t, err, "minLength")
	}
	if err := check(t, dsl.String().MaxLength(3), "abcd"); err == nil {
		t.Fatalf("maxLength must fail")
	} else {
		wantRule(t, err, "maxLength")
	}
	if err := check(t, dsl.String().Email(), "romain@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	wantRule(t, check(t, dsl.String().Email(), "Romain <romain@example.com>"), "email")
	if err := check(t, dsl.String().URL(), "https://example.com/a"); err != nil {
		t.Fatalf("valid url rejected: %v", err)
	}
	wantRule(t, check(t, dsl.String().URL(), "ftp://example.com"), "url")
	if err := check(t, dsl.String().UUID(), "0190d7a0-0000-7000-8000-000000000000"); err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}
	wantRule(t, check(t, dsl.String().UUID(), "not-a-uuid"), "uuid")
	wantRule(t, check(t, dsl.String().In("a", "b"), "c"), "in")
}

func TestNumberRules(t *testing.T) {
	wantRule(t, check(t, dsl.Number().Min(10), 9), "min")
	wantRule(t, check(t, dsl.Number().Max(10), 11), "max")
	wantRule(t, check(t, dsl.Number().Range(1, 5), 6), "range")
	wantRule(t, check(t, dsl.Number().Positive(), 0), "positive")
	wantRule(t, check(t, dsl.Number().Negative(), 0), "negative")
	wantRule(t, check(t, dsl.Number().WithoutDecimals(), 1.5), "withoutDecimals")
	if err := check(t, dsl.Number().Range(1, 5), 3); err != nil {
		t.Fatalf("in-range value rejected: %v", err)
	}
}

func TestArrayRules(t *testing.T) {
	wantRule(t, check(t, dsl.Array(dsl.String()).MinLength(2), []any{"a"}), "array.minLength")
	wantRule(t, check(t, dsl.Array(dsl.String()).MaxLength(1), []any{"a", "b"}), "array.maxLength")
	wantRule(t, check(t, dsl.Array(dsl.String()).NotEmpty(), []any{}), "notEmpty")
	wantRule(t, check(t, dsl.Array(dsl.String()).Distinct(), []any{"a", "a"}), "distinct")
	if err := check(t, dsl.Array(dsl.String()).Distinct(), []any{"a", "b"}); err != nil {
		t.Fatalf("distinct values rejected: %v", err)
	}
}

func TestDateRules(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wantRule(t, check(t, dsl.Date().Before(cutoff), "2024-06-01"), "before")
	wantRule(t, check(t, dsl.Date().After(cutoff), "2023-06-01"), "after")
	if err := check(t, dsl.Date().After(cutoff), "2024-06-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
}

func TestRequiredWhen(t *testing.T) {
	node := dsl.String().Optional().Use(rules.RequiredWhen(
		func(_ context.Context, f *goforma.FieldContext) bool {
			return f.Meta["strict"] == true
		},
	))
	v, err := goforma.Compile(dsl.Object(dsl.Fields{"v": node}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ctx := context.Background()
	if _, err := v.Validate(ctx, map[string]any{}); err != nil {
		t.Fatalf("lenient meta must allow absence: %v", err)
	}
	_, err = v.Validate(ctx, map[string]any{}, goforma.ValidateOpt{Meta: map[string]any{"strict": true}})
	wantRule(t, err, goforma.RuleRequired)
}
