package goforma_test

import (
	"context"
	"errors"
	"testing"

	goforma "github.com/reoring/goforma"
)

func TestRefs_TrackAndResolve(t *testing.T) {
	refs := goforma.NewRefs()
	ruleRef := refs.TrackRule(failAlways("one"))
	predRef := refs.TrackPredicate(func(_ context.Context, _ any, _ *goforma.FieldContext) bool {
		return true
	})
	owRef := refs.TrackOtherwise(func(_ context.Context, _ any, _ *goforma.FieldContext) {})
	parseRef := refs.TrackParser(func(value any) any { return value })

	if refs.Len() != 4 {
		t.Fatalf("expected four tracked callbacks, got %d", refs.Len())
	}
	ids := map[string]struct{}{ruleRef: {}, predRef: {}, owRef: {}, parseRef: {}}
	if len(ids) != 4 {
		t.Fatalf("ids must never be reused within a store, got %v", ids)
	}

	ru, err := refs.Rule(ruleRef)
	if err != nil || ru.Rule.Name != "one" {
		t.Fatalf("rule resolution failed: %v %v", ru, err)
	}
	if _, err := refs.Predicate(ruleRef); !errors.Is(err, goforma.ErrRefNotFound) {
		t.Fatalf("a ref must only resolve in its own table, got %v", err)
	}
	if _, err := refs.Otherwise("ref://99"); !errors.Is(err, goforma.ErrRefNotFound) {
		t.Fatalf("expected ErrRefNotFound for an unknown id, got %v", err)
	}
}
