package dsl_test

import (
	"context"
	"testing"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/dsl"
)

func TestClone_ObjectIsDeep(t *testing.T) {
	original := dsl.Object(dsl.Fields{
		"name": dsl.String(),
	})
	clone := original.Clone().(*dsl.ObjectNode)
	clone.AllowUnknownProperties()

	out, err := mustCompile(t, original).Validate(context.Background(), map[string]any{
		"name":  "virk",
		"extra": true,
	})
	if err != nil {
		t.Fatalf("validate original: %v", err)
	}
	if _, leaked := out.(map[string]any)["extra"]; leaked {
		t.Fatalf("mutating the clone must not affect the original, got %v", out)
	}
}

func TestClone_ChildRuleAttachmentIsIndependent(t *testing.T) {
	name := dsl.String()
	original := dsl.Object(dsl.Fields{"name": name})
	clone := original.Clone().(*dsl.ObjectNode)
	// the clone's children are fresh copies; growing the shared builder
	// afterwards only affects schemas that still reference it
	name.MinLength(10)

	ctx := context.Background()
	if _, err := mustCompile(t, clone).Validate(ctx, map[string]any{"name": "virk"}); err != nil {
		t.Fatalf("clone must keep the rule set from clone time: %v", err)
	}
	_, err := mustCompile(t, original).Validate(ctx, map[string]any{"name": "virk"})
	if iss, ok := goforma.AsIssues(err); !ok || iss[0].Rule != "minLength" {
		t.Fatalf("original still references the mutated builder, got %v", err)
	}
}

func TestClone_UnionBranchesAreIndependent(t *testing.T) {
	branch := dsl.Object(dsl.Fields{"kind": dsl.String()})
	u := dsl.Union(
		dsl.When(func(_ context.Context, value any, _ *goforma.FieldContext) bool {
			_, ok := value.(map[string]any)
			return ok
		}, branch),
	)
	clone := u.Clone().(*dsl.UnionNode)
	branch.AllowUnknownProperties()

	out, err := mustCompile(t, dsl.Object(dsl.Fields{"v": clone})).
		Validate(context.Background(), map[string]any{
			"v": map[string]any{"kind": "a", "extra": 1},
		})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	inner := out.(map[string]any)["v"].(map[string]any)
	if _, leaked := inner["extra"]; leaked {
		t.Fatalf("clone's branch must not see later mutations, got %v", inner)
	}
}
