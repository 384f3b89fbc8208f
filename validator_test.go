package goforma_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/dsl"
	"github.com/reoring/goforma/rules"
)

func TestMetaValidatorAbortsBeforeFields(t *testing.T) {
	fieldRuns := 0
	counting := rules.Custom("counting", func(_ context.Context, _ any, _ any, _ *goforma.FieldContext) {
		fieldRuns++
	})
	metaErr := errors.New("role x is not allowed")
	schema := dsl.Object(dsl.Fields{"username": dsl.String().Use(counting)})
	v := mustCompile(t, schema, goforma.CompileOpt{
		MetaValidator: func(meta map[string]any) error {
			if meta["role"] == "x" {
				return metaErr
			}
			return nil
		},
	})

	_, err := v.Validate(context.Background(), map[string]any{"username": "virk"},
		goforma.ValidateOpt{Meta: map[string]any{"role": "x"}})
	if !errors.Is(err, metaErr) {
		t.Fatalf("expected the meta validator error unchanged, got %v", err)
	}
	if fieldRuns != 0 {
		t.Fatalf("no field may be inspected after a meta failure (%d rule runs)", fieldRuns)
	}

	if _, err := v.Validate(context.Background(), map[string]any{"username": "virk"},
		goforma.ValidateOpt{Meta: map[string]any{"role": "admin"}}); err != nil {
		t.Fatalf("valid meta must pass: %v", err)
	}
}

func TestRulesCanReadMeta(t *testing.T) {
	roleCheck := rules.Custom("roleCheck", func(_ context.Context, _ any, _ any, f *goforma.FieldContext) {
		if f.Meta["role"] != "admin" {
			f.Report("only admins may set this field", "roleCheck", nil)
		}
	})
	schema := dsl.Object(dsl.Fields{"flags": dsl.String().Use(roleCheck)})
	v := mustCompile(t, schema)
	_, err := v.Validate(context.Background(), map[string]any{"flags": "on"},
		goforma.ValidateOpt{Meta: map[string]any{"role": "viewer"}})
	if iss, ok := goforma.AsIssues(err); !ok || iss[0].Rule != "roleCheck" {
		t.Fatalf("expected roleCheck issue, got %v", err)
	}
}

func TestConvertEmptyStringsToNull(t *testing.T) {
	schema := dsl.Object(dsl.Fields{
		"bio":  dsl.String().Nullable(),
		"name": dsl.String(),
	})
	v := mustCompile(t, schema, goforma.CompileOpt{ConvertEmptyStringsToNull: true})

	out, err := v.Validate(context.Background(), map[string]any{"bio": "", "name": "virk"})
	if err != nil {
		t.Fatalf("empty string on a nullable field must normalize to null: %v", err)
	}
	if got := out.(map[string]any)["bio"]; got != nil {
		t.Fatalf("expected null bio, got %v", got)
	}

	_, err = v.Validate(context.Background(), map[string]any{"bio": "x", "name": ""})
	iss, ok := goforma.AsIssues(err)
	if !ok || iss[0].Field != "name" || iss[0].Rule != goforma.RuleString {
		t.Fatalf("empty string on a non-nullable field must fail the type rule, got %v", err)
	}
}

func TestToCamelCase_RenamesOutputKeysOnly(t *testing.T) {
	schema := dsl.Object(dsl.Fields{
		"first_name": dsl.String(),
		"last_name":  dsl.String(),
	})
	v := mustCompile(t, schema, goforma.CompileOpt{ToCamelCase: true})

	out, err := v.Validate(context.Background(), map[string]any{
		"first_name": "Harminder", "last_name": "Virk",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string]any{"firstName": "Harminder", "lastName": "Virk"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Validate(context.Background(), map[string]any{"first_name": "x"})
	iss, _ := goforma.AsIssues(err)
	if len(iss) != 1 || iss[0].Field != "last_name" {
		t.Fatalf("error paths must keep the input key names, got %v", iss)
	}
}

func TestValidateJSON_MatchesDecodedValidate(t *testing.T) {
	schema := dsl.Object(dsl.Fields{
		"username": dsl.String(),
		"age":      dsl.Number().Min(18),
	})
	v := mustCompile(t, schema)
	ctx := context.Background()

	fromJSON, err := v.ValidateJSON(ctx, []byte(`{"username":"virk","age":23}`))
	if err != nil {
		t.Fatalf("ValidateJSON: %v", err)
	}
	fromValue, err := v.Validate(ctx, map[string]any{"username": "virk", "age": 23})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff(fromValue, fromJSON); diff != "" {
		t.Fatalf("JSON and value paths disagree (-value +json):\n%s", diff)
	}
}

func TestValidateJSON_MalformedInputIsReported(t *testing.T) {
	v := mustCompile(t, dsl.Object(dsl.Fields{"a": dsl.String()}))
	_, err := v.ValidateJSON(context.Background(), []byte(`{"a":`))
	iss, ok := goforma.AsIssues(err)
	if !ok || iss[0].Rule != goforma.RuleJSON {
		t.Fatalf("malformed JSON is bad input data, expected a json issue, got %v", err)
	}
}

func TestMarshalJSON_DeterministicAcrossCompiles(t *testing.T) {
	build := func() *dsl.ObjectNode {
		return dsl.Object(dsl.Fields{
			"username": dsl.String().MinLength(3),
			"profile": dsl.Object(dsl.Fields{
				"age": dsl.Number().Optional(),
			}),
		})
	}
	a := mustCompile(t, build())
	b := mustCompile(t, build())
	aj, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal a: %v", err)
	}
	bj, err := b.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal b: %v", err)
	}
	if !bytes.Equal(aj, bj) {
		t.Fatalf("IR projections differ:\n%s\n%s", aj, bj)
	}
}

func TestIndependentCompiles_ShareNoMutableState(t *testing.T) {
	schema := dsl.Object(dsl.Fields{"v": dsl.String()})
	a := mustCompile(t, schema)
	b := mustCompile(t, schema)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := a.Validate(ctx, map[string]any{"v": "x"}); err != nil {
			t.Fatalf("validator a run %d: %v", i, err)
		}
		if _, err := b.Validate(ctx, map[string]any{"v": "x"}); err != nil {
			t.Fatalf("validator b run %d: %v", i, err)
		}
	}
}

func TestCloneLeavesOriginalRuleSetUnchanged(t *testing.T) {
	original := dsl.String().MinLength(3)
	clone := original.Clone().(*dsl.StringNode).MaxLength(5)

	vOriginal := mustCompile(t, dsl.Object(dsl.Fields{"v": original}))
	vClone := mustCompile(t, dsl.Object(dsl.Fields{"v": clone}))
	ctx := context.Background()

	// long value passes the original but fails the clone's added rule
	if _, err := vOriginal.Validate(ctx, map[string]any{"v": "abcdefgh"}); err != nil {
		t.Fatalf("original must not gain the clone's rule: %v", err)
	}
	_, err := vClone.Validate(ctx, map[string]any{"v": "abcdefgh"})
	if iss, ok := goforma.AsIssues(err); !ok || iss[0].Rule != "maxLength" {
		t.Fatalf("clone must carry the added rule, got %v", err)
	}
}

func TestRoundTrip_ValidInputReturnsDeepEqualOutput(t *testing.T) {
	schema := dsl.Object(dsl.Fields{
		"username": dsl.String(),
		"tags":     dsl.Array(dsl.String()),
		"profile": dsl.Object(dsl.Fields{
			"city": dsl.String(),
		}),
	})
	input := map[string]any{
		"username": "virk",
		"tags":     []any{"a", "b"},
		"profile":  map[string]any{"city": "Pune"},
	}
	out, err := mustCompile(t, schema).Validate(context.Background(), input)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff(input, out); diff != "" {
		t.Fatalf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestAs_TypedProjection(t *testing.T) {
	type User struct {
		Username string  `json:"username"`
		Age      float64 `json:"age"`
	}
	schema := dsl.Object(dsl.Fields{
		"username": dsl.String(),
		"age":      dsl.Number(),
	})
	out, err := mustCompile(t, schema).ValidateJSON(context.Background(),
		[]byte(`{"username":"virk","age":23}`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	u, err := goforma.As[User](out)
	if err != nil {
		t.Fatalf("as: %v", err)
	}
	if u.Username != "virk" || u.Age != 23 {
		t.Fatalf("unexpected projection: %+v", u)
	}
}

func TestCustomReporterIsUsed(t *testing.T) {
	var last *recordingReporter
	schema := dsl.Object(dsl.Fields{"v": dsl.String()})
	v := mustCompile(t, schema, goforma.CompileOpt{
		Reporter: func() goforma.ErrorReporter {
			last = &recordingReporter{}
			return last
		},
	})
	_, err := v.Validate(context.Background(), map[string]any{})
	if _, ok := goforma.AsIssues(err); !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if last == nil || !last.HasErrors() {
		t.Fatalf("custom reporter was not consulted")
	}
}

type recordingReporter struct {
	issues goforma.Issues
}

func (r *recordingReporter) Report(issue goforma.Issue) {
	r.issues = goforma.AppendIssues(r.issues, issue)
}
func (r *recordingReporter) HasErrors() bool        { return len(r.issues) > 0 }
func (r *recordingReporter) Errors() goforma.Issues { return r.issues }

func TestCustomMessagesProvider(t *testing.T) {
	schema := dsl.Object(dsl.Fields{"v": dsl.String()})
	v := mustCompile(t, schema, goforma.CompileOpt{Messages: upperProvider{}})
	_, err := v.Validate(context.Background(), map[string]any{})
	iss, _ := goforma.AsIssues(err)
	if len(iss) != 1 || iss[0].Message != "REQUIRED:v" {
		t.Fatalf("expected the provider-built message, got %v", iss)
	}
}

type upperProvider struct{}

func (upperProvider) GetMessage(_, rule string, f *goforma.FieldContext, _ map[string]any) string {
	return "REQUIRED:" + f.Path()
}
