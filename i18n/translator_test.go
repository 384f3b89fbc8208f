package i18n_test

import (
	"testing"

	"github.com/reoring/goforma/i18n"
)

func TestT_DefaultEnglish(t *testing.T) {
	if msg := i18n.T("required", nil); msg == "" {
		t.Fatalf("expected a builtin message for required")
	}
	if msg := i18n.T("no-such-rule", nil); msg != "" {
		t.Fatalf("unknown rule must yield empty so callers fall back, got %q", msg)
	}
}

func TestLoadCatalog_OverridesAndFallsBack(t *testing.T) {
	defer i18n.SetTranslator(nil)

	catalog := []byte("required: \"{{field}} cannot be left empty\"\nminLength: \"{{field}} is too short\"\n")
	if err := i18n.LoadCatalog(catalog); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if msg := i18n.T("required", nil); msg != "{{field}} cannot be left empty" {
		t.Fatalf("catalog entry must win, got %q", msg)
	}
	// rules absent from the catalog fall back to the previous translator
	if msg := i18n.T("string", nil); msg == "" {
		t.Fatalf("expected fallback for rules missing from the catalog")
	}
}

func TestLoadCatalog_RejectsInvalidYAML(t *testing.T) {
	if err := i18n.LoadCatalog([]byte("- a\n- list\n")); err == nil {
		t.Fatalf("expected an error for invalid catalog data")
	}
}

func TestSetLanguage(t *testing.T) {
	defer i18n.SetLanguage("en")
	i18n.SetLanguage("ja")
	if msg := i18n.T("required", nil); msg == "" {
		t.Fatalf("expected a Japanese message for required")
	}
}
