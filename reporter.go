package goforma

import (
	"fmt"
	"strings"

	"github.com/reoring/goforma/i18n"
)

// SimpleErrorReporter is the default ErrorReporter: an ordered, append-only
// issue list.
type SimpleErrorReporter struct {
	issues Issues
}

// NewSimpleErrorReporter returns an empty reporter for one validation run.
func NewSimpleErrorReporter() *SimpleErrorReporter { return &SimpleErrorReporter{} }

func (r *SimpleErrorReporter) Report(issue Issue) {
	r.issues = AppendIssues(r.issues, issue)
}

func (r *SimpleErrorReporter) HasErrors() bool { return len(r.issues) > 0 }

func (r *SimpleErrorReporter) Errors() Issues { return r.issues }

// SimpleMessagesProvider is the default MessagesProvider. It consults the
// i18n translator by rule name, falls back to the rule's default message,
// and interpolates {{field}} plus {{arg}} placeholders.
type SimpleMessagesProvider struct{}

func (SimpleMessagesProvider) GetMessage(defaultMessage, rule string, f *FieldContext, args map[string]any) string {
	msg := i18n.T(rule, args)
	if msg == "" {
		msg = defaultMessage
	}
	return interpolate(msg, f, args)
}

func interpolate(msg string, f *FieldContext, args map[string]any) string {
	if !strings.Contains(msg, "{{") {
		return msg
	}
	field := f.Path()
	if field == "" {
		field = f.Name
	}
	msg = strings.ReplaceAll(msg, "{{field}}", field)
	for k, v := range args {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", fmt.Sprint(v))
	}
	return msg
}
