package goforma

// MessagesProvider resolves the final human-readable message for a reported
// issue. Providers are consulted by Report only; they never influence
// control flow or the pass/fail outcome.
type MessagesProvider interface {
	// GetMessage receives the rule's default message, the rule name, the
	// failing field and the rule args, and returns the message to store on
	// the Issue.
	GetMessage(defaultMessage, rule string, f *FieldContext, args map[string]any) string
}

// ErrorReporter accumulates reported issues. Exactly one reporter instance
// exists per validation run and is shared by every field context in it.
type ErrorReporter interface {
	Report(issue Issue)
	HasErrors() bool
	Errors() Issues
}

// ParserOptions are the compile-time knobs nodes consult while lowering
// themselves to IR.
type ParserOptions struct {
	// ToCamelCase renames object output keys to lowerCamelCase. Error paths
	// keep the input names.
	ToCamelCase bool
}

// CompileOpt bundles the options bound into a Validator at compile time.
type CompileOpt struct {
	// ConvertEmptyStringsToNull normalizes "" to null on every leaf input
	// before rule dispatch.
	ConvertEmptyStringsToNull bool
	// ToCamelCase renames object output keys to lowerCamelCase.
	ToCamelCase bool
	// Messages overrides the default i18n-backed provider.
	Messages MessagesProvider
	// Reporter constructs a fresh reporter for each validation call.
	Reporter func() ErrorReporter
	// MetaValidator validates caller-supplied metadata before any field
	// processing. A non-nil error aborts the run and is returned unchanged.
	MetaValidator func(meta map[string]any) error
}

// ValidateOpt bundles per-call options.
type ValidateOpt struct {
	// Meta is the side-channel metadata exposed to rules and predicates via
	// FieldContext.Meta.
	Meta map[string]any
}
