package goforma

import "context"

// RuleValidator is the callback shape of a rule. It signals failure only by
// calling f.Report; returning normally means the rule passed. Throwing
// (panicking) is reserved for programmer errors. ctx is the validation
// call's context on the async path and context.Background() on the sync
// path.
type RuleValidator func(ctx context.Context, value any, options any, f *FieldContext)

// Rule is a named, possibly parameterized unit of validation or
// transformation. A rule changes the value seen by subsequent rules only
// through f.Mutate.
type Rule struct {
	Name string
	// Implicit rules run even when the field is not defined. Required-style
	// rules use this to report absence; everything else skips absent fields.
	Implicit bool
	// IsAsync marks rules that may block on I/O. The synchronous execution
	// path refuses them with ErrAsyncRequired.
	IsAsync  bool
	Validate RuleValidator
}

// RuleUse pairs a rule with the options bound at attachment time. Options
// are passed verbatim to the validator on every invocation.
type RuleUse struct {
	Rule    Rule
	Options any
}

// Predicate decides whether a union or group branch applies. Predicates are
// evaluated lazily in declaration order and the first match wins; predicates
// for non-winning branches after the match are never called.
type Predicate func(ctx context.Context, value any, f *FieldContext) bool

// OtherwiseFn handles the no-branch-matched case of a union or group. It is
// expected to report an issue; it is never silently skipped.
type OtherwiseFn func(ctx context.Context, value any, f *FieldContext)

// ParseFn normalizes a raw input value before rule dispatch. Returning a
// non-nil value for a previously absent field defines it, which is how
// defaults are expressed.
type ParseFn func(value any) any
