package goforma

import (
	"errors"
	"fmt"
	"strings"
)

// Rule names reported by the builtin rules (exported consts for IDE
// completion and stable matching in tests). User-defined rules may use any
// name.
const (
	RuleRequired = "required"
	RuleString   = "string"
	RuleNumber   = "number"
	RuleBoolean  = "boolean"
	RuleDate     = "date"
	RuleEnum     = "enum"
	RuleAccepted = "accepted"
	RuleLiteral  = "literal"
	RuleObject   = "object"
	RuleArray    = "array"
	RuleTuple    = "tuple"
	RuleRecord   = "record"
	RuleUnion    = "union"
	RuleGroup    = "group"
	RuleJSON     = "json"
)

// Contract errors. These indicate API misuse, never bad input data, and are
// returned immediately instead of being collected into Issues.
var (
	// ErrAsyncRequired is returned by the synchronous path when it is about
	// to dispatch a rule marked IsAsync. Rules gated off for the given input
	// are never dispatched and never trip it.
	ErrAsyncRequired = errors.New("goforma: rule is async; use Validate instead of ValidateSync")
	// ErrRefNotFound is returned when an id emitted into the IR does not
	// resolve in the refs store at execution time.
	ErrRefNotFound = errors.New("goforma: ref not found in refs store")
)

// Issue represents a single reported validation error.
type Issue struct {
	// Field is the dotted path of the failing field within the root input,
	// for example "contacts.0.email". Empty for the root value itself.
	Field string `json:"field"`
	// WildCard is Field with array indices replaced by "*".
	WildCard string `json:"wildCard,omitempty"`
	// Rule records the rule name that produced this issue.
	Rule    string `json:"rule"`
	Message string `json:"message"`
	// Args carries the rule options that produced this issue (for example
	// {"min": 8}) for message interpolation and observability.
	Args map[string]any `json:"args,omitempty"`
}

// Issues is the ordered collection of reported errors for one validation
// run. It implements error and is the aggregate rejection value.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at profile.email
		fmt.Fprintf(b, "%s at %s", it.Rule, it.Field)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
