package goforma

import (
	"errors"

	"github.com/reoring/goforma/internal/ir"
)

// Schema is the compilation contract between the dsl builders and Compile: a
// node lowers itself (and its children, depth-first) into IR exactly once
// per compile call, registering runtime callbacks in the passed-in refs
// store. CompileToIR must be referentially transparent given the same refs
// store; registering callbacks is the only global effect it may have.
type Schema interface {
	CompileToIR(refs *Refs, opts ParserOptions) ir.Node
}

// Compile lowers a schema node tree into an immutable (IR, refs) pair and
// binds it to the given options. The returned Validator is created once per
// schema and reused across many inputs; it is safe for concurrent use.
// Compiling the same tree twice yields two independent validators whose refs
// stores share no mutable state.
func Compile(schema Schema, opts ...CompileOpt) (*Validator, error) {
	if schema == nil {
		return nil, errors.New("goforma: Compile requires a schema")
	}
	var cfg CompileOpt
	if len(opts) > 0 {
		cfg = opts[0]
	}
	refs := NewRefs()
	root := schema.CompileToIR(refs, ParserOptions{ToCamelCase: cfg.ToCamelCase})

	messages := cfg.Messages
	if messages == nil {
		messages = SimpleMessagesProvider{}
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = func() ErrorReporter { return NewSimpleErrorReporter() }
	}
	return &Validator{
		root:     root,
		refs:     refs,
		cfg:      cfg,
		messages: messages,
		reporter: reporter,
	}, nil
}

// MustCompile is Compile that panics on error, for package-level schema
// construction.
func MustCompile(schema Schema, opts ...CompileOpt) *Validator {
	v, err := Compile(schema, opts...)
	if err != nil {
		panic(err)
	}
	return v
}
