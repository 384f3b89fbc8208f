package dsl

import (
	"github.com/stoewer/go-strcase"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
)

// Fields declares the known properties of an object or group branch.
// Properties compile in sorted key order so error ordering is deterministic.
type Fields map[string]Node

// Node is one schema node. Nodes are immutable after construction except
// through their own builder methods; Clone produces an independent copy so a
// node can be reused as a template.
type Node interface {
	goforma.Schema
	// Clone returns a structural copy sharing no mutable rule-list identity
	// with the original. Children are cloned too.
	Clone() Node
	// compile lowers the node when embedded under the given field name. The
	// unexported method seals Node to this package.
	compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node
}

// baseNode carries the state shared by every builder.
type baseNode struct {
	optional bool
	nullable bool
	bail     bool
	rules    []goforma.RuleUse
	parse    goforma.ParseFn
}

func newBase() baseNode { return baseNode{bail: true} }

func (b baseNode) clone() baseNode {
	nb := b
	nb.rules = append([]goforma.RuleUse(nil), b.rules...)
	return nb
}

func (b *baseNode) use(ru goforma.RuleUse) { b.rules = append(b.rules, ru) }

// compileField lowers the shared node state into an IR field. Non-optional
// nodes get the implicit required rule first; typeRule, when non-nil, is
// spliced between it and the attached rules.
func (b *baseNode) compileField(name string, typeRule *goforma.RuleUse, refs *goforma.Refs, opts goforma.ParserOptions) ir.Field {
	f := ir.Field{
		FieldName:    name,
		PropertyName: name,
		Bail:         b.bail,
		AllowNull:    b.nullable,
		IsOptional:   b.optional,
	}
	if opts.ToCamelCase && name != "" {
		f.PropertyName = strcase.LowerCamelCase(name)
	}
	if b.parse != nil {
		f.ParseRef = refs.TrackParser(b.parse)
	}
	vals := make([]ir.Validation, 0, len(b.rules)+2)
	if !b.optional {
		vals = append(vals, trackRule(refs, requiredRule()))
	}
	if typeRule != nil {
		vals = append(vals, trackRule(refs, *typeRule))
	}
	for _, ru := range b.rules {
		vals = append(vals, trackRule(refs, ru))
	}
	f.Validations = vals
	return f
}

func trackRule(refs *goforma.Refs, ru goforma.RuleUse) ir.Validation {
	return ir.Validation{
		Rule:     ru.Rule.Name,
		Ref:      refs.TrackRule(ru),
		Implicit: ru.Rule.Implicit,
		IsAsync:  ru.Rule.IsAsync,
	}
}

func composeParse(prev, next goforma.ParseFn) goforma.ParseFn {
	if prev == nil {
		return next
	}
	return func(value any) any { return next(prev(value)) }
}
