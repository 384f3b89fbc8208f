package dsl

import (
	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
	"github.com/reoring/goforma/rules"
)

// ArrayNode validates every element against the same node.
type ArrayNode struct {
	base baseNode
	each Node
}

// Array returns a new array node whose elements validate against each.
func Array(each Node) *ArrayNode {
	return &ArrayNode{base: newBase(), each: each}
}

func (a *ArrayNode) Optional() *ArrayNode                { a.base.optional = true; return a }
func (a *ArrayNode) Nullable() *ArrayNode                { a.base.nullable = true; return a }
func (a *ArrayNode) Bail(enabled bool) *ArrayNode        { a.base.bail = enabled; return a }
func (a *ArrayNode) Use(ru goforma.RuleUse) *ArrayNode   { a.base.use(ru); return a }
func (a *ArrayNode) ParseWith(fn goforma.ParseFn) *ArrayNode { a.base.parse = fn; return a }

func (a *ArrayNode) MinLength(min int) *ArrayNode { return a.Use(rules.ArrayMinLength(min)) }
func (a *ArrayNode) MaxLength(max int) *ArrayNode { return a.Use(rules.ArrayMaxLength(max)) }
func (a *ArrayNode) NotEmpty() *ArrayNode         { return a.Use(rules.NotEmpty()) }
func (a *ArrayNode) Distinct() *ArrayNode         { return a.Use(rules.Distinct()) }

func (a *ArrayNode) Clone() Node {
	c := *a
	c.base = a.base.clone()
	c.each = a.each.Clone()
	return &c
}

func (a *ArrayNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return a.compile("", refs, opts)
}

func (a *ArrayNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return &ir.Array{
		Field: a.base.compileField(name, nil, refs, opts),
		Each:  a.each.compile("*", refs, opts),
	}
}

func (a *ArrayNode) uniqueName() string { return "array" }
func (a *ArrayNode) isOfType(value any) bool {
	_, ok := value.([]any)
	return ok
}
