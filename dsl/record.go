package dsl

import (
	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
)

// RecordNode validates every value of a free-key map against the same node.
// Keys are data, so they are never renamed; values validate in sorted key
// order for deterministic error ordering.
type RecordNode struct {
	base baseNode
	each Node
}

// Record returns a new record node whose values validate against each.
func Record(each Node) *RecordNode {
	return &RecordNode{base: newBase(), each: each}
}

func (r *RecordNode) Optional() *RecordNode                { r.base.optional = true; return r }
func (r *RecordNode) Nullable() *RecordNode                { r.base.nullable = true; return r }
func (r *RecordNode) Bail(enabled bool) *RecordNode        { r.base.bail = enabled; return r }
func (r *RecordNode) Use(ru goforma.RuleUse) *RecordNode   { r.base.use(ru); return r }
func (r *RecordNode) ParseWith(fn goforma.ParseFn) *RecordNode { r.base.parse = fn; return r }

func (r *RecordNode) Clone() Node {
	c := *r
	c.base = r.base.clone()
	c.each = r.each.Clone()
	return &c
}

func (r *RecordNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return r.compile("", refs, opts)
}

func (r *RecordNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return &ir.Record{
		Field: r.base.compileField(name, nil, refs, opts),
		Each:  r.each.compile("*", refs, opts),
	}
}
