package dsl

import (
	"strconv"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
)

// TupleNode validates fixed positions, each against its own node. Extra
// elements are dropped unless AllowUnknownProperties is set, in which case
// they pass through untouched.
type TupleNode struct {
	base         baseNode
	items        []Node
	allowUnknown bool
}

// Tuple returns a new tuple node over the given positional nodes.
func Tuple(items ...Node) *TupleNode {
	return &TupleNode{base: newBase(), items: items}
}

func (t *TupleNode) Optional() *TupleNode              { t.base.optional = true; return t }
func (t *TupleNode) Nullable() *TupleNode              { t.base.nullable = true; return t }
func (t *TupleNode) Bail(enabled bool) *TupleNode      { t.base.bail = enabled; return t }
func (t *TupleNode) Use(ru goforma.RuleUse) *TupleNode { t.base.use(ru); return t }

// AllowUnknownProperties keeps elements beyond the declared positions.
func (t *TupleNode) AllowUnknownProperties() *TupleNode {
	t.allowUnknown = true
	return t
}

func (t *TupleNode) Clone() Node {
	c := *t
	c.base = t.base.clone()
	c.items = make([]Node, len(t.items))
	for i, item := range t.items {
		c.items[i] = item.Clone()
	}
	return &c
}

func (t *TupleNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return t.compile("", refs, opts)
}

func (t *TupleNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	items := make([]ir.Node, len(t.items))
	for i, item := range t.items {
		items[i] = item.compile(strconv.Itoa(i), refs, opts)
	}
	return &ir.Tuple{
		Field:        t.base.compileField(name, nil, refs, opts),
		Items:        items,
		AllowUnknown: t.allowUnknown,
	}
}
