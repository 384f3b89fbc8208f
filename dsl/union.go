package dsl

import (
	"context"
	"fmt"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
)

// UnionBranch pairs a predicate with the node validated when it matches.
type UnionBranch struct {
	predicate goforma.Predicate
	node      Node
}

// When builds a union branch selected by predicate.
func When(predicate goforma.Predicate, node Node) UnionBranch {
	return UnionBranch{predicate: predicate, node: node}
}

// UnionNode selects one of an ordered list of branches by predicate and
// validates the winning branch with full composite semantics. Predicates
// evaluate lazily in declaration order; first match wins. When no predicate
// matches, the mandatory fallback runs and is expected to report.
type UnionNode struct {
	base      baseNode
	branches  []UnionBranch
	otherwise goforma.OtherwiseFn
}

// Union returns a new union node over the given branches.
func Union(branches ...UnionBranch) *UnionNode {
	return &UnionNode{base: newBase(), branches: branches}
}

// Otherwise replaces the default fallback, which reports a generic
// "no matching union member" error.
func (u *UnionNode) Otherwise(fn goforma.OtherwiseFn) *UnionNode {
	u.otherwise = fn
	return u
}

func (u *UnionNode) Optional() *UnionNode              { u.base.optional = true; return u }
func (u *UnionNode) Nullable() *UnionNode              { u.base.nullable = true; return u }
func (u *UnionNode) Bail(enabled bool) *UnionNode      { u.base.bail = enabled; return u }
func (u *UnionNode) Use(ru goforma.RuleUse) *UnionNode { u.base.use(ru); return u }

func (u *UnionNode) Clone() Node {
	c := *u
	c.base = u.base.clone()
	c.branches = make([]UnionBranch, len(u.branches))
	for i, br := range u.branches {
		c.branches[i] = UnionBranch{predicate: br.predicate, node: br.node.Clone()}
	}
	return &c
}

func (u *UnionNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return u.compile("", refs, opts)
}

func (u *UnionNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	node := &ir.Union{Field: u.base.compileField(name, nil, refs, opts)}
	for _, br := range u.branches {
		node.Branches = append(node.Branches, ir.Branch{
			PredicateRef: refs.TrackPredicate(br.predicate),
			// Branch nodes compile under the union's field name so error
			// paths address the union position.
			Node: br.node.compile(name, refs, opts),
		})
	}
	ow := u.otherwise
	if ow == nil {
		ow = defaultUnionOtherwise
	}
	node.OtherwiseRef = refs.TrackOtherwise(ow)
	return node
}

func defaultUnionOtherwise(_ context.Context, _ any, f *goforma.FieldContext) {
	f.Report("no matching union member for the {{field}} field", goforma.RuleUnion, nil)
}

// discriminable is the contract a node must satisfy to join UnionOfTypes: a
// unique type name plus an input-type predicate. It is sealed to this
// package.
type discriminable interface {
	Node
	uniqueName() string
	isOfType(value any) bool
}

// UnionOfTypes builds a union whose branches are selected by the input
// value's type. Every member must carry a type discriminator; duplicate or
// non-discriminable members are rejected eagerly with a panic, since they
// are API misuse rather than bad input.
func UnionOfTypes(nodes ...Node) *UnionNode {
	seen := make(map[string]struct{}, len(nodes))
	branches := make([]UnionBranch, 0, len(nodes))
	for _, n := range nodes {
		d, ok := n.(discriminable)
		if !ok {
			panic(fmt.Sprintf("dsl: %T cannot join UnionOfTypes; it has no type discriminator", n))
		}
		name := d.uniqueName()
		if _, dup := seen[name]; dup {
			panic(fmt.Sprintf("dsl: UnionOfTypes already has a %q member", name))
		}
		seen[name] = struct{}{}
		member := d
		branches = append(branches, When(func(_ context.Context, value any, _ *goforma.FieldContext) bool {
			return member.isOfType(value)
		}, n))
	}
	return Union(branches...)
}
