package dsl

import (
	"context"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
)

// GroupBranch pairs a predicate with the properties it contributes to the
// owning object.
type GroupBranch struct {
	predicate goforma.Predicate
	fields    Fields
}

// WhenGroup builds a group branch selected by predicate.
func WhenGroup(predicate goforma.Predicate, fields Fields) GroupBranch {
	return GroupBranch{predicate: predicate, fields: fields}
}

// GroupNode is an object-level conditional merge: the first branch whose
// predicate matches contributes its properties to the owning object's
// output. Groups cannot stand alone; attach them with ObjectNode.Merge.
// When no predicate matches the mandatory fallback runs against the owning
// object field.
type GroupNode struct {
	branches  []GroupBranch
	otherwise goforma.OtherwiseFn
}

// NewGroup returns a new conditional group over the given branches.
func NewGroup(branches ...GroupBranch) *GroupNode {
	return &GroupNode{branches: branches}
}

// Otherwise replaces the default fallback, which reports a generic
// "no matching condition" error on the owning object field.
func (g *GroupNode) Otherwise(fn goforma.OtherwiseFn) *GroupNode {
	g.otherwise = fn
	return g
}

// Clone returns an independent copy with all branch fields cloned.
func (g *GroupNode) Clone() *GroupNode {
	c := &GroupNode{otherwise: g.otherwise}
	c.branches = make([]GroupBranch, len(g.branches))
	for i, br := range g.branches {
		fields := make(Fields, len(br.fields))
		for k, v := range br.fields {
			fields[k] = v.Clone()
		}
		c.branches[i] = GroupBranch{predicate: br.predicate, fields: fields}
	}
	return c
}

func (g *GroupNode) compile(refs *goforma.Refs, opts goforma.ParserOptions) ir.Group {
	var node ir.Group
	for _, br := range g.branches {
		node.Branches = append(node.Branches, ir.GroupBranch{
			PredicateRef: refs.TrackPredicate(br.predicate),
			Properties:   compileFields(br.fields, refs, opts),
		})
	}
	ow := g.otherwise
	if ow == nil {
		ow = defaultGroupOtherwise
	}
	node.OtherwiseRef = refs.TrackOtherwise(ow)
	return node
}

func defaultGroupOtherwise(_ context.Context, _ any, f *goforma.FieldContext) {
	f.Report("no matching condition for the {{field}} field", goforma.RuleGroup, nil)
}
