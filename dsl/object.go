package dsl

import (
	"sort"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
)

// ObjectNode validates a map with a known property set. Properties compile
// in sorted key order so error ordering is deterministic. Unknown keys are
// dropped unless AllowUnknownProperties is set, and conditional groups
// attached via Merge contribute extra properties when their predicate
// matches.
type ObjectNode struct {
	base             baseNode
	fields           Fields
	groups           []*GroupNode
	allowUnknown     bool
	unknownTransform goforma.ParseFn
}

// Object returns a new object node over the given fields.
func Object(fields Fields) *ObjectNode {
	if fields == nil {
		fields = Fields{}
	}
	return &ObjectNode{base: newBase(), fields: fields}
}

func (o *ObjectNode) Optional() *ObjectNode                   { o.base.optional = true; return o }
func (o *ObjectNode) Nullable() *ObjectNode                   { o.base.nullable = true; return o }
func (o *ObjectNode) Bail(enabled bool) *ObjectNode           { o.base.bail = enabled; return o }
func (o *ObjectNode) Use(ru goforma.RuleUse) *ObjectNode      { o.base.use(ru); return o }
func (o *ObjectNode) ParseWith(fn goforma.ParseFn) *ObjectNode { o.base.parse = fn; return o }

// AllowUnknownProperties keeps undeclared keys in the output instead of
// dropping them. Optional transforms are applied, in order, to the collected
// unknown-key map before it is merged; declared properties always win over
// unknown keys. A transform must return a map[string]any; any other return
// value is ignored and the collected map is merged unchanged.
func (o *ObjectNode) AllowUnknownProperties(transforms ...goforma.ParseFn) *ObjectNode {
	o.allowUnknown = true
	for _, fn := range transforms {
		o.unknownTransform = composeParse(o.unknownTransform, fn)
	}
	return o
}

// Merge attaches conditional groups whose matching branches contribute
// additional properties to this object's output.
func (o *ObjectNode) Merge(groups ...*GroupNode) *ObjectNode {
	o.groups = append(o.groups, groups...)
	return o
}

func (o *ObjectNode) Clone() Node {
	c := *o
	c.base = o.base.clone()
	c.fields = make(Fields, len(o.fields))
	for k, v := range o.fields {
		c.fields[k] = v.Clone()
	}
	c.groups = make([]*GroupNode, len(o.groups))
	for i, g := range o.groups {
		c.groups[i] = g.Clone()
	}
	return &c
}

func (o *ObjectNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return o.compile("", refs, opts)
}

func (o *ObjectNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	node := &ir.Object{
		Field:        o.base.compileField(name, nil, refs, opts),
		Properties:   compileFields(o.fields, refs, opts),
		AllowUnknown: o.allowUnknown,
	}
	if o.allowUnknown && o.unknownTransform != nil {
		node.UnknownTransformRef = refs.TrackParser(o.unknownTransform)
	}
	for _, g := range o.groups {
		node.Groups = append(node.Groups, g.compile(refs, opts))
	}
	return node
}

func (o *ObjectNode) uniqueName() string { return "object" }
func (o *ObjectNode) isOfType(value any) bool {
	_, ok := value.(map[string]any)
	return ok
}

// compileFields lowers a property map in sorted key order.
func compileFields(fields Fields, refs *goforma.Refs, opts goforma.ParserOptions) []ir.Node {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	props := make([]ir.Node, 0, len(names))
	for _, name := range names {
		props = append(props, fields[name].compile(name, refs, opts))
	}
	return props
}
