// Package ir defines the compact intermediate representation emitted by
// schema compilation. This package is internal and not part of the public
// API; the node structs are pure data so a compiled tree can be shared
// read-only across concurrent validation calls and projected to JSON for
// snapshot tests.
package ir

// NodeKind identifies an IR node type.
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeObject
	NodeArray
	NodeTuple
	NodeRecord
	NodeUnion
)

// Node is the root IR node interface.
type Node interface {
	Kind() NodeKind
	Base() *Field
}

// Validation is one compiled rule position. Ref resolves to the rule
// callback and its bound options in the refs store; the gating flags are
// duplicated here so the engine can decide applicability without resolving
// the callback first.
type Validation struct {
	Rule     string `json:"rule"`
	Ref      string `json:"ref"`
	Implicit bool   `json:"implicit"`
	IsAsync  bool   `json:"isAsync"`
}

// Field carries the properties shared by every node kind.
type Field struct {
	// FieldName is the key under which the value is read from the input.
	FieldName string `json:"fieldName"`
	// PropertyName is the key under which the value is written to the
	// output (camelCased when the schema was compiled with ToCamelCase).
	PropertyName string `json:"propertyName"`
	Bail         bool   `json:"bail"`
	AllowNull    bool   `json:"allowNull"`
	IsOptional   bool   `json:"isOptional"`
	// ParseRef optionally resolves to an input-normalization callback run
	// before the validations.
	ParseRef    string       `json:"parseRef,omitempty"`
	Validations []Validation `json:"validations"`
}

func (f *Field) Base() *Field { return f }

// Literal is a scalar leaf (string, number, boolean, date, enum, accepted,
// literal value). The concrete scalar semantics live entirely in the
// validation list.
type Literal struct {
	Field
}

func (l *Literal) Kind() NodeKind { return NodeLiteral }

// Object validates a map with a known property set, optional unknown-key
// passthrough, and conditional property groups.
type Object struct {
	Field
	// Properties are sorted by FieldName at compile time so error ordering
	// is deterministic.
	Properties   []Node  `json:"properties"`
	Groups       []Group `json:"groups,omitempty"`
	AllowUnknown bool    `json:"allowUnknownProperties"`
	// UnknownTransformRef optionally resolves to a callback applied to the
	// collected unknown-key map before it is merged into the output.
	UnknownTransformRef string `json:"unknownTransformRef,omitempty"`
}

func (o *Object) Kind() NodeKind { return NodeObject }

// Array validates every element against the same node.
type Array struct {
	Field
	Each Node `json:"each"`
}

func (a *Array) Kind() NodeKind { return NodeArray }

// Tuple validates fixed positions, each against its own node.
type Tuple struct {
	Field
	Items        []Node `json:"items"`
	AllowUnknown bool   `json:"allowUnknownProperties"`
}

func (t *Tuple) Kind() NodeKind { return NodeTuple }

// Record validates every value of a free-key map against the same node.
// Record keys are data, so they bypass output-key renaming.
type Record struct {
	Field
	Each Node `json:"each"`
}

func (r *Record) Kind() NodeKind { return NodeRecord }

// Union is an ordered predicate dispatch over full schema nodes. Each branch
// node is a standard node, so the engine validates the winning branch with
// normal composite semantics.
type Union struct {
	Field
	Branches []Branch `json:"branches"`
	// OtherwiseRef resolves to the mandatory fallback run when no predicate
	// matched.
	OtherwiseRef string `json:"otherwiseRef"`
}

func (u *Union) Kind() NodeKind { return NodeUnion }

// Branch pairs a predicate ref with the node validated when it matches.
type Branch struct {
	PredicateRef string `json:"predicateRef"`
	Node         Node   `json:"node"`
}

// Group is an object-level conditional merge: the first matching branch
// contributes extra properties to the owning object's output.
type Group struct {
	Branches     []GroupBranch `json:"branches"`
	OtherwiseRef string        `json:"otherwiseRef"`
}

// GroupBranch pairs a predicate ref with the properties it contributes.
type GroupBranch struct {
	PredicateRef string `json:"predicateRef"`
	Properties   []Node `json:"properties"`
}
