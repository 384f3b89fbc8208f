package dsl

import (
	"regexp"
	"time"

	goforma "github.com/reoring/goforma"
	"github.com/reoring/goforma/internal/ir"
	"github.com/reoring/goforma/rules"
)

// ---- string ----

// StringNode validates string leaves.
type StringNode struct{ base baseNode }

// String returns a new string node.
func String() *StringNode { return &StringNode{base: newBase()} }

// Optional accepts an absent value; absence is then not an error.
func (s *StringNode) Optional() *StringNode { s.base.optional = true; return s }

// Nullable accepts an explicit null, which short-circuits to a null output.
func (s *StringNode) Nullable() *StringNode { s.base.nullable = true; return s }

// Bail toggles field-scoped short-circuiting (enabled by default).
func (s *StringNode) Bail(enabled bool) *StringNode { s.base.bail = enabled; return s }

// Use appends a rule with its options.
func (s *StringNode) Use(ru goforma.RuleUse) *StringNode { s.base.use(ru); return s }

// ParseWith installs an input-normalization callback run before the rules.
func (s *StringNode) ParseWith(fn goforma.ParseFn) *StringNode { s.base.parse = fn; return s }

func (s *StringNode) MinLength(min int) *StringNode { return s.Use(rules.MinLength(min)) }
func (s *StringNode) MaxLength(max int) *StringNode { return s.Use(rules.MaxLength(max)) }
func (s *StringNode) Email() *StringNode            { return s.Use(rules.Email()) }
func (s *StringNode) URL() *StringNode              { return s.Use(rules.URL()) }
func (s *StringNode) UUID() *StringNode             { return s.Use(rules.UUID()) }
func (s *StringNode) Trim() *StringNode             { return s.Use(rules.Trim()) }

func (s *StringNode) Regex(re *regexp.Regexp) *StringNode { return s.Use(rules.Regex(re)) }
func (s *StringNode) In(choices ...string) *StringNode    { return s.Use(rules.In(choices...)) }

func (s *StringNode) Clone() Node {
	c := *s
	c.base = s.base.clone()
	return &c
}

func (s *StringNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return s.compile("", refs, opts)
}

func (s *StringNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := stringRule()
	return &ir.Literal{Field: s.base.compileField(name, &tr, refs, opts)}
}

func (s *StringNode) uniqueName() string { return "string" }
func (s *StringNode) isOfType(value any) bool {
	_, ok := value.(string)
	return ok
}

// ---- number ----

// NumberNode validates numeric leaves, narrowing every accepted
// representation to float64.
type NumberNode struct{ base baseNode }

// Number returns a new number node.
func Number() *NumberNode { return &NumberNode{base: newBase()} }

func (n *NumberNode) Optional() *NumberNode               { n.base.optional = true; return n }
func (n *NumberNode) Nullable() *NumberNode               { n.base.nullable = true; return n }
func (n *NumberNode) Bail(enabled bool) *NumberNode       { n.base.bail = enabled; return n }
func (n *NumberNode) Use(ru goforma.RuleUse) *NumberNode  { n.base.use(ru); return n }
func (n *NumberNode) ParseWith(fn goforma.ParseFn) *NumberNode { n.base.parse = fn; return n }

func (n *NumberNode) Min(min float64) *NumberNode        { return n.Use(rules.Min(min)) }
func (n *NumberNode) Max(max float64) *NumberNode        { return n.Use(rules.Max(max)) }
func (n *NumberNode) Range(min, max float64) *NumberNode { return n.Use(rules.Range(min, max)) }
func (n *NumberNode) Positive() *NumberNode              { return n.Use(rules.Positive()) }
func (n *NumberNode) Negative() *NumberNode              { return n.Use(rules.Negative()) }
func (n *NumberNode) WithoutDecimals() *NumberNode       { return n.Use(rules.WithoutDecimals()) }

func (n *NumberNode) Clone() Node {
	c := *n
	c.base = n.base.clone()
	return &c
}

func (n *NumberNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return n.compile("", refs, opts)
}

func (n *NumberNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := numberRule()
	return &ir.Literal{Field: n.base.compileField(name, &tr, refs, opts)}
}

func (n *NumberNode) uniqueName() string { return "number" }
func (n *NumberNode) isOfType(value any) bool {
	if _, isString := value.(string); isString {
		return false
	}
	if _, isBool := value.(bool); isBool {
		return false
	}
	_, ok := asNumber(value)
	return ok
}

// ---- boolean ----

// BooleanNode validates boolean leaves, accepting the string and numeric
// representations form input produces.
type BooleanNode struct{ base baseNode }

// Boolean returns a new boolean node.
func Boolean() *BooleanNode { return &BooleanNode{base: newBase()} }

func (b *BooleanNode) Optional() *BooleanNode               { b.base.optional = true; return b }
func (b *BooleanNode) Nullable() *BooleanNode               { b.base.nullable = true; return b }
func (b *BooleanNode) Bail(enabled bool) *BooleanNode       { b.base.bail = enabled; return b }
func (b *BooleanNode) Use(ru goforma.RuleUse) *BooleanNode  { b.base.use(ru); return b }
func (b *BooleanNode) ParseWith(fn goforma.ParseFn) *BooleanNode { b.base.parse = fn; return b }

func (b *BooleanNode) Clone() Node {
	c := *b
	c.base = b.base.clone()
	return &c
}

func (b *BooleanNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return b.compile("", refs, opts)
}

func (b *BooleanNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := booleanRule()
	return &ir.Literal{Field: b.base.compileField(name, &tr, refs, opts)}
}

func (b *BooleanNode) uniqueName() string { return "boolean" }
func (b *BooleanNode) isOfType(value any) bool {
	_, ok := asBoolean(value)
	return ok
}

// ---- date ----

// DateNode validates datetime strings and narrows them to time.Time.
type DateNode struct {
	base    baseNode
	layouts []string
}

// Date returns a new date node. Layouts default to RFC 3339 and the plain
// calendar date form.
func Date(layouts ...string) *DateNode {
	if len(layouts) == 0 {
		layouts = []string{time.RFC3339, "2006-01-02"}
	}
	return &DateNode{base: newBase(), layouts: layouts}
}

func (d *DateNode) Optional() *DateNode               { d.base.optional = true; return d }
func (d *DateNode) Nullable() *DateNode               { d.base.nullable = true; return d }
func (d *DateNode) Bail(enabled bool) *DateNode       { d.base.bail = enabled; return d }
func (d *DateNode) Use(ru goforma.RuleUse) *DateNode  { d.base.use(ru); return d }
func (d *DateNode) ParseWith(fn goforma.ParseFn) *DateNode { d.base.parse = fn; return d }

func (d *DateNode) Before(t time.Time) *DateNode { return d.Use(rules.Before(t)) }
func (d *DateNode) After(t time.Time) *DateNode  { return d.Use(rules.After(t)) }

func (d *DateNode) Clone() Node {
	c := *d
	c.base = d.base.clone()
	c.layouts = append([]string(nil), d.layouts...)
	return &c
}

func (d *DateNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return d.compile("", refs, opts)
}

func (d *DateNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := dateRule(d.layouts)
	return &ir.Literal{Field: d.base.compileField(name, &tr, refs, opts)}
}

// ---- enum ----

// EnumNode validates membership in a fixed choice list.
type EnumNode struct {
	base    baseNode
	choices []any
}

// Enum returns a new enum node over the given choices.
func Enum(choices ...any) *EnumNode {
	return &EnumNode{base: newBase(), choices: choices}
}

func (e *EnumNode) Optional() *EnumNode               { e.base.optional = true; return e }
func (e *EnumNode) Nullable() *EnumNode               { e.base.nullable = true; return e }
func (e *EnumNode) Bail(enabled bool) *EnumNode       { e.base.bail = enabled; return e }
func (e *EnumNode) Use(ru goforma.RuleUse) *EnumNode  { e.base.use(ru); return e }
func (e *EnumNode) ParseWith(fn goforma.ParseFn) *EnumNode { e.base.parse = fn; return e }

func (e *EnumNode) Clone() Node {
	c := *e
	c.base = e.base.clone()
	c.choices = append([]any(nil), e.choices...)
	return &c
}

func (e *EnumNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return e.compile("", refs, opts)
}

func (e *EnumNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := enumRule(e.choices)
	return &ir.Literal{Field: e.base.compileField(name, &tr, refs, opts)}
}

// ---- accepted ----

// AcceptedNode validates checkbox-style acceptance and narrows the truthy
// representations to true.
type AcceptedNode struct{ base baseNode }

// Accepted returns a new accepted node.
func Accepted() *AcceptedNode { return &AcceptedNode{base: newBase()} }

func (a *AcceptedNode) Optional() *AcceptedNode              { a.base.optional = true; return a }
func (a *AcceptedNode) Nullable() *AcceptedNode              { a.base.nullable = true; return a }
func (a *AcceptedNode) Bail(enabled bool) *AcceptedNode      { a.base.bail = enabled; return a }
func (a *AcceptedNode) Use(ru goforma.RuleUse) *AcceptedNode { a.base.use(ru); return a }

func (a *AcceptedNode) Clone() Node {
	c := *a
	c.base = a.base.clone()
	return &c
}

func (a *AcceptedNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return a.compile("", refs, opts)
}

func (a *AcceptedNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := acceptedRule()
	return &ir.Literal{Field: a.base.compileField(name, &tr, refs, opts)}
}

// ---- literal ----

// LiteralNode validates equality with a fixed scalar value.
type LiteralNode struct {
	base baseNode
	want any
}

// Literal returns a new literal node expecting exactly want.
func Literal(want any) *LiteralNode {
	return &LiteralNode{base: newBase(), want: want}
}

func (l *LiteralNode) Optional() *LiteralNode              { l.base.optional = true; return l }
func (l *LiteralNode) Nullable() *LiteralNode              { l.base.nullable = true; return l }
func (l *LiteralNode) Bail(enabled bool) *LiteralNode      { l.base.bail = enabled; return l }
func (l *LiteralNode) Use(ru goforma.RuleUse) *LiteralNode { l.base.use(ru); return l }

func (l *LiteralNode) Clone() Node {
	c := *l
	c.base = l.base.clone()
	return &c
}

func (l *LiteralNode) CompileToIR(refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	return l.compile("", refs, opts)
}

func (l *LiteralNode) compile(name string, refs *goforma.Refs, opts goforma.ParserOptions) ir.Node {
	tr := literalRule(l.want)
	return &ir.Literal{Field: l.base.compileField(name, &tr, refs, opts)}
}
