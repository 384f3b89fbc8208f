package goforma

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/reoring/goforma/internal/ir"
)

// run is the per-call execution state. Everything here is exclusive to one
// validation call; the refs store and IR it walks are shared read-only.
type run struct {
	ctx         context.Context
	refs        *Refs
	reporter    ErrorReporter
	messages    MessagesProvider
	emptyToNull bool
	async       bool
}

// execNode validates one field position. The second return value reports
// whether the value participates in the parent output (absent optional
// fields and invalid fields are omitted). The error return is reserved for
// contract violations; ordinary validation failures go through the reporter.
func (r *run) execNode(n ir.Node, f *FieldContext) (any, bool, error) {
	switch n := n.(type) {
	case *ir.Literal:
		return r.execLiteral(n, f)
	case *ir.Object:
		return r.execObject(n, f)
	case *ir.Array:
		return r.execArray(n, f)
	case *ir.Tuple:
		return r.execTuple(n, f)
	case *ir.Record:
		return r.execRecord(n, f)
	case *ir.Union:
		return r.execUnion(n, f)
	default:
		return nil, false, fmt.Errorf("goforma: unknown IR node kind %d", n.Kind())
	}
}

// execRules applies the compiled rule list in declaration order under the
// central gate: a rule runs iff (defined OR implicit) AND (valid OR NOT
// bail). Bail is field-scoped: it suppresses later rules on this field but
// never halts siblings or the tree walk. skipNonImplicit implements the
// nullable short-circuit, where a defined null runs implicit rules only.
func (r *run) execRules(vals []ir.Validation, bail bool, f *FieldContext, skipNonImplicit bool) error {
	for _, v := range vals {
		if !v.Implicit && (skipNonImplicit || !f.IsDefined) {
			continue
		}
		if !f.IsValid && bail {
			break
		}
		if v.IsAsync && !r.async {
			return fmt.Errorf("%w: rule %q at %q", ErrAsyncRequired, v.Rule, f.Path())
		}
		ru, err := r.refs.Rule(v.Ref)
		if err != nil {
			return err
		}
		ru.Rule.Validate(r.ctx, f.Value, ru.Options, f)
	}
	return nil
}

// applyParse runs the node's input-normalization callback, if any. A parser
// returning a non-nil value for an absent field defines it.
func (r *run) applyParse(ref string, f *FieldContext) error {
	if ref == "" {
		return nil
	}
	fn, err := r.refs.Parser(ref)
	if err != nil {
		return err
	}
	out := fn(f.Value)
	f.Value = out
	if !f.IsDefined && out != nil {
		f.IsDefined = true
	}
	return nil
}

// nullShortCircuit reports whether a defined null on an AllowNull node takes
// the short path: null output, non-implicit rules skipped.
func nullShortCircuit(f *FieldContext, allowNull bool) bool {
	return f.IsDefined && f.Value == nil && allowNull
}

func (r *run) execLiteral(n *ir.Literal, f *FieldContext) (any, bool, error) {
	if r.emptyToNull && f.IsDefined {
		if s, ok := f.Value.(string); ok && s == "" {
			f.Value = nil
		}
	}
	if err := r.applyParse(n.ParseRef, f); err != nil {
		return nil, false, err
	}
	if err := r.execRules(n.Validations, n.Bail, f, nullShortCircuit(f, n.AllowNull)); err != nil {
		return nil, false, err
	}
	if !f.IsValid || !f.IsDefined {
		return nil, false, nil
	}
	return f.Value, true, nil
}

func (r *run) execObject(n *ir.Object, f *FieldContext) (any, bool, error) {
	if err := r.applyParse(n.ParseRef, f); err != nil {
		return nil, false, err
	}
	if err := r.execRules(n.Validations, n.Bail, f, nullShortCircuit(f, n.AllowNull)); err != nil {
		return nil, false, err
	}
	if !f.IsValid || !f.IsDefined {
		return nil, false, nil
	}
	if f.Value == nil && n.AllowNull {
		return nil, true, nil
	}
	m, ok := f.Value.(map[string]any)
	if !ok {
		f.Report("value must be an object", RuleObject, nil)
		return nil, false, nil
	}

	out := make(map[string]any, len(m))
	known := make(map[string]struct{}, len(n.Properties))
	for _, child := range n.Properties {
		cb := child.Base()
		known[cb.FieldName] = struct{}{}
		raw, present := m[cb.FieldName]
		cf := f.child(cb.FieldName, raw, present, false)
		val, include, err := r.execNode(child, cf)
		if err != nil {
			return nil, false, err
		}
		if include {
			out[cb.PropertyName] = val
		}
	}

	if n.AllowUnknown {
		unknown := make(map[string]any)
		for k, v := range m {
			if _, declared := known[k]; !declared {
				unknown[k] = v
			}
		}
		if n.UnknownTransformRef != "" {
			fn, err := r.refs.Parser(n.UnknownTransformRef)
			if err != nil {
				return nil, false, err
			}
			if t, ok := fn(unknown).(map[string]any); ok {
				unknown = t
			}
		}
		for k, v := range unknown {
			if _, taken := out[k]; !taken {
				out[k] = v
			}
		}
	}

	for gi := range n.Groups {
		if err := r.execGroup(&n.Groups[gi], f, m, out); err != nil {
			return nil, false, err
		}
	}
	if !f.IsValid {
		return nil, false, nil
	}
	return out, true, nil
}

// execGroup runs one conditional merge against the owning object: the first
// branch whose predicate matches contributes its properties to out; when
// none match the fallback reports on the owning object field. Predicates are
// evaluated lazily, so no predicate after the winning one is called.
func (r *run) execGroup(g *ir.Group, f *FieldContext, m map[string]any, out map[string]any) error {
	for _, br := range g.Branches {
		pred, err := r.refs.Predicate(br.PredicateRef)
		if err != nil {
			return err
		}
		if !pred(r.ctx, f.Value, f) {
			continue
		}
		for _, child := range br.Properties {
			cb := child.Base()
			raw, present := m[cb.FieldName]
			cf := f.child(cb.FieldName, raw, present, false)
			val, include, err := r.execNode(child, cf)
			if err != nil {
				return err
			}
			if include {
				out[cb.PropertyName] = val
			}
		}
		return nil
	}
	ow, err := r.refs.Otherwise(g.OtherwiseRef)
	if err != nil {
		return err
	}
	ow(r.ctx, f.Value, f)
	return nil
}

func (r *run) execArray(n *ir.Array, f *FieldContext) (any, bool, error) {
	if err := r.applyParse(n.ParseRef, f); err != nil {
		return nil, false, err
	}
	if err := r.execRules(n.Validations, n.Bail, f, nullShortCircuit(f, n.AllowNull)); err != nil {
		return nil, false, err
	}
	if !f.IsValid || !f.IsDefined {
		return nil, false, nil
	}
	if f.Value == nil && n.AllowNull {
		return nil, true, nil
	}
	arr, ok := f.Value.([]any)
	if !ok {
		f.Report("value must be an array", RuleArray, nil)
		return nil, false, nil
	}
	out := make([]any, len(arr))
	for i, el := range arr {
		cf := f.child(strconv.Itoa(i), el, true, true)
		val, include, err := r.execNode(n.Each, cf)
		if err != nil {
			return nil, false, err
		}
		if include {
			out[i] = val
		}
	}
	return out, true, nil
}

func (r *run) execTuple(n *ir.Tuple, f *FieldContext) (any, bool, error) {
	if err := r.applyParse(n.ParseRef, f); err != nil {
		return nil, false, err
	}
	if err := r.execRules(n.Validations, n.Bail, f, nullShortCircuit(f, n.AllowNull)); err != nil {
		return nil, false, err
	}
	if !f.IsValid || !f.IsDefined {
		return nil, false, nil
	}
	if f.Value == nil && n.AllowNull {
		return nil, true, nil
	}
	arr, ok := f.Value.([]any)
	if !ok {
		f.Report("value must be a tuple", RuleTuple, nil)
		return nil, false, nil
	}
	out := make([]any, len(n.Items), len(n.Items)+len(arr))
	for i, item := range n.Items {
		var raw any
		defined := i < len(arr)
		if defined {
			raw = arr[i]
		}
		cf := f.child(strconv.Itoa(i), raw, defined, true)
		val, include, err := r.execNode(item, cf)
		if err != nil {
			return nil, false, err
		}
		if include {
			out[i] = val
		}
	}
	// Extra positions pass through untouched when unknown elements are
	// allowed; otherwise they are dropped.
	if n.AllowUnknown && len(arr) > len(n.Items) {
		out = append(out, arr[len(n.Items):]...)
	}
	return out, true, nil
}

func (r *run) execRecord(n *ir.Record, f *FieldContext) (any, bool, error) {
	if err := r.applyParse(n.ParseRef, f); err != nil {
		return nil, false, err
	}
	if err := r.execRules(n.Validations, n.Bail, f, nullShortCircuit(f, n.AllowNull)); err != nil {
		return nil, false, err
	}
	if !f.IsValid || !f.IsDefined {
		return nil, false, nil
	}
	if f.Value == nil && n.AllowNull {
		return nil, true, nil
	}
	m, ok := f.Value.(map[string]any)
	if !ok {
		f.Report("value must be an object", RuleRecord, nil)
		return nil, false, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(m))
	for _, k := range keys {
		cf := f.child(k, m[k], true, false)
		val, include, err := r.execNode(n.Each, cf)
		if err != nil {
			return nil, false, err
		}
		if include {
			out[k] = val
		}
	}
	return out, true, nil
}

// execUnion evaluates branch predicates in declaration order and validates
// the first matching branch in place, with full composite semantics. When no
// predicate matches the mandatory fallback is invoked with the raw value; it
// is expected to report.
func (r *run) execUnion(n *ir.Union, f *FieldContext) (any, bool, error) {
	if err := r.applyParse(n.ParseRef, f); err != nil {
		return nil, false, err
	}
	if err := r.execRules(n.Validations, n.Bail, f, nullShortCircuit(f, n.AllowNull)); err != nil {
		return nil, false, err
	}
	if !f.IsValid || !f.IsDefined {
		return nil, false, nil
	}
	if f.Value == nil && n.AllowNull {
		return nil, true, nil
	}
	for _, br := range n.Branches {
		pred, err := r.refs.Predicate(br.PredicateRef)
		if err != nil {
			return nil, false, err
		}
		if pred(r.ctx, f.Value, f) {
			return r.execNode(br.Node, f)
		}
	}
	ow, err := r.refs.Otherwise(n.OtherwiseRef)
	if err != nil {
		return nil, false, err
	}
	ow(r.ctx, f.Value, f)
	return nil, false, nil
}
