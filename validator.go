package goforma

import (
	"context"

	json "github.com/goccy/go-json"

	"github.com/reoring/goforma/internal/engine"
	"github.com/reoring/goforma/internal/ir"
)

// Validator binds a compiled (IR, refs) pair to execution-time options. The
// IR and refs store are immutable, so one Validator may serve unboundedly
// many concurrent validation calls; only the per-call reporter and field
// contexts are exclusive to one call.
type Validator struct {
	root     ir.Node
	refs     *Refs
	cfg      CompileOpt
	messages MessagesProvider
	reporter func() ErrorReporter
}

// Validate walks the compiled tree against data. It returns the narrowed,
// transformed output on success; on failure it returns the Issues aggregate
// carrying the full ordered error list. Async rules and predicates receive
// ctx. A configured MetaValidator runs first and aborts before any field
// processing when it fails, returning its error unchanged.
func (v *Validator) Validate(ctx context.Context, data any, opts ...ValidateOpt) (any, error) {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	return v.execute(ctx, data, opt, true)
}

// ValidateSync is the synchronous path. It fails immediately with
// ErrAsyncRequired (a contract error, not a reported Issue) when it is about
// to dispatch a rule marked IsAsync. Only rules actually dispatched for the
// given input count: an async rule gated off by bail, absence or the
// nullable short circuit does not trip it.
func (v *Validator) ValidateSync(data any, opts ...ValidateOpt) (any, error) {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	return v.execute(context.Background(), data, opt, false)
}

// ValidateJSON decodes raw JSON bytes and validates the result. Malformed
// JSON is reported as an Issue with the json rule, since it is bad input
// data rather than API misuse.
func (v *Validator) ValidateJSON(ctx context.Context, data []byte, opts ...ValidateOpt) (any, error) {
	val, err := engine.DecodeJSON(data)
	if err != nil {
		return nil, Issues{{
			Rule:    RuleJSON,
			Message: "invalid JSON input",
			Args:    map[string]any{"cause": err.Error()},
		}}
	}
	return v.Validate(ctx, val, opts...)
}

func (v *Validator) execute(ctx context.Context, data any, opt ValidateOpt, async bool) (any, error) {
	if v.cfg.MetaValidator != nil {
		if err := v.cfg.MetaValidator(opt.Meta); err != nil {
			return nil, err
		}
	}
	r := &run{
		ctx:         ctx,
		refs:        v.refs,
		reporter:    v.reporter(),
		messages:    v.messages,
		emptyToNull: v.cfg.ConvertEmptyStringsToNull,
		async:       async,
	}
	root := &FieldContext{
		Value:     data,
		IsDefined: true,
		IsValid:   true,
		Meta:      opt.Meta,
		Data:      data,
		run:       r,
	}
	out, ok, err := r.execNode(v.root, root)
	if err != nil {
		return nil, err
	}
	if r.reporter.HasErrors() {
		return nil, r.reporter.Errors()
	}
	if !ok {
		return nil, nil
	}
	return out, nil
}

// MarshalJSON projects the compiled IR tree to JSON for debugging and
// snapshot tests. Compiling the same tree twice yields byte-identical
// projections because ref ids are assigned deterministically.
func (v *Validator) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.root)
}
