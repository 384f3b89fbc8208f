package goforma

// FieldContext is the runtime unit of execution for one position in the
// input tree. One is created per field position per validation run and is
// never persisted across runs; child contexts created by composite nodes are
// independent of their siblings except that they share the run's reporter,
// messages provider, metadata and root data.
type FieldContext struct {
	// Name is the local key or element index of this field.
	Name string
	// Value is the current value. Rules change it only through Mutate.
	Value any
	// IsDefined reports whether the value is present. Absence means exactly
	// "missing key or element"; an explicit null is defined.
	IsDefined bool
	// IsValid flips to false on the first reported issue and never flips
	// back within a run.
	IsValid bool
	// IsArrayMember marks element contexts created by array nodes.
	IsArrayMember bool
	// Meta is the caller-supplied side-channel metadata, shared by every
	// field of the run.
	Meta map[string]any
	// Data is the root input value.
	Data any

	path     string
	wildCard string
	run      *run
}

// Path returns the dotted address of this field within the root, for example
// "contacts.0.email". The root value itself has an empty path.
func (f *FieldContext) Path() string { return f.path }

// WildCardPath is Path with array indices replaced by "*".
func (f *FieldContext) WildCardPath() string { return f.wildCard }

// Mutate replaces the value seen by subsequent rules and by the output. It
// is the only sanctioned way a rule changes the value; mutating an absent
// field defines it.
func (f *FieldContext) Mutate(v any) {
	f.Value = v
	f.IsDefined = true
}

// Report appends a structured issue for this field and flips IsValid. The
// default message is used unless the run's messages provider overrides it.
// Rules never return or panic for ordinary validation failure; Report is the
// failure channel.
func (f *FieldContext) Report(defaultMessage, rule string, args map[string]any) {
	msg := f.run.messages.GetMessage(defaultMessage, rule, f, args)
	f.run.reporter.Report(Issue{
		Field:    f.path,
		WildCard: f.wildCard,
		Rule:     rule,
		Message:  msg,
		Args:     args,
	})
	f.IsValid = false
}

func (f *FieldContext) child(name string, value any, defined, isArrayMember bool) *FieldContext {
	path := name
	if f.path != "" {
		path = f.path + "." + name
	}
	wname := name
	if isArrayMember {
		wname = "*"
	}
	wild := wname
	if f.wildCard != "" {
		wild = f.wildCard + "." + wname
	}
	return &FieldContext{
		Name:          name,
		Value:         value,
		IsDefined:     defined,
		IsValid:       true,
		IsArrayMember: isArrayMember,
		Meta:          f.Meta,
		Data:          f.Data,
		path:          path,
		wildCard:      wild,
		run:           f.run,
	}
}
