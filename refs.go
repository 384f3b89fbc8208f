package goforma

import (
	"fmt"
	"strconv"
)

// RefID identifies a tracked callback within one compiled schema. Ids are
// assigned once, at compile time, monotonically, and never reused across
// different callbacks within the same compiled schema.
type RefID = string

// Refs is the per-compile side table mapping ids to the runtime callbacks
// that cannot be represented in the static IR: rule validators, union/group
// predicates, otherwise fallbacks and parse functions. The store is populated
// during the single depth-first compile pass and is immutable afterwards, so
// it is safe to share read-only across unboundedly many concurrent
// validation calls.
type Refs struct {
	next       int
	rules      map[RefID]RuleUse
	predicates map[RefID]Predicate
	otherwise  map[RefID]OtherwiseFn
	parsers    map[RefID]ParseFn
}

// NewRefs returns an empty refs store for one compile call.
func NewRefs() *Refs {
	return &Refs{
		rules:      map[RefID]RuleUse{},
		predicates: map[RefID]Predicate{},
		otherwise:  map[RefID]OtherwiseFn{},
		parsers:    map[RefID]ParseFn{},
	}
}

func (r *Refs) allocate() RefID {
	id := "ref://" + strconv.Itoa(r.next)
	r.next++
	return id
}

// TrackRule registers a rule invocation and returns its id.
func (r *Refs) TrackRule(ru RuleUse) RefID {
	id := r.allocate()
	r.rules[id] = ru
	return id
}

// TrackPredicate registers a union/group branch predicate and returns its id.
func (r *Refs) TrackPredicate(p Predicate) RefID {
	id := r.allocate()
	r.predicates[id] = p
	return id
}

// TrackOtherwise registers a union/group fallback and returns its id.
func (r *Refs) TrackOtherwise(fn OtherwiseFn) RefID {
	id := r.allocate()
	r.otherwise[id] = fn
	return id
}

// TrackParser registers an input-normalization callback and returns its id.
func (r *Refs) TrackParser(fn ParseFn) RefID {
	id := r.allocate()
	r.parsers[id] = fn
	return id
}

// Rule resolves a rule id. A miss is a contract violation, reported via
// ErrRefNotFound.
func (r *Refs) Rule(id RefID) (RuleUse, error) {
	ru, ok := r.rules[id]
	if !ok {
		return RuleUse{}, fmt.Errorf("%w: rule %s", ErrRefNotFound, id)
	}
	return ru, nil
}

// Predicate resolves a predicate id.
func (r *Refs) Predicate(id RefID) (Predicate, error) {
	p, ok := r.predicates[id]
	if !ok {
		return nil, fmt.Errorf("%w: predicate %s", ErrRefNotFound, id)
	}
	return p, nil
}

// Otherwise resolves a fallback id.
func (r *Refs) Otherwise(id RefID) (OtherwiseFn, error) {
	fn, ok := r.otherwise[id]
	if !ok {
		return nil, fmt.Errorf("%w: otherwise %s", ErrRefNotFound, id)
	}
	return fn, nil
}

// Parser resolves a parse-function id.
func (r *Refs) Parser(id RefID) (ParseFn, error) {
	fn, ok := r.parsers[id]
	if !ok {
		return nil, fmt.Errorf("%w: parser %s", ErrRefNotFound, id)
	}
	return fn, nil
}

// Len reports how many callbacks have been tracked.
func (r *Refs) Len() int { return r.next }
