package goforma

import (
	json "github.com/goccy/go-json"
)

// As converts a validated output tree into a typed value via a JSON
// round-trip. It is a projection helper only: the value has already been
// validated, so decode failures indicate a schema/struct mismatch rather
// than bad input.
func As[T any](out any) (T, error) {
	var t T
	b, err := json.Marshal(out)
	if err != nil {
		return t, err
	}
	if err := json.Unmarshal(b, &t); err != nil {
		return t, err
	}
	return t, nil
}
