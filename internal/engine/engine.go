// Package engine decodes raw JSON into the any-shaped tree the validator
// walks. Numbers are preserved as json.Number so the leaf rules control
// narrowing instead of the decoder.
package engine

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// DecodeJSON decodes one JSON value from data. Trailing non-whitespace
// content is an error.
func DecodeJSON(data []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader decodes one JSON value from r.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, errors.New("engine: trailing data after JSON value")
	}
	return v, nil
}
