package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	goforma "github.com/reoring/goforma"
)

// Type-check rules created at compile time. They run first in a node's
// attached-rule list (after the implicit required rule) and narrow the value
// via Mutate so later rules see the canonical representation.

func requiredRule() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name:     goforma.RuleRequired,
		Implicit: true,
		Validate: func(_ context.Context, _ any, _ any, f *goforma.FieldContext) {
			if !f.IsDefined {
				f.Report("the {{field}} field is required", goforma.RuleRequired, nil)
			}
		},
	}}
}

func stringRule() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: goforma.RuleString,
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			if _, ok := value.(string); !ok {
				f.Report("the {{field}} field must be a string", goforma.RuleString, nil)
			}
		},
	}}
}

// numberRule narrows every numeric representation (including the numeric
// strings form input produces and the json.Number the decoder preserves) to
// float64.
func numberRule() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: goforma.RuleNumber,
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			n, ok := asNumber(value)
			if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
				f.Report("the {{field}} field must be a number", goforma.RuleNumber, nil)
				return
			}
			f.Mutate(n)
		},
	}}
}

func booleanRule() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: goforma.RuleBoolean,
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			b, ok := asBoolean(value)
			if !ok {
				f.Report("the {{field}} field must be a boolean", goforma.RuleBoolean, nil)
				return
			}
			f.Mutate(b)
		},
	}}
}

// dateRule narrows a string matching one of the layouts to time.Time.
func dateRule(layouts []string) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: goforma.RuleDate,
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				if _, ok := value.(time.Time); ok {
					return
				}
				s, ok := value.(string)
				if ok {
					for _, layout := range layouts {
						if t, err := time.Parse(layout, s); err == nil {
							f.Mutate(t)
							return
						}
					}
				}
				f.Report("the {{field}} field must be a datetime value", goforma.RuleDate, nil)
			},
		},
		Options: map[string]any{"layouts": layouts},
	}
}

func enumRule(choices []any) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: goforma.RuleEnum,
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				for _, c := range choices {
					if looseEqual(value, c) {
						return
					}
				}
				f.Report("the selected {{field}} is invalid", goforma.RuleEnum,
					map[string]any{"choices": choices})
			},
		},
		Options: map[string]any{"choices": choices},
	}
}

// acceptedRule passes the truthy checkbox representations and narrows them
// to true.
func acceptedRule() goforma.RuleUse {
	return goforma.RuleUse{Rule: goforma.Rule{
		Name: goforma.RuleAccepted,
		Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
			switch v := value.(type) {
			case bool:
				if v {
					f.Mutate(true)
					return
				}
			case string:
				switch v {
				case "on", "1", "yes", "true":
					f.Mutate(true)
					return
				}
			}
			if n, ok := asNumber(value); ok && n == 1 {
				f.Mutate(true)
				return
			}
			f.Report("the {{field}} field must be accepted", goforma.RuleAccepted, nil)
		},
	}}
}

func literalRule(want any) goforma.RuleUse {
	return goforma.RuleUse{
		Rule: goforma.Rule{
			Name: goforma.RuleLiteral,
			Validate: func(_ context.Context, value any, _ any, f *goforma.FieldContext) {
				if !looseEqual(value, want) {
					f.Report("the {{field}} field must be {{expected}}", goforma.RuleLiteral,
						map[string]any{"expected": want})
				}
			},
		},
		Options: map[string]any{"expected": want},
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asBoolean(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	default:
		if n, ok := asNumber(value); ok && (n == 0 || n == 1) {
			return n == 1, true
		}
	}
	return false, false
}

// looseEqual compares scalars with numeric representations unified, so a
// json.Number input matches an int choice.
func looseEqual(a, b any) bool {
	if a == b {
		return true
	}
	an, aok := asNumberStrict(a)
	bn, bok := asNumberStrict(b)
	return aok && bok && an == bn
}

// asNumberStrict is asNumber without string coercion, so "1" never equals 1.
func asNumberStrict(value any) (float64, bool) {
	if _, isString := value.(string); isString {
		return 0, false
	}
	return asNumber(value)
}
