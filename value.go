package canopy

import (
	"encoding/json"
	"math"
	"sort"
)

// ValueType classifies a raw attribute value. Every value held by an
// Attributes store or a Document is exactly one of these.
type ValueType uint8

const (
	ValueUndefined ValueType = iota // absent, null, or a non-finite number
	ValueString                     // string
	ValueNumber                     // finite float64
	ValueBoolean                    // bool
	ValueObject                     // map[string]any
	ValueArray                      // []any
)

// String returns the lower-case kind name used in validation messages.
func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBoolean:
		return "boolean"
	case ValueObject:
		return "object"
	case ValueArray:
		return "array"
	default:
		return "undefined"
	}
}

// typeOfValue classifies an already-normalized value. NaN and the
// infinities are reported as undefined so they never reach typed getters.
func typeOfValue(v any) ValueType {
	switch x := v.(type) {
	case string:
		return ValueString
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ValueUndefined
		}
		return ValueNumber
	case bool:
		return ValueBoolean
	case map[string]any:
		return ValueObject
	case []any:
		return ValueArray
	default:
		return ValueUndefined
	}
}

// normalizeValue converts a decoded value into the store's value domain:
// every integer and float kind becomes float64, maps are re-keyed by string,
// and containers are deep-copied. Values outside the domain become nil.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case bool:
		return x
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeValue(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if s, ok := k.(string); ok {
				out[s] = normalizeValue(e)
			}
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeValue(e)
		}
		return out
	case []float64:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return nil
	}
}

// numberOr returns v as a float64 if it is a finite number, else def.
func numberOr(v any, def float64) float64 {
	if typeOfValue(v) != ValueNumber {
		return def
	}
	return v.(float64)
}

// sortedKeys returns the keys of m in lexical order. Validation walks keys in
// this order so error reports are deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
