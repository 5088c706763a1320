package shelfdb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindNull represents a null value (and the zero Value).
	KindNull Kind = iota
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindList represents an ordered sequence of values.
	KindList
	// KindMap represents a nested string-keyed mapping.
	KindMap
)

// Value is a small typed value making up record attributes. Records are
// schema-free, so attributes carry an explicit kind discriminant instead of
// relying on interface{} plumbing.
//
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i64  int64
	f64  float64
	str  string
	list []Value
	dict map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(n int64) Value { return Value{kind: KindInt, i64: n} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f64: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a sequence value holding the given items.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map returns a nested mapping value.
func Map(m map[string]Value) Value { return Value{kind: KindMap, dict: m} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsList returns the items if Kind is KindList.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsMap returns the nested mapping if Kind is KindMap.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.dict, true
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := sortedKeys(v.dict)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q: %s", k, v.dict[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("invalid(%d)", v.kind)
	}
}

// truthy reports whether the value counts as present for predicate
// evaluation: non-null, non-zero, non-false, non-empty.
func (v Value) truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i64 != 0
	case KindFloat:
		return v.f64 != 0
	case KindString:
		return v.str != ""
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.dict) > 0
	default:
		return false
	}
}

func isNumber(v Value) bool {
	return v.kind == KindInt || v.kind == KindFloat
}

func asFloat64(v Value) float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i64)
	case KindFloat:
		return v.f64
	default:
		return 0
	}
}

// valueEqual compares two values for equality. Ints and floats compare
// numerically across kinds; everything else requires matching kinds.
func valueEqual(a, b Value) bool {
	if a.kind == KindNull && b.kind == KindNull {
		return true
	}
	if a.kind == KindNull || b.kind == KindNull {
		return false
	}

	if isNumber(a) && isNumber(b) {
		// Prefer exact int compare when possible.
		if a.kind == KindInt && b.kind == KindInt {
			return a.i64 == b.i64
		}
		return asFloat64(a) == asFloat64(b)
	}

	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.str == b.str
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !valueEqual(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.dict) != len(b.dict) {
			return false
		}
		for k, av := range a.dict {
			bv, ok := b.dict[k]
			if !ok || !valueEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// valueGreater reports a > b. Ordering is defined over numbers (numeric)
// and strings (lexicographic); other kinds have no ordering.
func valueGreater(a, b Value) bool {
	if isNumber(a) && isNumber(b) {
		if a.kind == KindInt && b.kind == KindInt {
			return a.i64 > b.i64
		}
		return asFloat64(a) > asFloat64(b)
	}
	if a.kind == KindString && b.kind == KindString {
		return a.str > b.str
	}
	return false
}

// valueContains reports membership of b in a: substring for strings,
// element membership for lists, key membership for maps.
func valueContains(a, b Value) bool {
	switch a.kind {
	case KindString:
		if b.kind != KindString {
			return false
		}
		return strings.Contains(a.str, b.str)
	case KindList:
		for _, item := range a.list {
			if valueEqual(item, b) {
				return true
			}
		}
		return false
	case KindMap:
		if b.kind != KindString {
			return false
		}
		_, ok := a.dict[b.str]
		return ok
	default:
		return false
	}
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
