// Package tree provides null-safe accessors over generic JSON value trees
// (maps with string keys, ordered arrays, scalars). Every lookup on a
// missing key or mistyped node yields a zero Value instead of panicking,
// so callers can chain field accesses without guarding each step.
package tree

import (
	"strconv"
	"strings"
)

// Value wraps one node of a decoded JSON tree.
type Value struct {
	v any
}

// Of wraps an already-decoded value (as produced by encoding/json into any).
func Of(v any) Value {
	return Value{v: v}
}

// IsNil reports whether the node is absent or JSON null.
func (v Value) IsNil() bool {
	return v.v == nil
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.v
}

// Field returns the named child of an object node. Missing keys and
// non-object nodes yield a nil Value.
func (v Value) Field(key string) Value {
	m, ok := v.v.(map[string]any)
	if !ok {
		return Value{}
	}
	return Value{v: m[key]}
}

// FirstField returns the first present (non-nil) child among keys.
func (v Value) FirstField(keys ...string) Value {
	for _, k := range keys {
		if c := v.Field(k); !c.IsNil() {
			return c
		}
	}
	return Value{}
}

// Map returns the node as an object, or nil if it is not one.
func (v Value) Map() map[string]any {
	m, _ := v.v.(map[string]any)
	return m
}

// Slice returns the node's array elements, or nil if it is not an array.
func (v Value) Slice() []Value {
	arr, ok := v.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Value{v: e}
	}
	return out
}

// Len returns the array length, or 0 for non-array nodes.
func (v Value) Len() int {
	arr, ok := v.v.([]any)
	if !ok {
		return 0
	}
	return len(arr)
}

// Str returns the node as a string, or "" if it is not one.
func (v Value) Str() string {
	s, _ := v.v.(string)
	return s
}

// StrPtr returns the node as *string, nil when absent. Whitespace-only
// strings are treated as absent, matching how the upstream feed pads
// optional text fields.
func (v Value) StrPtr() *string {
	s, ok := v.v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Bool returns the node as a bool, false for anything else.
func (v Value) Bool() bool {
	b, _ := v.v.(bool)
	return b
}

// BoolPtr returns the node as *bool, nil when absent or mistyped.
func (v Value) BoolPtr() *bool {
	b, ok := v.v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// IntPtr coerces the node to *int. Floats are truncated, numeric strings
// parsed (including "7.0"). Anything else yields nil.
func (v Value) IntPtr() *int {
	return CoerceInt(v.v)
}

// FloatPtr coerces the node to *float64; nil when it cannot be a number.
func (v Value) FloatPtr() *float64 {
	return CoerceFloat(v.v)
}

// Int returns the coerced integer value, or def when absent.
func (v Value) Int(def int) int {
	if p := v.IntPtr(); p != nil {
		return *p
	}
	return def
}

// CoerceInt converts a scalar of unknown shape to *int. The event feed
// mixes int, float and string encodings for the same logical field, so
// all three are accepted; failures yield nil, never zero.
func CoerceInt(x any) *int {
	switch n := x.(type) {
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case float64:
		i := int(n)
		return &i
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		if i, err := strconv.Atoi(s); err == nil {
			return &i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			i := int(f)
			return &i
		}
	}
	return nil
}

// CoerceFloat converts a scalar of unknown shape to *float64.
func CoerceFloat(x any) *float64 {
	switch n := x.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}
