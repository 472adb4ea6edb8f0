// Package variant implements the tagged value used for transform and model
// parameters and for command arguments: exactly four alternatives, float64,
// int64, bool, and string.
package variant

import "fmt"

// Kind identifies which alternative a Value holds.
type Kind int

const (
	// KindFloat64 tags a Value holding a float64.
	KindFloat64 Kind = iota
	// KindInt64 tags a Value holding an int64.
	KindInt64
	// KindBool tags a Value holding a bool.
	KindBool
	// KindString tags a Value holding a string.
	KindString
)

// String renders the kind the way compiler error messages name it.
func (k Kind) String() string {
	switch k {
	case KindFloat64:
		return "double"
	case KindInt64:
		return "int64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a tagged union over float64, int64, bool, and string. The zero
// Value is a float64 of 0.
type Value struct {
	kind Kind
	f    float64
	i    int64
	b    bool
	s    string
}

// Float64 constructs an f64 Value.
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// Int64 constructs an i64 Value.
func Int64(v int64) Value { return Value{kind: KindInt64, i: v} }

// Bool constructs a bool Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String constructs a string Value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind reports which alternative this Value holds.
func (v Value) Kind() Kind { return v.kind }

// AsFloat64 returns the underlying float64 and whether the kind matched.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return v.f, true
}

// AsInt64 returns the underlying int64 and whether the kind matched.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return v.i, true
}

// AsBool returns the underlying bool and whether the kind matched.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString returns the underlying string and whether the kind matched.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsFloat64Coerced returns the Value as a float64, additionally accepting an
// int64 alternative (integer->double coercion is the one implicit coercion
// the graph compiler's parameter contract allows). ok is false for bool and
// string.
func (v Value) AsFloat64Coerced() (float64, bool) {
	switch v.kind {
	case KindFloat64:
		return v.f, true
	case KindInt64:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Equal reports whether two Values hold the same kind and underlying value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindFloat64:
		return v.f == other.f
	case KindInt64:
		return v.i == other.i
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	default:
		return false
	}
}

// String implements fmt.Stringer for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindFloat64:
		return fmt.Sprintf("%g", v.f)
	case KindInt64:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return v.s
	default:
		return "<invalid variant>"
	}
}

// Map is the parameter/argument bag passed around GraphSpec nodes: a name to
// Value mapping. Order never matters for a Map's own semantics — any order
// sensitivity (rule/action order) lives one level up, in the slices that
// reference these maps.
type Map map[string]Value
