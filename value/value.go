package value

import (
	"fmt"
	"strconv"
)

// Type describes the static type of an event attribute or an
// aggregate return value. Fixed at plan construction time.
type Type uint8

const (
	TypeObject Type = iota
	TypeBool
	TypeInt
	TypeLong
	TypeDouble
	TypeFloat
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeDouble:
		return "double"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	default:
		return "object"
	}
}

func (t Type) IsNumeric() bool {
	switch t {
	case TypeInt, TypeLong, TypeDouble, TypeFloat:
		return true
	default:
		return false
	}
}

// Value is a closed scalar variant. The kind is checked once at the
// boundary; aggregator hot paths read the underlying primitive
// directly instead of casting untyped payloads per call.
type Value struct {
	typ  Type
	null bool
	b    bool
	i    int64
	f    float64
	s    string
}

// Null is the absent value, e.g. the extremum of an empty window.
func Null() Value {
	return Value{null: true}
}

func Bool(b bool) Value {
	return Value{typ: TypeBool, b: b}
}

func Int(i int32) Value {
	return Value{typ: TypeInt, i: int64(i)}
}

func Long(i int64) Value {
	return Value{typ: TypeLong, i: i}
}

func Double(f float64) Value {
	return Value{typ: TypeDouble, f: f}
}

func Float(f float32) Value {
	return Value{typ: TypeFloat, f: float64(f)}
}

func String(s string) Value {
	return Value{typ: TypeString, s: s}
}

func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.null
}

func (v Value) Bool() (bool, bool) {
	if v.null || v.typ != TypeBool {
		return false, false
	}
	return v.b, true
}

// Int64 returns the integral payload of an int or long value.
func (v Value) Int64() (int64, bool) {
	if v.null {
		return 0, false
	}
	switch v.typ {
	case TypeInt, TypeLong:
		return v.i, true
	default:
		return 0, false
	}
}

// Float64 widens any numeric value to float64.
func (v Value) Float64() (float64, bool) {
	if v.null {
		return 0, false
	}
	switch v.typ {
	case TypeInt, TypeLong:
		return float64(v.i), true
	case TypeDouble, TypeFloat:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) Str() (string, bool) {
	if v.null || v.typ != TypeString {
		return "", false
	}
	return v.s, true
}

// Key returns a stable identity string for the value, used to intern
// group-by tuples and distinct-count members. Two values have the same
// key iff they are the same typed scalar.
func (v Value) Key() string {
	if v.null {
		return "n:"
	}
	switch v.typ {
	case TypeBool:
		if v.b {
			return "b:1"
		}
		return "b:0"
	case TypeInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case TypeLong:
		return "l:" + strconv.FormatInt(v.i, 10)
	case TypeDouble:
		return "d:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeString:
		return "s:" + v.s
	default:
		return "o:"
	}
}

func (v Value) String() string {
	if v.null {
		return "null"
	}
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeInt, TypeLong:
		return strconv.FormatInt(v.i, 10)
	case TypeDouble, TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeString:
		return v.s
	default:
		return fmt.Sprintf("<%s>", v.typ)
	}
}

// Compare orders two non-null numeric values of the same kind family.
// Integral kinds compare exactly; floating kinds compare on float64.
func Compare(a, b Value) int {
	ai, aok := a.Int64()
	bi, bok := b.Int64()
	if aok && bok {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	af, _ := a.Float64()
	bf, _ := b.Float64()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
