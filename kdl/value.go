package kdl

import (
	"strconv"
)

type Kind int

const (
	Null Kind = iota
	String
	Integer
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a scalar KDL value. Only the field selected by Kind is meaningful.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func IntValue(i int64) Value { return Value{Kind: Integer, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: Float, Float: f} }
func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }
func NullValue() Value { return Value{Kind: Null} }

func (v Value) AsString() (string, bool) {
	return v.Str, v.Kind == String
}

// Number widens integers and floats to float64.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case Integer:
		return float64(v.Int), true
	case Float:
		return v.Float, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case String:
		return strconv.Quote(v.Str)
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.Bool)
	default:
		return "null"
	}
}
