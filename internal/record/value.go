package record

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant of a Value is active.
type Kind uint8

const (
	Nothing Kind = iota
	String
	Integer
	Float
	Boolean
	Binary
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Binary:
		return "binary"
	default:
		return "nothing"
	}
}

// Value is a generic cell value. The zero Value is Nothing.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	bin  []byte
}

func StringValue(s string) Value { return Value{kind: String, s: s} }
func IntegerValue(i int64) Value { return Value{kind: Integer, i: i} }
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }
func BooleanValue(b bool) Value { return Value{kind: Boolean, b: b} }
func BinaryValue(b []byte) Value { return Value{kind: Binary, bin: b} }
func NothingValue() Value { return Value{} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNothing() bool { return v.kind == Nothing }
func (v Value) Str() string { return v.s }
func (v Value) Int() int64 { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Bool() bool { return v.b }
func (v Value) Bytes() []byte { return v.bin }

// Any returns the payload as a plain Go value, nil for Nothing.
func (v Value) Any() any {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		return v.i
	case Float:
		return v.f
	case Boolean:
		return v.b
	case Binary:
		return v.bin
	default:
		return nil
	}
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case String:
		return v.s == o.s
	case Integer:
		return v.i == o.i
	case Float:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case Boolean:
		return v.b == o.b
	case Binary:
		return string(v.bin) == string(o.bin)
	default:
		return true
	}
}

// MarshalJSON encodes Nothing as null and Binary as base64. JSON has no
// NaN or infinities, so those floats are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.kind == Float && (math.IsNaN(v.f) || math.IsInf(v.f, 0)):
		return marshal(strconv.FormatFloat(v.f, 'g', -1, 64))
	case v.kind == Binary && v.bin == nil:
		// An empty blob is still a value, not null.
		return []byte(`""`), nil
	}
	return marshal(v.Any())
}

// marshal is json.Marshal without HTML escaping, so text reaches the host
// unchanged.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
