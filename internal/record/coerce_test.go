package record

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/bgunnarsson/psql/internal/db"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  db.WireType
		cell any
		want Value
	}{
		// text
		{name: "text string", typ: db.Text, cell: "hello world", want: StringValue("hello world")},
		{name: "text bytes", typ: db.Text, cell: []byte("alice"), want: StringValue("alice")},
		{name: "text empty", typ: db.Text, cell: "", want: StringValue("")},
		{name: "text invalid utf8", typ: db.Text, cell: []byte{0xff, 0xfe}, want: Value{}},
		{name: "text mismatch", typ: db.Text, cell: int64(3), want: Value{}},

		// integers
		{name: "int16", typ: db.Int16, cell: int16(-12), want: IntegerValue(-12)},
		{name: "int32", typ: db.Int32, cell: int32(7), want: IntegerValue(7)},
		{name: "int64", typ: db.Int64, cell: int64(math.MaxInt64), want: IntegerValue(math.MaxInt64)},
		{name: "int from text", typ: db.Int32, cell: []byte("42"), want: IntegerValue(42)},
		{name: "uint64 overflow", typ: db.Int64, cell: uint64(math.MaxUint64), want: Value{}},
		{name: "int mismatch", typ: db.Int32, cell: "abc", want: Value{}},
		{name: "int float mismatch", typ: db.Int64, cell: 1.5, want: Value{}},

		// floats
		{name: "float64", typ: db.Float64, cell: 2.25, want: FloatValue(2.25)},
		{name: "float32 shortest form", typ: db.Float32, cell: float32(0.1), want: FloatValue(0.1)},
		{name: "float from text", typ: db.Float64, cell: "3.5", want: FloatValue(3.5)},
		{name: "float mismatch", typ: db.Float64, cell: true, want: Value{}},

		// booleans
		{name: "bool true", typ: db.Bool, cell: true, want: BooleanValue(true)},
		{name: "bool false", typ: db.Bool, cell: false, want: BooleanValue(false)},
		{name: "bool from int", typ: db.Bool, cell: int64(1), want: BooleanValue(true)},
		{name: "bool from pg text", typ: db.Bool, cell: "t", want: BooleanValue(true)},
		{name: "bool int out of range", typ: db.Bool, cell: int64(2), want: Value{}},
		{name: "bool mismatch", typ: db.Bool, cell: "maybe", want: Value{}},

		// binary
		{name: "bytes", typ: db.Bytes, cell: []byte{0, 1, 2}, want: BinaryValue([]byte{0, 1, 2})},
		{name: "empty bytes", typ: db.Bytes, cell: []byte{}, want: BinaryValue([]byte{})},
		{name: "bytes mismatch", typ: db.Bytes, cell: "0x00", want: Value{}},

		// unsupported wire types
		{name: "numeric", typ: db.Numeric, cell: "1.50", want: Value{}},
		{name: "date", typ: db.Date, cell: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), want: Value{}},
		{name: "time", typ: db.Time, cell: "12:00:00", want: Value{}},
		{name: "timestamp", typ: db.Timestamp, cell: time.Now(), want: Value{}},
		{name: "unknown", typ: db.Unknown, cell: "x", want: Value{}},

		// dynamic
		{name: "dynamic string", typ: db.Dynamic, cell: "x", want: StringValue("x")},
		{name: "dynamic int", typ: db.Dynamic, cell: int64(5), want: IntegerValue(5)},
		{name: "dynamic float", typ: db.Dynamic, cell: 0.5, want: FloatValue(0.5)},
		{name: "dynamic blob", typ: db.Dynamic, cell: []byte{9}, want: BinaryValue([]byte{9})},
		{name: "dynamic bool", typ: db.Dynamic, cell: true, want: BooleanValue(true)},
		{name: "dynamic time", typ: db.Dynamic, cell: time.Now(), want: Value{}},

		// null
		{name: "null text", typ: db.Text, cell: nil, want: Value{}},
		{name: "null int", typ: db.Int64, cell: nil, want: Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Coerce(tt.typ, tt.cell)
			if !got.Equal(tt.want) {
				t.Fatalf("Coerce(%s, %#v) = %s(%v), want %s(%v)",
					tt.typ, tt.cell, got.Kind(), got.Any(), tt.want.Kind(), tt.want.Any())
			}
		})
	}
}

func TestCoerceBinaryCopies(t *testing.T) {
	t.Parallel()

	src := []byte{1, 2, 3}
	v := Coerce(db.Bytes, src)
	src[0] = 9

	if v.Bytes()[0] != 1 {
		t.Fatalf("binary value aliases the source buffer")
	}
}

func TestCoerceEmptyBinaryIsNotNothing(t *testing.T) {
	t.Parallel()

	v := Coerce(db.Bytes, []byte{})
	if v.Kind() != Binary {
		t.Fatalf("kind = %s, want binary", v.Kind())
	}
	if v.Bytes() == nil {
		t.Fatalf("empty blob coerced to a nil payload")
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `""` {
		t.Fatalf("empty blob encoded as %s, want \"\"", b)
	}
}
