package record

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/bgunnarsson/psql/internal/db"
)

func TestMapScenario(t *testing.T) {
	t.Parallel()

	columns := []db.Column{
		{Name: "id", Type: db.Int32},
		{Name: "name", Type: db.Text},
		{Name: "active", Type: db.Bool},
	}
	rows := []db.Row{{int32(7), "alice", true}}

	recs := Map(columns, rows)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Len() != 3 {
		t.Fatalf("record has %d fields, want 3", rec.Len())
	}
	if got := rec.Names(); !reflect.DeepEqual(got, []string{"id", "name", "active"}) {
		t.Fatalf("field order = %v", got)
	}

	want := map[string]Value{
		"id":     IntegerValue(7),
		"name":   StringValue("alice"),
		"active": BooleanValue(true),
	}
	for name, w := range want {
		got, ok := rec.Get(name)
		if !ok {
			t.Fatalf("missing field %q", name)
		}
		if !got.Equal(w) {
			t.Errorf("%s = %v, want %v", name, got.Any(), w.Any())
		}
	}
}

func TestMapSingleColumnPerKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  db.WireType
		cell any
		kind Kind
	}{
		{typ: db.Text, cell: "hello world", kind: String},
		{typ: db.Int16, cell: int16(1), kind: Integer},
		{typ: db.Int32, cell: int32(1), kind: Integer},
		{typ: db.Int64, cell: int64(1), kind: Integer},
		{typ: db.Float32, cell: float32(1), kind: Float},
		{typ: db.Float64, cell: float64(1), kind: Float},
		{typ: db.Bool, cell: true, kind: Boolean},
		{typ: db.Bytes, cell: []byte("x"), kind: Binary},
		{typ: db.Numeric, cell: "1", kind: Nothing},
		{typ: db.Timestamp, cell: "2024-01-01", kind: Nothing},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			t.Parallel()

			recs := Map([]db.Column{{Name: "c", Type: tt.typ}}, []db.Row{{tt.cell}})
			if len(recs) != 1 || recs[0].Len() != 1 {
				t.Fatalf("unexpected shape: %d records", len(recs))
			}
			v, _ := recs[0].Get("c")
			if v.Kind() != tt.kind {
				t.Fatalf("kind = %s, want %s", v.Kind(), tt.kind)
			}
		})
	}
}

func TestMapEmpty(t *testing.T) {
	t.Parallel()

	columns := []db.Column{{Name: "a", Type: db.Text}}
	recs := Map(columns, nil)
	if recs == nil || len(recs) != 0 {
		t.Fatalf("Map with no rows = %#v, want empty slice", recs)
	}

	recs = Map(nil, []db.Row{{}, {}})
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Len() != 0 {
			t.Fatalf("record with no columns has %d fields", rec.Len())
		}
	}
}

func TestMapPreservesRowOrder(t *testing.T) {
	t.Parallel()

	columns := []db.Column{{Name: "n", Type: db.Int64}}
	var rows []db.Row
	for i := range 50 {
		rows = append(rows, db.Row{int64(i)})
	}

	recs := Map(columns, rows)
	if len(recs) != len(rows) {
		t.Fatalf("got %d records, want %d", len(recs), len(rows))
	}
	for i, rec := range recs {
		v, _ := rec.Get("n")
		if v.Int() != int64(i) {
			t.Fatalf("record %d has n=%d", i, v.Int())
		}
	}
}

func TestMapDuplicateNames(t *testing.T) {
	t.Parallel()

	columns := []db.Column{
		{Name: "a", Type: db.Int32},
		{Name: "b", Type: db.Text},
		{Name: "a", Type: db.Int32},
	}
	recs := Map(columns, []db.Row{{int32(1), "x", int32(2)}})

	rec := recs[0]
	if rec.Len() != 2 {
		t.Fatalf("record has %d fields, want 2", rec.Len())
	}
	if got := rec.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("field order = %v", got)
	}
	if v, _ := rec.Get("a"); v.Int() != 2 {
		t.Fatalf("a = %d, want 2", v.Int())
	}
	if got := Names(columns); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Names = %v", got)
	}
}

func TestMapUnsupportedDoesNotAbortRow(t *testing.T) {
	t.Parallel()

	columns := []db.Column{
		{Name: "price", Type: db.Numeric},
		{Name: "name", Type: db.Text},
	}
	recs := Map(columns, []db.Row{{"9.99", "widget"}, {nil, nil}})

	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	price, _ := recs[0].Get("price")
	name, _ := recs[0].Get("name")
	if !price.IsNothing() || name.Str() != "widget" {
		t.Fatalf("row 0 = %v, %v", price.Any(), name.Any())
	}
	for _, f := range recs[1].Fields() {
		if !f.Value.IsNothing() {
			t.Fatalf("null cell %s = %v", f.Name, f.Value.Any())
		}
	}
}

func TestRecordMarshalJSON(t *testing.T) {
	t.Parallel()

	rec := New(0)
	rec.Set("z", IntegerValue(1))
	rec.Set("a", StringValue("x"))
	rec.Set("bin", BinaryValue([]byte("hi")))
	rec.Set("empty", BinaryValue(nil))
	rec.Set("none", NothingValue())
	rec.Set("nan", FloatValue(math.NaN()))
	rec.Set("ok", BooleanValue(true))

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"z":1,"a":"x","bin":"aGk=","empty":"","none":null,"nan":"NaN","ok":true}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}
