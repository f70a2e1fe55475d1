package record

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bgunnarsson/psql/internal/db"
)

// Coerce converts a decoded cell of wire type t into a Value. It never
// fails: NULL cells, unsupported wire types and cells that do not fit the
// wire type all yield Nothing.
//
// Numeric, date, time and timestamp columns are not supported and always
// yield Nothing.
func Coerce(t db.WireType, cell any) Value {
	if cell == nil {
		return Value{}
	}

	switch t {
	case db.Text:
		return asString(cell)
	case db.Int16, db.Int32, db.Int64:
		return asInteger(cell)
	case db.Float32, db.Float64:
		return asFloat(cell)
	case db.Bool:
		return asBoolean(cell)
	case db.Bytes:
		return asBinary(cell)
	case db.Dynamic:
		return asDynamic(cell)
	default:
		return Value{}
	}
}

func asString(cell any) Value {
	switch x := cell.(type) {
	case string:
		return StringValue(x)
	case []byte:
		if !utf8.Valid(x) {
			return Value{}
		}
		return StringValue(string(x))
	default:
		return Value{}
	}
}

func asInteger(cell any) Value {
	switch x := cell.(type) {
	case int64:
		return IntegerValue(x)
	case int32:
		return IntegerValue(int64(x))
	case int16:
		return IntegerValue(int64(x))
	case int8:
		return IntegerValue(int64(x))
	case int:
		return IntegerValue(int64(x))
	case uint8:
		return IntegerValue(int64(x))
	case uint16:
		return IntegerValue(int64(x))
	case uint32:
		return IntegerValue(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return Value{}
		}
		return IntegerValue(int64(x))
	case string:
		return parseInteger(x)
	case []byte:
		return parseInteger(string(x))
	default:
		return Value{}
	}
}

func parseInteger(s string) Value {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Value{}
	}
	return IntegerValue(i)
}

func asFloat(cell any) Value {
	switch x := cell.(type) {
	case float64:
		return FloatValue(x)
	case float32:
		// Widen through the shortest decimal form so 0.1 stays 0.1.
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(x), 'g', -1, 32), 64)
		if err != nil {
			return FloatValue(float64(x))
		}
		return FloatValue(f)
	case string:
		return parseFloat(x)
	case []byte:
		return parseFloat(string(x))
	default:
		return Value{}
	}
}

func parseFloat(s string) Value {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Value{}
	}
	return FloatValue(f)
}

func asBoolean(cell any) Value {
	switch x := cell.(type) {
	case bool:
		return BooleanValue(x)
	case int64:
		return intBoolean(x)
	case int32:
		return intBoolean(int64(x))
	case int16:
		return intBoolean(int64(x))
	case int8:
		return intBoolean(int64(x))
	case int:
		return intBoolean(int64(x))
	case string:
		return parseBoolean(x)
	case []byte:
		return parseBoolean(string(x))
	default:
		return Value{}
	}
}

func intBoolean(i int64) Value {
	switch i {
	case 0:
		return BooleanValue(false)
	case 1:
		return BooleanValue(true)
	default:
		return Value{}
	}
}

// parseBoolean accepts the text forms used by PostgreSQL ("t"/"f") as well as
// the ones strconv knows.
func parseBoolean(s string) Value {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return Value{}
	}
	return BooleanValue(b)
}

func asBinary(cell any) Value {
	x, ok := cell.([]byte)
	if !ok {
		return Value{}
	}
	return BinaryValue(bytes.Clone(x))
}

func asDynamic(cell any) Value {
	switch cell.(type) {
	case string:
		return asString(cell)
	case []byte:
		return asBinary(cell)
	case bool:
		return asBoolean(cell)
	case float32, float64:
		return asFloat(cell)
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return asInteger(cell)
	default:
		return Value{}
	}
}
