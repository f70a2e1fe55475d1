package db

import "strings"

// WireType is the server-side column type, reduced to the set the record
// mapper knows how to decode.
type WireType int

const (
	Unknown WireType = iota
	Text
	Int16
	Int32
	Int64
	Float32
	Float64
	Bool
	Bytes
	Numeric
	Date
	Time
	Timestamp
	// Dynamic marks columns without a declared type (SQLite expressions).
	// The cell's runtime type decides how it is decoded.
	Dynamic
)

var wireTypeNames = [...]string{
	Unknown:   "unknown",
	Text:      "text",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Float32:   "float32",
	Float64:   "float64",
	Bool:      "bool",
	Bytes:     "bytes",
	Numeric:   "numeric",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
	Dynamic:   "dynamic",
}

func (t WireType) String() string {
	if t < 0 || int(t) >= len(wireTypeNames) {
		return wireTypeNames[Unknown]
	}
	return wireTypeNames[t]
}

// typeNames maps the type names reported by database/sql drivers
// (ColumnType.DatabaseTypeName) for sqlite, mysql and mssql.
var typeNames = map[string]WireType{
	"text":              Text,
	"varchar":           Text,
	"char":              Text,
	"character":         Text,
	"character varying": Text,
	"nvarchar":          Text,
	"nchar":             Text,
	"ntext":             Text,
	"tinytext":          Text,
	"mediumtext":        Text,
	"longtext":          Text,
	"clob":              Text,
	"bpchar":            Text,
	"name":              Text,
	"uniqueidentifier":  Text,

	"tinyint":  Int16,
	"smallint": Int16,
	"int2":     Int16,

	"int":       Int32,
	"integer":   Int32,
	"int4":      Int32,
	"mediumint": Int32,

	"bigint": Int64,
	"int8":   Int64,

	"real":   Float32,
	"float4": Float32,

	"float":            Float64,
	"float8":           Float64,
	"double":           Float64,
	"double precision": Float64,

	"bool":    Bool,
	"boolean": Bool,
	"bit":     Bool,

	"bytea":      Bytes,
	"blob":       Bytes,
	"tinyblob":   Bytes,
	"mediumblob": Bytes,
	"longblob":   Bytes,
	"binary":     Bytes,
	"varbinary":  Bytes,
	"image":      Bytes,

	"numeric":    Numeric,
	"decimal":    Numeric,
	"dec":        Numeric,
	"money":      Numeric,
	"smallmoney": Numeric,

	"date": Date,

	"time":   Time,
	"timetz": Time,

	"timestamp":      Timestamp,
	"timestamptz":    Timestamp,
	"datetime":       Timestamp,
	"datetime2":      Timestamp,
	"smalldatetime":  Timestamp,
	"datetimeoffset": Timestamp,
}

// ParseTypeName maps a driver-reported type name such as "VARCHAR(20)" or
// "UNSIGNED BIGINT" onto a WireType. An empty name yields Dynamic.
func ParseTypeName(name string) WireType {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Dynamic
	}
	if i := strings.IndexByte(n, '('); i != -1 {
		n = strings.TrimSpace(n[:i])
	}
	n = strings.TrimPrefix(n, "unsigned ")
	n = strings.TrimSuffix(n, " unsigned")

	if t, ok := typeNames[n]; ok {
		return t
	}
	return Unknown
}

// ParseSQLiteTypeName is ParseTypeName with SQLite's column affinity rules
// applied to names the table does not know, so "UNSIGNED BIG INT" is an
// integer and "VARYING CHARACTER(20)" is text.
func ParseSQLiteTypeName(name string) WireType {
	if t := ParseTypeName(name); t != Unknown {
		return t
	}

	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "int"):
		return Int64
	case strings.Contains(n, "char"), strings.Contains(n, "clob"), strings.Contains(n, "text"):
		return Text
	case strings.Contains(n, "blob"):
		return Bytes
	case strings.Contains(n, "real"), strings.Contains(n, "floa"), strings.Contains(n, "doub"):
		return Float64
	default:
		return Numeric
	}
}
