package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bgunnarsson/psql/internal/db"
)

var wireTypes = map[uint32]db.WireType{
	pgtype.TextOID:    db.Text,
	pgtype.VarcharOID: db.Text,
	pgtype.BPCharOID:  db.Text,
	pgtype.NameOID:    db.Text,

	pgtype.Int2OID: db.Int16,
	pgtype.Int4OID: db.Int32,
	pgtype.Int8OID: db.Int64,

	pgtype.Float4OID: db.Float32,
	pgtype.Float8OID: db.Float64,

	pgtype.BoolOID:  db.Bool,
	pgtype.ByteaOID: db.Bytes,

	pgtype.NumericOID:     db.Numeric,
	pgtype.DateOID:        db.Date,
	pgtype.TimeOID:        db.Time,
	pgtype.TimestampOID:   db.Timestamp,
	pgtype.TimestamptzOID: db.Timestamp,
}

func wireType(oid uint32) db.WireType {
	if t, ok := wireTypes[oid]; ok {
		return t
	}
	return db.Unknown
}

func columns(m *pgtype.Map, fields []pgconn.FieldDescription) []db.Column {
	header := make([]db.Column, len(fields))
	for i, fd := range fields {
		header[i] = db.Column{
			Name:         fd.Name,
			Type:         wireType(fd.DataTypeOID),
			DatabaseType: typeName(m, fd.DataTypeOID),
		}
	}
	return header
}

func typeName(m *pgtype.Map, oid uint32) string {
	if t, ok := m.TypeForOID(oid); ok {
		return t.Name
	}
	return fmt.Sprintf("oid:%d", oid)
}
