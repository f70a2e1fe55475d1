// Package sqldb runs single-connection sessions over database/sql drivers.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bgunnarsson/psql/internal/db"
)

// Options configures Open.
type Options struct {
	// Init statements run on the connection right after it is established.
	Init []string

	// Convert, when set, rewrites each scanned cell before it is stored.
	Convert func(col db.Column, v any) any

	// TypeName maps a declared column type onto a WireType. Defaults to
	// db.ParseTypeName.
	TypeName func(name string) db.WireType
}

// DB pins one connection of a database/sql pool for a session.
type DB struct {
	db      *sql.DB
	conn     *sql.Conn
	convert  func(col db.Column, v any) any
	typeName func(name string) db.WireType
}

func Open(ctx context.Context, driverName, dsn string, opts Options) (*DB, error) {
	sqldb, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrConnection, err)
	}

	// One connection per session, never shared or reused.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	conn, err := sqldb.Conn(ctx)
	if err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("%w: %w", db.ErrConnection, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = sqldb.Close()
		return nil, fmt.Errorf("%w: %w", db.ErrConnection, err)
	}

	for _, stmt := range opts.Init {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			_ = sqldb.Close()
			return nil, fmt.Errorf("%w: %s: %w", db.ErrConnection, stmt, err)
		}
	}

	typeName := opts.TypeName
	if typeName == nil {
		typeName = db.ParseTypeName
	}

	return &DB{db: sqldb, conn: conn, convert: opts.Convert, typeName: typeName}, nil
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return errors.Join(d.conn.Close(), d.db.Close())
}

// Supervise blocks until ctx is done. database/sql drivers do their I/O on
// the calling goroutine, so a broken connection surfaces as a query error
// instead.
func (d *DB) Supervise(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (d *DB) Query(ctx context.Context, sqlQuery string) (*db.Rows, error) {
	if strings.TrimSpace(sqlQuery) == "" {
		return nil, fmt.Errorf("%w: empty query", db.ErrPrepare)
	}

	stmt, err := d.conn.PrepareContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrPrepare, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrExecution, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrExecution, err)
	}

	header := make([]db.Column, len(colTypes))
	for i, ct := range colTypes {
		typ := strings.ToLower(ct.DatabaseTypeName())
		header[i] = db.Column{
			Name:         ct.Name(),
			Type:         d.typeName(typ),
			DatabaseType: typ,
		}
	}

	data := make([]db.Row, 0)
	for rows.Next() {
		values := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %w", db.ErrExecution, err)
		}

		if d.convert != nil {
			for i, v := range values {
				values[i] = d.convert(header[i], v)
			}
		}

		data = append(data, db.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrExecution, err)
	}

	return &db.Rows{
		Columns: header,
		Data:    data,
	}, nil
}
