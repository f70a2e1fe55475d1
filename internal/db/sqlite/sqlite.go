package sqlite

import (
	"context"
	"fmt"

	_ "modernc.org/sqlite" // register driver

	"github.com/bgunnarsson/psql/internal/db"
	"github.com/bgunnarsson/psql/internal/db/sqldb"
)

// Open opens the database file at path. Columns without a declared type
// (expressions, literals) are reported as db.Dynamic; declared types the
// type table does not know fall back to SQLite's affinity rules.
func Open(ctx context.Context, path string) (*sqldb.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty sqlite path", db.ErrConnection)
	}

	return sqldb.Open(ctx, "sqlite", path, sqldb.Options{
		Init:     []string{`PRAGMA foreign_keys = ON;`},
		TypeName: db.ParseSQLiteTypeName,
	})
}
