package mysql

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bgunnarsson/psql/internal/db"
	"github.com/bgunnarsson/psql/internal/db/sqldb"
)

// Open connects with a go-sql-driver DSN such as
// "user:pass@tcp(localhost:3306)/dbname". Prepared statements use the
// binary protocol, so integers and floats arrive already typed.
func Open(ctx context.Context, dsn string) (*sqldb.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty mysql DSN", db.ErrConnection)
	}

	return sqldb.Open(ctx, "mysql", dsn, sqldb.Options{})
}
