package app

import (
	"context"
	"fmt"

	"github.com/bgunnarsson/psql/internal/db"
	"github.com/bgunnarsson/psql/internal/db/mssql"
	"github.com/bgunnarsson/psql/internal/db/mysql"
	"github.com/bgunnarsson/psql/internal/db/postgres"
	"github.com/bgunnarsson/psql/internal/db/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSqlite   Driver = "sqlite"
	DriverMssql    Driver = "mssql"
	DriverMysql    Driver = "mysql"
)

// central factory
func openSession(ctx context.Context, driver Driver, dsn string) (db.Session, error) {
	switch driver {
	case "", DriverPostgres, "postgresql":
		return postgres.Open(ctx, dsn)
	case DriverSqlite:
		return sqlite.Open(ctx, dsn)
	case DriverMssql:
		return mssql.Open(ctx, dsn)
	case DriverMysql:
		return mysql.Open(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", db.ErrConnection, driver)
	}
}
