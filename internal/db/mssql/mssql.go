package mssql

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/azuread"

	"github.com/bgunnarsson/psql/internal/db"
	"github.com/bgunnarsson/psql/internal/db/sqldb"
)

// Open opens a SQL Server connection.
// If the DSN contains "fedauth=", we use the Azure AD driver (azuresql)
// so things like ActiveDirectoryInteractive / AzCli work.
func Open(ctx context.Context, dsn string) (*sqldb.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty mssql DSN", db.ErrConnection)
	}

	return sqldb.Open(ctx, driverName(dsn), dsn, sqldb.Options{Convert: convert})
}

func driverName(dsn string) string {
	if strings.Contains(strings.ToLower(dsn), "fedauth=") {
		return azuread.DriverName // "azuresql"
	}
	return "sqlserver"
}

// convert renders uniqueidentifier columns, which the driver returns as
// 16 raw bytes in SQL Server's mixed-endian layout, as canonical UUID text.
func convert(col db.Column, v any) any {
	b, ok := v.([]byte)
	if !ok || col.DatabaseType != "uniqueidentifier" {
		return v
	}
	return formatUniqueIdentifier(b)
}

func formatUniqueIdentifier(b []byte) string {
	if len(b) != 16 {
		return fmt.Sprintf("%x", b)
	}

	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		b[3], b[2], b[1], b[0],
		b[5], b[4],
		b[7], b[6],
		b[8], b[9],
		b[10], b[11], b[12], b[13], b[14], b[15],
	)
}
