package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bgunnarsson/psql/internal/db"
)

var errConnectionLost = errors.New("connection closed unexpectedly")

// PostgresDB is a single pgx connection. It is not safe for concurrent
// queries.
type PostgresDB struct {
	conn *pgx.Conn
}

// Open connects to the server described by dsn. The DSN is handed to pgx
// as is, either as a URL or as keyword/value pairs.
func Open(ctx context.Context, dsn string) (*PostgresDB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty postgres DSN", db.ErrConnection)
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrConnection, err)
	}
	cfg.OnNotice = func(_ *pgconn.PgConn, n *pgconn.Notice) {
		slog.Info("server notice", "severity", n.Severity, "code", n.Code, "message", n.Message)
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrConnection, err)
	}

	return &PostgresDB{conn: conn}, nil
}

func (p *PostgresDB) Close() error {
	if p.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.conn.Close(ctx)
}

// Supervise waits until ctx is done or the connection is torn down. pgx
// closes the connection on fatal protocol or network errors, so a close
// that happens while ctx is still live means the connection was lost.
func (p *PostgresDB) Supervise(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-p.conn.PgConn().CleanupDone():
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %w", db.ErrConnection, errConnectionLost)
	}
}

// Query prepares sqlQuery as a named statement and executes it without
// arguments. Statements that declare parameters are rejected.
func (p *PostgresDB) Query(ctx context.Context, sqlQuery string) (*db.Rows, error) {
	if strings.TrimSpace(sqlQuery) == "" {
		return nil, fmt.Errorf("%w: empty query", db.ErrPrepare)
	}

	name := statementName()
	sd, err := p.conn.Prepare(ctx, name, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrPrepare, err)
	}
	defer p.deallocate(name)

	if n := len(sd.ParamOIDs); n > 0 {
		return nil, fmt.Errorf("%w: query declares %d parameter(s) but bind parameters are not supported", db.ErrPrepare, n)
	}

	typeMap := p.conn.TypeMap()
	header := columns(typeMap, sd.Fields)

	rows, err := p.conn.Query(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrExecution, err)
	}
	defer rows.Close()

	data := make([]db.Row, 0)
	for rows.Next() {
		fields := rows.FieldDescriptions()
		raw := rows.RawValues()

		row := make(db.Row, len(raw))
		for i := range raw {
			row[i] = decodeCell(typeMap, fields[i], raw[i])
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrExecution, err)
	}

	return &db.Rows{
		Columns: header,
		Data:    data,
	}, nil
}

func (p *PostgresDB) deallocate(name string) {
	if p.conn.IsClosed() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.conn.Deallocate(ctx, name); err != nil {
		slog.Debug("deallocate prepared statement", "statement", name, "error", err)
	}
}

func statementName() string {
	return "psql_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// decodeCell decodes one raw cell with the codec registered for its OID.
// NULLs, unregistered OIDs and decode failures all yield nil.
func decodeCell(m *pgtype.Map, fd pgconn.FieldDescription, raw []byte) any {
	if raw == nil {
		return nil
	}

	typ, ok := m.TypeForOID(fd.DataTypeOID)
	if !ok {
		return nil
	}

	v, err := typ.Codec.DecodeValue(m, fd.DataTypeOID, fd.Format, raw)
	if err != nil {
		slog.Debug("undecodable cell", "column", fd.Name, "oid", fd.DataTypeOID, "error", err)
		return nil
	}
	return v
}
