package db

import (
	"context"
)

type Column struct {
	Name string
	Type WireType
	// DatabaseType is the engine's own name for the column type, lower case.
	DatabaseType string
}

// Row holds one decoded cell per column. A nil cell is SQL NULL or a value
// the client library could not decode.
type Row []any

type Rows struct {
	Columns []Column
	Data    []Row
}

// Session is a single live connection owned by one invocation.
type Session interface {
	// Supervise runs for the lifetime of the connection. It returns nil once
	// ctx is done and an ErrConnection error if the connection is lost first.
	Supervise(ctx context.Context) error

	// Query prepares sqlQuery, runs it without parameters and returns the
	// whole result set.
	Query(ctx context.Context, sqlQuery string) (*Rows, error)

	Close() error
}
