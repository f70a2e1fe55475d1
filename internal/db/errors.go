package db

import "errors"

var (
	// ErrConnection covers descriptor, network and authentication failures,
	// and connections lost while a query is in flight.
	ErrConnection = errors.New("connection error")

	// ErrPrepare is returned when the server rejects the query text.
	ErrPrepare = errors.New("prepare error")

	// ErrExecution is returned when a prepared query fails while running.
	ErrExecution = errors.New("execution error")
)
