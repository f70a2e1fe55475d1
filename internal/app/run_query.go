package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bgunnarsson/psql/internal/db"
	"github.com/bgunnarsson/psql/internal/record"
)

type Request struct {
	Driver Driver
	DSN    string
	Query  string
	// Timeout bounds the whole invocation. Zero means no limit.
	Timeout time.Duration
}

type Result struct {
	Columns []db.Column
	Records []*record.Record
}

// Run opens one connection, runs the query on it and maps every row. It
// returns either the complete result or an error, never a partial result.
func Run(ctx context.Context, req Request) (*Result, error) {
	log := slog.With("invocation", uuid.NewString(), "driver", string(req.Driver))

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	sess, err := openSession(ctx, req.Driver, req.DSN)
	if err != nil {
		log.Error("connect failed", "error", err)
		return nil, err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Debug("close connection", "error", err)
		}
	}()
	log.Debug("connected", "elapsed", time.Since(start))

	rows, err := execute(ctx, log, sess, req.Query)
	if err != nil {
		log.Error("query failed", "error", err)
		return nil, err
	}

	records := record.Map(rows.Columns, rows.Data)
	log.Info("query complete", "columns", len(rows.Columns), "rows", len(records), "elapsed", time.Since(start))

	return &Result{
		Columns: rows.Columns,
		Records: records,
	}, nil
}

// execute runs the connection supervisor next to the query. The query side
// ends the supervisor when it returns; a supervisor failure cancels the
// query. A supervisor failure seen after the rows are in is only logged.
func execute(ctx context.Context, log *slog.Logger, sess db.Session, query string) (*db.Rows, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return sess.Supervise(gctx)
	})

	var rows *db.Rows
	var queryErr error
	g.Go(func() error {
		defer cancel()
		rows, queryErr = sess.Query(gctx, query)
		return queryErr
	})

	err := g.Wait()
	if queryErr != nil {
		// err is whichever failed first, so a lost connection is reported
		// instead of the cancellation it caused.
		return nil, err
	}
	if err != nil {
		log.Warn("connection failed after the query completed", "error", err)
	}
	return rows, nil
}
