package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgunnarsson/psql/internal/db"
)

func TestOpenFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dsn  string
	}{
		{name: "empty", dsn: ""},
		{name: "malformed", dsn: "root@localhost/db"},
		{name: "unreachable", dsn: "root:secret@tcp(127.0.0.1:1)/db?timeout=2s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			s, err := Open(ctx, tt.dsn)
			if !errors.Is(err, db.ErrConnection) {
				t.Fatalf("Open(%q) error = %v, want ErrConnection", tt.dsn, err)
			}
			if s != nil {
				t.Fatalf("Open returned a session alongside an error")
			}
		})
	}
}
