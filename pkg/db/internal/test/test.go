// Package test opens throwaway databases for the db and migrate tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lodgeworks/lodged/pkg/db"
)

// OpenSqlite opens a temp SQLite database with the same pragmas the server
// uses and closes it via tb.Cleanup. A nil ctx falls back to context.TODO().
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	if ctx == nil {
		ctx = context.TODO()
	}
	dsn := filepath.Join(tb.TempDir(), "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbx, err := db.Open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}
