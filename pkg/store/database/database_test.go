package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/migrate"
	"github.com/lodgeworks/lodged/pkg/store"
)

// setupDB opens a migrated temp SQLite database and a store on top of it.
func setupDB(t *testing.T) (context.Context, *db.DB, store.Store) {
	t.Helper()
	ctx := context.TODO()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbx, err := db.Open(ctx, "sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			t.Error(err)
		}
	})

	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	return ctx, dbx, New(ctx, dbx)
}
