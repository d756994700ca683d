package migrate

import (
	"context"
	"testing"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/internal/test"
	"github.com/matryer/is"
)

func TestMigrateSqlite(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()

	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))

	// Running twice is a no-op.
	is.NoErr(Migrate(ctx, dbx))

	for _, table := range []string{
		"collectors", "members", "users", "sessions", "payment_requests",
	} {
		var count int64
		err := dbx.GetContext(ctx, &count,
			dbx.Rebind(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`), table)
		is.NoErr(err)
		is.Equal(count, int64(1))
	}
}

func TestRollbackSqlite(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()

	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))
	is.NoErr(Rollback(ctx, dbx))

	var count int64
	err = dbx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'members'`)
	is.NoErr(err)
	is.Equal(count, int64(0))
}

func TestPendingStatusDefault(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()

	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))

	is.NoErr(dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(`INSERT INTO collectors (name, member_number) VALUES ('North', 'C1')`); err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO members (member_number, full_name, collector) VALUES ('M1', 'Jane Doe', 'North')`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO payment_requests (id, member_id, collector_id, payment_type, amount_pence)
			VALUES ('p1', 1, 1, 'yearly', 5000)`)
		return err
	}))

	var status string
	is.NoErr(dbx.GetContext(ctx, &status, `SELECT status FROM payment_requests WHERE id = 'p1'`))
	is.Equal(status, "pending")
}
