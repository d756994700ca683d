package migrate

import (
	"context"

	"github.com/lodgeworks/lodged/pkg/db"
)

const (
	createTablesName    = "create tables"
	createTablesVersion = 1
)

var createTablesSqlite = []string{
	`CREATE TABLE IF NOT EXISTS collectors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		member_number TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_number TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		collector TEXT REFERENCES collectors (name) ON DELETE SET NULL ON UPDATE CASCADE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE INDEX IF NOT EXISTS idx_members_collector ON members (collector);`,
	`CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at);`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_number TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		password TEXT,
		role TEXT NOT NULL DEFAULT 'member'
			CHECK (role IN ('member', 'collector', 'admin')),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS payment_requests (
		id TEXT PRIMARY KEY,
		member_id INTEGER NOT NULL REFERENCES members (id) ON DELETE CASCADE,
		collector_id INTEGER NOT NULL REFERENCES collectors (id) ON DELETE CASCADE,
		payment_type TEXT NOT NULL
			CHECK (payment_type IN ('membership', 'yearly', 'other')),
		amount_pence INTEGER NOT NULL CHECK (amount_pence > 0),
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'rejected')),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		approved_at DATETIME,
		approved_by TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payment_requests_status ON payment_requests (status);`,
	`CREATE INDEX IF NOT EXISTS idx_payment_requests_collector_id ON payment_requests (collector_id);`,
	`CREATE INDEX IF NOT EXISTS idx_payment_requests_created_at ON payment_requests (created_at);`,
}

var createTablesPostgres = []string{
	`CREATE TABLE IF NOT EXISTS collectors (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		member_number TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS members (
		id SERIAL PRIMARY KEY,
		member_number TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		collector TEXT REFERENCES collectors (name) ON DELETE SET NULL ON UPDATE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE INDEX IF NOT EXISTS idx_members_collector ON members (collector);`,
	`CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at);`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		member_number TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		password TEXT,
		role TEXT NOT NULL DEFAULT 'member'
			CHECK (role IN ('member', 'collector', 'admin')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS payment_requests (
		id TEXT PRIMARY KEY,
		member_id INTEGER NOT NULL REFERENCES members (id) ON DELETE CASCADE,
		collector_id INTEGER NOT NULL REFERENCES collectors (id) ON DELETE CASCADE,
		payment_type TEXT NOT NULL
			CHECK (payment_type IN ('membership', 'yearly', 'other')),
		amount_pence BIGINT NOT NULL CHECK (amount_pence > 0),
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'rejected')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		approved_at TIMESTAMP,
		approved_by TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payment_requests_status ON payment_requests (status);`,
	`CREATE INDEX IF NOT EXISTS idx_payment_requests_collector_id ON payment_requests (collector_id);`,
	`CREATE INDEX IF NOT EXISTS idx_payment_requests_created_at ON payment_requests (created_at);`,
}

var dropTables = []string{
	`DROP TABLE IF EXISTS payment_requests;`,
	`DROP TABLE IF EXISTS sessions;`,
	`DROP TABLE IF EXISTS users;`,
	`DROP TABLE IF EXISTS members;`,
	`DROP TABLE IF EXISTS collectors;`,
}

var createTables = Migration{
	Version: createTablesVersion,
	Name:    createTablesName,
	Migrate: func(ctx context.Context, tx *db.Tx) error {
		stmts := createTablesSqlite
		if tx.DriverName() == driverPostgres {
			stmts = createTablesPostgres
		}

		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		return nil
	},
	Rollback: func(ctx context.Context, tx *db.Tx) error {
		for _, stmt := range dropTables {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		return nil
	},
}
