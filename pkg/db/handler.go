package db

import (
	"context"
	"database/sql"
)

// Handler is the query surface shared by the connection pool and an open
// transaction. Stores take a Handler so the caller picks the transaction
// scope.
type Handler interface {
	Rebind(string) string

	SelectContext(context.Context, interface{}, string, ...interface{}) error
	GetContext(context.Context, interface{}, string, ...interface{}) error
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
}
