package db

import (
	"context"
	"database/sql"
)

// DBTX is the minimal database surface the query layer needs. Both
// *sql.DB and *sql.Tx satisfy it, so every query can run standalone or
// inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Queries groups all database access methods. It is stateless; the
// connection (or transaction) is passed per call.
type Queries struct{}

// New returns a Queries value for use by the services.
func New() *Queries {
	return &Queries{}
}
