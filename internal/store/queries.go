// Package store provides database access: connection setup, embedded
// migrations, and hand-written queries over the blog schema.
package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need, allowing the
// same query methods to run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the prepared query methods bound to a DB or transaction.
type Queries struct {
	db DBTX
}

// New creates Queries bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
