package repository

import (
	"context"
	"database/sql"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Repository
// methods run against whichever the instance was built with, so the same
// queries serve both plain reads and settlement transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides database operations
type Repository struct {
	pool *sql.DB
	db   DBTX
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{pool: db, db: db}
}

// WithTx returns a Repository whose queries run inside the given transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{pool: r.pool, db: tx}
}

// BeginTx starts a new database transaction.
func (r *Repository) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return r.pool.BeginTx(ctx, opts)
}
