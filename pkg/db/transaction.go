package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Beginner starts transactions. *pgxpool.Pool, *pgx.Conn and pgx.Tx satisfy
// it; a pgx.Tx begins a savepoint.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn in a transaction on db. The transaction commits when fn
// returns nil and rolls back on an error or a panic. fn's error is returned
// unchanged.
func WithTx(ctx context.Context, db Beginner, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, fn)
}
