package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor over the Pool interface, so
// ledger mutations can run their locked read-modify-write inside one
// transaction.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a Transactor over the given pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin opens a transaction. Callers must Commit or Rollback it.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
