package ports

import (
	"context"
	"time"

	"card-casino/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx run inside transaction blocks so ledger updates
// hold the row lock for their full read-modify-write.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByUsernameForUpdate(ctx context.Context, tx pgx.Tx, username string) (*domain.Account, error)
	UpdateLedger(ctx context.Context, tx pgx.Tx, account *domain.Account) error
}

// RoundStore keeps the active round per user and game. Rounds are
// short-lived: stored on deal, rewritten on each action, deleted on
// resolution, and expired by TTL if abandoned.
type RoundStore interface {
	// Get returns the serialized round, or nil if none is active.
	Get(ctx context.Context, game, username string) ([]byte, error)
	Put(ctx context.Context, game, username string, state []byte, ttl time.Duration) error
	Delete(ctx context.Context, game, username string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
