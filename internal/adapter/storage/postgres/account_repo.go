package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"card-casino/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, username, password_hash, credits, total_won, total_lost, net_earnings, total_withdrawn, created_at, updated_at`

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account into the database.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Username, a.PasswordHash,
		a.Credits, a.TotalWon, a.TotalLost, a.NetEarnings, a.TotalWithdrawn,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByUsername fetches an account by username. Returns nil when no
// such account exists.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("get account by username: %w", err)
	}
	return a, nil
}

// GetByUsernameForUpdate fetches an account by username with
// pessimistic locking. This MUST be called within a transaction.
func (r *AccountRepo) GetByUsernameForUpdate(ctx context.Context, tx pgx.Tx, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1 FOR UPDATE`

	a, err := scanAccount(tx.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return a, nil
}

// UpdateLedger persists the balance and lifetime totals of a locked
// account row.
func (r *AccountRepo) UpdateLedger(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `UPDATE accounts
		SET credits = $1, total_won = $2, total_lost = $3, net_earnings = $4, total_withdrawn = $5, updated_at = $6
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		a.Credits, a.TotalWon, a.TotalLost, a.NetEarnings, a.TotalWithdrawn,
		time.Now().UTC(), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update account ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update account ledger: no row for id %s", a.ID)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash,
		&a.Credits, &a.TotalWon, &a.TotalLost, &a.NetEarnings, &a.TotalWithdrawn,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}
