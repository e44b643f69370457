package service

import (
	"context"
	"fmt"

	"card-casino/internal/core/domain"
	"card-casino/internal/core/ports"
	"card-casino/pkg/apperror"

	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService. Every balance
// mutation runs inside a transaction holding a row lock on the
// account, so concurrent requests for the same player serialize
// instead of clobbering each other.
type LedgerServiceImpl struct {
	accountRepo         ports.AccountRepository
	transactor          ports.DBTransactor
	maxPayoutMultiplier int64
	logger              zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl. Reported wins on
// the self-reporting endpoint are capped at maxPayoutMultiplier times
// the bet.
func NewLedgerService(
	accountRepo ports.AccountRepository,
	transactor ports.DBTransactor,
	maxPayoutMultiplier int64,
	logger zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accountRepo:         accountRepo,
		transactor:          transactor,
		maxPayoutMultiplier: maxPayoutMultiplier,
		logger:              logger,
	}
}

// ApplyGameResult settles one finished round against the account:
// the bet is debited, the win credited, and the lifetime totals
// updated. Returns the new credit balance.
func (s *LedgerServiceImpl) ApplyGameResult(ctx context.Context, username string, bet, win int64) (int64, error) {
	if bet <= 0 || win < 0 {
		return 0, apperror.ErrInvalidAmount()
	}
	if win > bet*s.maxPayoutMultiplier {
		s.logger.Warn().
			Str("username", username).
			Int64("bet", bet).
			Int64("win", win).
			Msg("reported win exceeds payout limit")
		return 0, apperror.ErrPayoutLimitExceeded()
	}

	var credits int64
	err := s.withAccount(ctx, username, func(account *domain.Account) error {
		account.ApplyGameResult(bet, win)
		credits = account.Credits
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("username", username).
		Int64("bet", bet).
		Int64("win", win).
		Int64("credits", credits).
		Msg("game result applied")

	return credits, nil
}

// AddCredits tops up the account balance. Purchases do not count as
// winnings.
func (s *LedgerServiceImpl) AddCredits(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	var credits int64
	err := s.withAccount(ctx, username, func(account *domain.Account) error {
		account.AddCredits(amount)
		credits = account.Credits
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("username", username).
		Int64("amount", amount).
		Int64("credits", credits).
		Msg("credits added")

	return credits, nil
}

// Withdraw moves amount out of the account. Fails with
// InsufficientFunds when the balance cannot cover it.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	var credits int64
	err := s.withAccount(ctx, username, func(account *domain.Account) error {
		if !account.Withdraw(amount) {
			return apperror.ErrInsufficientFunds()
		}
		credits = account.Credits
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("username", username).
		Int64("amount", amount).
		Int64("credits", credits).
		Msg("withdrawal completed")

	return credits, nil
}

// GetStats returns the account snapshot shown on the dashboard.
func (s *LedgerServiceImpl) GetStats(ctx context.Context, username string) (*ports.Stats, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("look up account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	return &ports.Stats{
		Credits:        account.Credits,
		NetEarnings:    account.NetEarnings,
		TotalWithdrawn: account.TotalWithdrawn,
	}, nil
}

// withAccount runs fn against the row-locked account inside a
// transaction and persists the mutated ledger on success.
func (s *LedgerServiceImpl) withAccount(ctx context.Context, username string, fn func(*domain.Account) error) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("begin transaction: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByUsernameForUpdate(ctx, dbTx, username)
	if err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}

	if err := fn(account); err != nil {
		return err
	}

	if err := s.accountRepo.UpdateLedger(ctx, dbTx, account); err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("update ledger: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}
