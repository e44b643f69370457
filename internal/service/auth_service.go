package service

import (
	"context"
	"fmt"

	"card-casino/internal/core/domain"
	"card-casino/internal/core/ports"
	"card-casino/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	accountRepo     ports.AccountRepository
	hashSvc         ports.HashService
	tokenSvc        ports.TokenService
	startingCredits int64
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl. New accounts are
// seeded with startingCredits.
func NewAuthService(
	accountRepo ports.AccountRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	startingCredits int64,
	logger zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accountRepo:     accountRepo,
		hashSvc:         hashSvc,
		tokenSvc:        tokenSvc,
		startingCredits: startingCredits,
		logger:          logger,
	}
}

// Register creates a new player account with the starting credit
// balance and returns a logged-in session for it.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*ports.Session, error) {
	existing, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameTaken()
	}

	passwordHash, err := s.hashSvc.Hash(password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	account := domain.NewAccount(username, passwordHash, s.startingCredits)
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("create account: %w", err))
	}

	s.logger.Info().
		Str("username", username).
		Int64("credits", account.Credits).
		Msg("account registered")

	return s.newSession(account)
}

// Authenticate verifies the credentials and returns a session.
// Unknown user and wrong password are reported as distinct errors.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*ports.Session, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("look up account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrUserNotFound()
	}

	ok, err := s.hashSvc.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		s.logger.Warn().Str("username", username).Msg("failed login attempt")
		return nil, apperror.ErrInvalidCredentials()
	}

	return s.newSession(account)
}

func (s *AuthServiceImpl) newSession(account *domain.Account) (*ports.Session, error) {
	token, expiresAt, err := s.tokenSvc.Generate(account.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issue token: %w", err))
	}

	return &ports.Session{
		Username: account.Username,
		Credits:  account.Credits,
		Token:    token,
		Expiry:   expiresAt,
	}, nil
}
