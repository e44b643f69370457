package ports

import (
	"context"
	"time"

	"card-casino/internal/core/domain"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT session token operations.
type TokenService interface {
	Generate(username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Username string
}

// --- Service Ports (Business Logic) ---

// Session is the result of a successful registration or login.
type Session struct {
	Username string
	Credits  int64
	Token    string
	Expiry   time.Time
}

// AuthService defines registration and login business logic.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*Session, error)
	Authenticate(ctx context.Context, username, password string) (*Session, error)
}

// Stats is the dashboard slice of the ledger.
type Stats struct {
	Credits        int64
	NetEarnings    int64
	TotalWithdrawn int64
}

// LedgerService defines the authoritative per-account balance operations.
// Each call is one serialized read-modify-write; all return the new
// credit balance.
type LedgerService interface {
	ApplyGameResult(ctx context.Context, username string, bet, win int64) (int64, error)
	AddCredits(ctx context.Context, username string, amount int64) (int64, error)
	Withdraw(ctx context.Context, username string, amount int64) (int64, error)
	GetStats(ctx context.Context, username string) (*Stats, error)
}

// RoundResolution reports how a finished round settled into the ledger.
type RoundResolution struct {
	Outcome   domain.Outcome `json:"outcome"`
	BetAmount int64          `json:"betAmount"`
	WinAmount int64          `json:"winAmount"`
	Credits   int64          `json:"credits"` // balance after settlement
}

// GameService drives server-side rounds. A nil RoundResolution means the
// round is still in progress and the returned round reflects its current
// state; a non-nil one means the round resolved and was settled.
type GameService interface {
	BlackjackDeal(ctx context.Context, username string, bet int64) (*domain.BlackjackRound, error)
	BlackjackHit(ctx context.Context, username string) (*domain.BlackjackRound, *RoundResolution, error)
	BlackjackStand(ctx context.Context, username string) (*domain.BlackjackRound, *RoundResolution, error)

	PokerDeal(ctx context.Context, username string, bet int64) (*domain.PokerRound, error)
	PokerFold(ctx context.Context, username string) (*domain.PokerRound, *RoundResolution, error)
	PokerCall(ctx context.Context, username string) (*domain.PokerRound, *RoundResolution, error)
	PokerRaise(ctx context.Context, username string) (*domain.PokerRound, *RoundResolution, error)
}
