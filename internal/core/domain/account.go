package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the authoritative per-user ledger record. Credits and the
// lifetime counters are only ever written through the ledger operations
// below; netEarnings is derived and recomputed on every update.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"` // Never expose
	Credits        int64     `json:"credits"`
	TotalWon       int64     `json:"total_won"`
	TotalLost      int64     `json:"total_lost"`
	NetEarnings    int64     `json:"net_earnings"`
	TotalWithdrawn int64     `json:"total_withdrawn"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAccount creates a registration-time record with the configured
// starting balance and all lifetime counters at zero.
func NewAccount(username, passwordHash string, startingCredits int64) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Credits:      startingCredits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ApplyGameResult settles one game: the bet joins totalLost, the win joins
// totalWon, and credits move by the difference. Each call is a distinct
// economic event; applying the same result twice doubles its effect.
func (a *Account) ApplyGameResult(bet, win int64) {
	a.TotalLost += bet
	a.TotalWon += win
	a.Credits += win - bet
	a.NetEarnings = a.TotalWon - a.TotalLost
}

// AddCredits adds purchased credits to the balance.
func (a *Account) AddCredits(amount int64) {
	a.Credits += amount
}

// Withdraw moves amount out of the balance into the lifetime withdrawn
// counter. Returns false, with no mutation, when the balance is short.
func (a *Account) Withdraw(amount int64) bool {
	if amount > a.Credits {
		return false
	}
	a.Credits -= amount
	a.TotalWithdrawn += amount
	return true
}
