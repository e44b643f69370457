package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewAccount(t *testing.T) {
	a := NewAccount("alice", "$argon2id$hash", 1000)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, int64(1000), a.Credits)
	assert.Zero(t, a.TotalWon)
	assert.Zero(t, a.TotalLost)
	assert.Zero(t, a.NetEarnings)
	assert.Zero(t, a.TotalWithdrawn)
}

func TestAccount_ApplyGameResult(t *testing.T) {
	a := NewAccount("alice", "h", 1000)

	a.ApplyGameResult(100, 200)

	assert.Equal(t, int64(1100), a.Credits)
	assert.Equal(t, int64(200), a.TotalWon)
	assert.Equal(t, int64(100), a.TotalLost)
	assert.Equal(t, a.TotalWon-a.TotalLost, a.NetEarnings)
}

func TestAccount_ApplyGameResult_NotIdempotent(t *testing.T) {
	// Each call is a distinct economic event: applying the same result
	// twice must double the effect.
	a := NewAccount("alice", "h", 1000)

	a.ApplyGameResult(50, 100)
	a.ApplyGameResult(50, 100)

	assert.Equal(t, int64(1100), a.Credits)
	assert.Equal(t, int64(200), a.TotalWon)
	assert.Equal(t, int64(100), a.TotalLost)
	assert.Equal(t, int64(100), a.NetEarnings)
}

func TestAccount_ApplyGameResult_NetEarningsInvariant(t *testing.T) {
	a := NewAccount("alice", "h", 1000)

	results := [][2]int64{{100, 0}, {100, 200}, {50, 50}, {0, 0}, {30, 60}}
	for _, r := range results {
		a.ApplyGameResult(r[0], r[1])
		assert.Equal(t, a.TotalWon-a.TotalLost, a.NetEarnings)
	}
}

func TestAccount_Withdraw(t *testing.T) {
	a := NewAccount("alice", "h", 1000)

	ok := a.Withdraw(400)
	assert.True(t, ok)
	assert.Equal(t, int64(600), a.Credits)
	assert.Equal(t, int64(400), a.TotalWithdrawn)
}

func TestAccount_Withdraw_Insufficient_NoMutation(t *testing.T) {
	a := NewAccount("alice", "h", 100)
	before := *a

	ok := a.Withdraw(101)

	assert.False(t, ok)
	assert.Equal(t, before, *a)
}

func TestAccount_AddCredits(t *testing.T) {
	a := NewAccount("alice", "h", 0)
	a.AddCredits(250)
	assert.Equal(t, int64(250), a.Credits)
	assert.Zero(t, a.TotalWon, "purchases are not winnings")
}
