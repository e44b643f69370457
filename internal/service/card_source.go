package service

import (
	"math/rand/v2"

	"card-casino/internal/core/domain"
)

// RandomCardSource deals cards uniformly from the full 52-card space,
// with replacement. Rounds never exhaust a deck, so duplicate cards
// within a hand are possible and accepted.
type RandomCardSource struct{}

// NewRandomCardSource creates a new card source backed by the
// process-global PRNG.
func NewRandomCardSource() *RandomCardSource {
	return &RandomCardSource{}
}

// Draw returns one card chosen uniformly at random.
func (s *RandomCardSource) Draw() domain.Card {
	rank := domain.Ranks[rand.IntN(len(domain.Ranks))]
	suit := domain.Suits[rand.IntN(len(domain.Suits))]
	return domain.NewCard(rank, suit)
}
