package domain

// PokerRound holds the state of one simplified poker hand: two hole cards
// per side and five community cards. The showdown compares hole-card
// weight sums only; the community cards are table dressing, not part of
// the comparison.
type PokerRound struct {
	Username  string     `json:"username"`
	Bet       int64      `json:"bet"`
	Player    Hand       `json:"player"`
	House     Hand       `json:"house"`
	Community Hand       `json:"community"`
	State     RoundState `json:"state"`
}

// NewPokerRound deals 2 player, 2 house and 5 community cards. The house
// cards and the last two community cards stay hidden in views until the
// round resolves.
func NewPokerRound(username string, bet int64, src CardSource) *PokerRound {
	return &PokerRound{
		Username:  username,
		Bet:       bet,
		Player:    Hand{}.Draw(src, 2),
		House:     Hand{}.Draw(src, 2),
		Community: Hand{}.Draw(src, 5),
		State:     StateInRound,
	}
}

// Fold resolves the round immediately with no scoring; the bet is lost.
func (r *PokerRound) Fold() (*Settlement, error) {
	if r.State != StateInRound {
		return nil, ErrRoundOver
	}
	r.State = StateDone
	return &Settlement{Bet: r.Bet, Win: 0, Outcome: OutcomeFold}, nil
}

// Call reveals all hidden cards and resolves via showdown.
func (r *PokerRound) Call() (*Settlement, error) {
	if r.State != StateInRound {
		return nil, ErrRoundOver
	}
	return r.showdown(), nil
}

// Raise doubles the active bet, then resolves via showdown with the
// doubled stake.
func (r *PokerRound) Raise() (*Settlement, error) {
	if r.State != StateInRound {
		return nil, ErrRoundOver
	}
	r.Bet *= 2
	return r.showdown(), nil
}

func (r *PokerRound) showdown() *Settlement {
	r.State = StateDone
	playerSum := r.Player.WeightSum()
	houseSum := r.House.WeightSum()

	switch {
	case playerSum > houseSum:
		return &Settlement{Bet: r.Bet, Win: 2 * r.Bet, Outcome: OutcomeWin}
	case houseSum > playerSum:
		return &Settlement{Bet: r.Bet, Win: 0, Outcome: OutcomeLose}
	default:
		return &Settlement{Bet: r.Bet, Win: r.Bet, Outcome: OutcomeSplit}
	}
}
