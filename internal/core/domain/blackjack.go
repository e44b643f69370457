package domain

import "errors"

// RoundState marks where an active round is in its lifecycle. Resolved
// rounds are deleted from the round store rather than kept in a terminal
// state.
type RoundState string

const (
	StatePlayerTurn RoundState = "PLAYER_TURN" // blackjack: waiting on hit/stand
	StateInRound    RoundState = "IN_ROUND"    // poker: waiting on fold/call/raise
	StateDone       RoundState = "DONE"
)

// Outcome classifies how a round resolved.
type Outcome string

const (
	OutcomeWin   Outcome = "win"
	OutcomeLose  Outcome = "lose"
	OutcomeBust  Outcome = "bust"
	OutcomePush  Outcome = "push"
	OutcomeFold  Outcome = "fold"
	OutcomeSplit Outcome = "split"
)

// Settlement is the (bet, win) pair a resolved round reports to the
// ledger, plus the outcome label shown to the player.
type Settlement struct {
	Bet     int64   `json:"bet"`
	Win     int64   `json:"win"`
	Outcome Outcome `json:"outcome"`
}

// ErrRoundOver is returned when an action reaches an already-resolved round.
var ErrRoundOver = errors.New("round already resolved")

// BlackjackRound holds the full per-round state for one blackjack hand.
// The round object is the only round state there is: nothing lives at
// package scope.
type BlackjackRound struct {
	Username string     `json:"username"`
	Bet      int64      `json:"bet"`
	Player   Hand       `json:"player"`
	Dealer   Hand       `json:"dealer"`
	State    RoundState `json:"state"`
}

// NewBlackjackRound deals two cards each to player and dealer and enters
// the player's turn. The dealer's first card stays hidden in views until
// the round resolves.
func NewBlackjackRound(username string, bet int64, src CardSource) *BlackjackRound {
	return &BlackjackRound{
		Username: username,
		Bet:      bet,
		Player:   Hand{}.Draw(src, 2),
		Dealer:   Hand{}.Draw(src, 2),
		State:    StatePlayerTurn,
	}
}

// Hit draws one card into the player's hand. A bust resolves the round
// immediately with win 0; otherwise the settlement is nil and the player
// keeps the turn.
func (r *BlackjackRound) Hit(src CardSource) (*Settlement, error) {
	if r.State != StatePlayerTurn {
		return nil, ErrRoundOver
	}
	r.Player = r.Player.Draw(src, 1)
	if r.Player.Score() > BlackjackTarget {
		r.State = StateDone
		return &Settlement{Bet: r.Bet, Win: 0, Outcome: OutcomeBust}, nil
	}
	return nil, nil
}

// Stand runs the dealer and resolves the round. The dealer draws while
// under standScore (dealer stands on 17 under house rules), then scores
// are compared: a dealer bust or higher player score pays 2x the bet, a
// tie pushes the stake back, anything else loses it.
func (r *BlackjackRound) Stand(src CardSource, standScore int) (*Settlement, error) {
	if r.State != StatePlayerTurn {
		return nil, ErrRoundOver
	}
	for r.Dealer.Score() < standScore {
		r.Dealer = r.Dealer.Draw(src, 1)
	}
	r.State = StateDone

	playerScore := r.Player.Score()
	dealerScore := r.Dealer.Score()

	switch {
	case dealerScore > BlackjackTarget:
		return &Settlement{Bet: r.Bet, Win: 2 * r.Bet, Outcome: OutcomeWin}, nil
	case playerScore > dealerScore:
		return &Settlement{Bet: r.Bet, Win: 2 * r.Bet, Outcome: OutcomeWin}, nil
	case playerScore < dealerScore:
		return &Settlement{Bet: r.Bet, Win: 0, Outcome: OutcomeLose}, nil
	default:
		return &Settlement{Bet: r.Bet, Win: r.Bet, Outcome: OutcomePush}, nil
	}
}
