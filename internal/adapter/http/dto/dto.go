package dto

import "card-casino/internal/core/domain"

// RegisterRequest is the request body for player registration and login.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for player login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is the response body for successful registration or login.
type SessionResponse struct {
	Username string `json:"username"`
	Credits  int64  `json:"credits"`
	Token    string `json:"token"`
	Expiry   int64  `json:"expiry"` // Unix timestamp
}

// GameResultRequest is the self-reported outcome of a client-side round.
type GameResultRequest struct {
	Username  string `json:"username" binding:"required"`
	BetAmount int64  `json:"betAmount" binding:"required,gt=0"`
	WinAmount int64  `json:"winAmount" binding:"gte=0"`
}

// AmountRequest is the request body for add-credits and withdraw.
type AmountRequest struct {
	Username string `json:"username" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// StatsRequest is the request body for the account stats lookup.
type StatsRequest struct {
	Username string `json:"username" binding:"required"`
}

// BalanceResponse reports the credit balance after add-credits and
// withdraw.
type BalanceResponse struct {
	NewBalance int64 `json:"newBalance"`
}

// GameResultResponse reports the credit balance after a reported game
// result. The legacy client reads this key, not newBalance.
type GameResultResponse struct {
	Credits int64 `json:"credits"`
}

// StatsResponse is the account snapshot for the dashboard.
type StatsResponse struct {
	Credits        int64 `json:"credits"`
	NetEarnings    int64 `json:"netEarnings"`
	TotalWithdrawn int64 `json:"totalWithdrawn"`
}

// BetRequest is the request body for dealing a server-side round.
type BetRequest struct {
	BetAmount int64 `json:"betAmount" binding:"required,gt=0"`
}

// ResolutionView reports a settled round.
type ResolutionView struct {
	Outcome   string `json:"outcome"`
	BetAmount int64  `json:"betAmount"`
	WinAmount int64  `json:"winAmount"`
	Credits   int64  `json:"credits"`
}

// BlackjackRoundView is the player-visible state of a blackjack round.
// The dealer's hole card stays hidden until the round resolves.
type BlackjackRoundView struct {
	Bet         int64           `json:"bet"`
	Player      []domain.Card   `json:"player"`
	PlayerScore int             `json:"playerScore"`
	Dealer      []domain.Card   `json:"dealer"`
	DealerScore *int            `json:"dealerScore,omitempty"`
	State       string          `json:"state"`
	Resolution  *ResolutionView `json:"resolution,omitempty"`
}

// PokerRoundView is the player-visible state of a poker round. The
// house hand and the last two community cards stay hidden until the
// round resolves.
type PokerRoundView struct {
	Bet        int64           `json:"bet"`
	Player     []domain.Card   `json:"player"`
	House      []domain.Card   `json:"house,omitempty"`
	Community  []domain.Card   `json:"community"`
	State      string          `json:"state"`
	Resolution *ResolutionView `json:"resolution,omitempty"`
}

// hiddenCard renders as a face-down card in every view.
var hiddenCard = domain.Card{Rank: "?", Suit: "?"}

// NewBlackjackRoundView converts a round to its player-visible shape.
func NewBlackjackRoundView(r *domain.BlackjackRound, res *ResolutionView) BlackjackRoundView {
	view := BlackjackRoundView{
		Bet:         r.Bet,
		Player:      r.Player,
		PlayerScore: r.Player.Score(),
		State:       string(r.State),
		Resolution:  res,
	}

	if r.State == domain.StateDone {
		view.Dealer = r.Dealer
		score := r.Dealer.Score()
		view.DealerScore = &score
		return view
	}

	// The first dealer card is the hole card: face down until the
	// round resolves, with the rest of the hand shown.
	view.Dealer = append(domain.Hand{hiddenCard}, r.Dealer[1:]...)
	return view
}

// NewPokerRoundView converts a round to its player-visible shape.
func NewPokerRoundView(r *domain.PokerRound, res *ResolutionView) PokerRoundView {
	view := PokerRoundView{
		Bet:        r.Bet,
		Player:     r.Player,
		State:      string(r.State),
		Resolution: res,
	}

	if r.State == domain.StateDone {
		view.House = r.House
		view.Community = r.Community
		return view
	}

	shown := len(r.Community) - 2
	if shown < 0 {
		shown = 0
	}
	view.Community = append([]domain.Card{}, r.Community[:shown]...)
	for i := shown; i < len(r.Community); i++ {
		view.Community = append(view.Community, hiddenCard)
	}
	return view
}

// NewResolutionView converts a settled round for the response body.
func NewResolutionView(outcome string, bet, win, credits int64) *ResolutionView {
	return &ResolutionView{
		Outcome:   outcome,
		BetAmount: bet,
		WinAmount: win,
		Credits:   credits,
	}
}
