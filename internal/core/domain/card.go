package domain

// Card is an immutable playing card. Weight is the blackjack value of the
// rank: face value for 2-10, 10 for J/Q/K, 11 for an ace.
type Card struct {
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	Weight int    `json:"weight"`
}

// Suits and Ranks span the 13x4 card space cards are drawn from.
var (
	Suits = []string{"♠", "♥", "♦", "♣"}
	Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// BlackjackTarget is the bust threshold for blackjack scoring.
const BlackjackTarget = 21

var rankWeights = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 10, "Q": 10, "K": 10, "A": 11,
}

// NewCard builds a card for the given rank and suit. Unknown ranks get
// weight 0 and never score.
func NewCard(rank, suit string) Card {
	return Card{Rank: rank, Suit: suit, Weight: rankWeights[rank]}
}

// IsAce reports whether the card is an ace.
func (c Card) IsAce() bool {
	return c.Rank == "A"
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

// CardSource produces independent random cards with replacement. There is
// no finite shoe: duplicate cards within a hand are possible.
type CardSource interface {
	Draw() Card
}

// Hand is an ordered sequence of cards held by one side for a round.
type Hand []Card

// Draw appends n cards from the source.
func (h Hand) Draw(src CardSource, n int) Hand {
	for i := 0; i < n; i++ {
		h = append(h, src.Draw())
	}
	return h
}

// Score returns the blackjack total of the hand. Aces count as 11 until
// the total exceeds 21, then drop to 1 one at a time (soft to hard).
func (h Hand) Score() int {
	score := 0
	aces := 0
	for _, c := range h {
		score += c.Weight
		if c.IsAce() {
			aces++
		}
	}
	for score > BlackjackTarget && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// WeightSum returns the raw sum of card weights with no ace adjustment.
// Poker showdowns compare hole cards on this value.
func (h Hand) WeightSum() int {
	sum := 0
	for _, c := range h {
		sum += c.Weight
	}
	return sum
}
