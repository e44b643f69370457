package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"card-casino/internal/core/domain"
	"card-casino/internal/core/ports"
	"card-casino/pkg/apperror"

	"github.com/rs/zerolog"
)

// Round store namespaces. One active round per game per player.
const (
	gameBlackjack = "blackjack"
	gamePoker     = "poker"
)

// GameServiceImpl implements ports.GameService. Rounds are dealt and
// resolved server side; the client only ever sees the cards it is
// allowed to see and never reports an outcome itself.
type GameServiceImpl struct {
	rounds     ports.RoundStore
	ledger     ports.LedgerService
	cards      domain.CardSource
	standScore int
	roundTTL   time.Duration
	logger     zerolog.Logger
}

// NewGameService creates a new GameServiceImpl. The dealer draws to
// standScore; abandoned rounds expire from the store after roundTTL.
func NewGameService(
	rounds ports.RoundStore,
	ledger ports.LedgerService,
	cards domain.CardSource,
	standScore int,
	roundTTL time.Duration,
	logger zerolog.Logger,
) *GameServiceImpl {
	return &GameServiceImpl{
		rounds:     rounds,
		ledger:     ledger,
		cards:      cards,
		standScore: standScore,
		roundTTL:   roundTTL,
		logger:     logger,
	}
}

// BlackjackDeal starts a blackjack round for the player.
func (s *GameServiceImpl) BlackjackDeal(ctx context.Context, username string, bet int64) (*domain.BlackjackRound, error) {
	if err := s.checkDeal(ctx, gameBlackjack, username, bet); err != nil {
		return nil, err
	}

	round := domain.NewBlackjackRound(username, bet, s.cards)
	if err := s.saveRound(ctx, gameBlackjack, username, round); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("game", gameBlackjack).
		Str("username", username).
		Int64("bet", bet).
		Msg("round dealt")

	return round, nil
}

// BlackjackHit draws one card for the player. The resolution is nil
// while the round continues; a bust settles the round immediately.
func (s *GameServiceImpl) BlackjackHit(ctx context.Context, username string) (*domain.BlackjackRound, *ports.RoundResolution, error) {
	round, err := s.loadBlackjack(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	settlement, err := round.Hit(s.cards)
	if err != nil {
		return nil, nil, apperror.ErrInvalidAction("hit")
	}

	if settlement == nil {
		if err := s.saveRound(ctx, gameBlackjack, username, round); err != nil {
			return nil, nil, err
		}
		return round, nil, nil
	}

	resolution, err := s.settle(ctx, gameBlackjack, username, settlement)
	if err != nil {
		return nil, nil, err
	}
	return round, resolution, nil
}

// BlackjackStand ends the player's turn, plays out the dealer hand
// and settles the round.
func (s *GameServiceImpl) BlackjackStand(ctx context.Context, username string) (*domain.BlackjackRound, *ports.RoundResolution, error) {
	round, err := s.loadBlackjack(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	settlement, err := round.Stand(s.cards, s.standScore)
	if err != nil {
		return nil, nil, apperror.ErrInvalidAction("stand")
	}

	resolution, err := s.settle(ctx, gameBlackjack, username, settlement)
	if err != nil {
		return nil, nil, err
	}
	return round, resolution, nil
}

// PokerDeal starts a poker round for the player.
func (s *GameServiceImpl) PokerDeal(ctx context.Context, username string, bet int64) (*domain.PokerRound, error) {
	if err := s.checkDeal(ctx, gamePoker, username, bet); err != nil {
		return nil, err
	}

	round := domain.NewPokerRound(username, bet, s.cards)
	if err := s.saveRound(ctx, gamePoker, username, round); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("game", gamePoker).
		Str("username", username).
		Int64("bet", bet).
		Msg("round dealt")

	return round, nil
}

// PokerFold forfeits the round; the bet is lost.
func (s *GameServiceImpl) PokerFold(ctx context.Context, username string) (*domain.PokerRound, *ports.RoundResolution, error) {
	return s.pokerAction(ctx, username, "fold", (*domain.PokerRound).Fold)
}

// PokerCall goes to showdown at the current bet.
func (s *GameServiceImpl) PokerCall(ctx context.Context, username string) (*domain.PokerRound, *ports.RoundResolution, error) {
	return s.pokerAction(ctx, username, "call", (*domain.PokerRound).Call)
}

// PokerRaise doubles the bet, then goes to showdown.
func (s *GameServiceImpl) PokerRaise(ctx context.Context, username string) (*domain.PokerRound, *ports.RoundResolution, error) {
	return s.pokerAction(ctx, username, "raise", (*domain.PokerRound).Raise)
}

func (s *GameServiceImpl) pokerAction(
	ctx context.Context,
	username, action string,
	act func(*domain.PokerRound) (*domain.Settlement, error),
) (*domain.PokerRound, *ports.RoundResolution, error) {
	raw, err := s.getRound(ctx, gamePoker, username)
	if err != nil {
		return nil, nil, err
	}

	var round domain.PokerRound
	if err := json.Unmarshal(raw, &round); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("decode poker round: %w", err))
	}

	settlement, err := act(&round)
	if err != nil {
		return nil, nil, apperror.ErrInvalidAction(action)
	}

	resolution, err := s.settle(ctx, gamePoker, username, settlement)
	if err != nil {
		return nil, nil, err
	}
	return &round, resolution, nil
}

// checkDeal rejects a new round when the bet is bad, exceeds the
// player's balance, or a round is already in flight.
func (s *GameServiceImpl) checkDeal(ctx context.Context, game, username string, bet int64) error {
	if bet <= 0 {
		return apperror.ErrInvalidAmount()
	}

	stats, err := s.ledger.GetStats(ctx, username)
	if err != nil {
		return err
	}
	if bet > stats.Credits {
		return apperror.ErrBetExceedsBalance()
	}

	existing, err := s.rounds.Get(ctx, game, username)
	if err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("check active round: %w", err))
	}
	if existing != nil {
		return apperror.ErrRoundInProgress()
	}

	return nil
}

func (s *GameServiceImpl) loadBlackjack(ctx context.Context, username string) (*domain.BlackjackRound, error) {
	raw, err := s.getRound(ctx, gameBlackjack, username)
	if err != nil {
		return nil, err
	}

	var round domain.BlackjackRound
	if err := json.Unmarshal(raw, &round); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("decode blackjack round: %w", err))
	}
	return &round, nil
}

func (s *GameServiceImpl) getRound(ctx context.Context, game, username string) ([]byte, error) {
	raw, err := s.rounds.Get(ctx, game, username)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("load round: %w", err))
	}
	if raw == nil {
		return nil, apperror.ErrNoActiveRound()
	}
	return raw, nil
}

func (s *GameServiceImpl) saveRound(ctx context.Context, game, username string, round any) error {
	raw, err := json.Marshal(round)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode round: %w", err))
	}
	if err := s.rounds.Put(ctx, game, username, raw, s.roundTTL); err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("store round: %w", err))
	}
	return nil
}

// settle applies the finished round to the ledger and drops it from
// the store. A push settles as bet == win.
func (s *GameServiceImpl) settle(ctx context.Context, game, username string, settlement *domain.Settlement) (*ports.RoundResolution, error) {
	credits, err := s.ledger.ApplyGameResult(ctx, username, settlement.Bet, settlement.Win)
	if err != nil {
		// The round stays stored so a transient ledger failure can
		// be retried; the TTL reaps it otherwise.
		return nil, err
	}

	if err := s.rounds.Delete(ctx, game, username); err != nil {
		s.logger.Warn().
			Err(err).
			Str("game", game).
			Str("username", username).
			Msg("failed to clear settled round, expiry will collect it")
	}

	s.logger.Info().
		Str("game", game).
		Str("username", username).
		Str("outcome", string(settlement.Outcome)).
		Int64("bet", settlement.Bet).
		Int64("win", settlement.Win).
		Msg("round settled")

	return &ports.RoundResolution{
		Outcome:   settlement.Outcome,
		BetAmount: settlement.Bet,
		WinAmount: settlement.Win,
		Credits:   credits,
	}, nil
}
