package handler

import (
	"context"

	"card-casino/internal/adapter/http/dto"
	"card-casino/internal/adapter/http/middleware"
	"card-casino/internal/core/domain"
	"card-casino/internal/core/ports"
	"card-casino/pkg/apperror"
	"card-casino/pkg/response"

	"github.com/gin-gonic/gin"
)

// GameHandler handles the server-side play endpoints. The player
// comes from the session token, never from the request body.
type GameHandler struct {
	gameSvc ports.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameSvc ports.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// BlackjackDeal handles POST /api/blackjack/deal.
func (h *GameHandler) BlackjackDeal(c *gin.Context) {
	var req dto.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	round, err := h.gameSvc.BlackjackDeal(c.Request.Context(), middleware.Username(c), req.BetAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBlackjackRoundView(round, nil))
}

// BlackjackHit handles POST /api/blackjack/hit.
func (h *GameHandler) BlackjackHit(c *gin.Context) {
	round, resolution, err := h.gameSvc.BlackjackHit(c.Request.Context(), middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBlackjackRoundView(round, resolutionView(resolution)))
}

// BlackjackStand handles POST /api/blackjack/stand.
func (h *GameHandler) BlackjackStand(c *gin.Context) {
	round, resolution, err := h.gameSvc.BlackjackStand(c.Request.Context(), middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBlackjackRoundView(round, resolutionView(resolution)))
}

// PokerDeal handles POST /api/poker/deal.
func (h *GameHandler) PokerDeal(c *gin.Context) {
	var req dto.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	round, err := h.gameSvc.PokerDeal(c.Request.Context(), middleware.Username(c), req.BetAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewPokerRoundView(round, nil))
}

// PokerFold handles POST /api/poker/fold.
func (h *GameHandler) PokerFold(c *gin.Context) {
	h.pokerAction(c, h.gameSvc.PokerFold)
}

// PokerCall handles POST /api/poker/call.
func (h *GameHandler) PokerCall(c *gin.Context) {
	h.pokerAction(c, h.gameSvc.PokerCall)
}

// PokerRaise handles POST /api/poker/raise.
func (h *GameHandler) PokerRaise(c *gin.Context) {
	h.pokerAction(c, h.gameSvc.PokerRaise)
}

func (h *GameHandler) pokerAction(
	c *gin.Context,
	act func(ctx context.Context, username string) (*domain.PokerRound, *ports.RoundResolution, error),
) {
	round, resolution, err := act(c.Request.Context(), middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewPokerRoundView(round, resolutionView(resolution)))
}

func resolutionView(r *ports.RoundResolution) *dto.ResolutionView {
	if r == nil {
		return nil
	}
	return dto.NewResolutionView(string(r.Outcome), r.BetAmount, r.WinAmount, r.Credits)
}
