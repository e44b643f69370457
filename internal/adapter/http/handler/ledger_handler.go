package handler

import (
	"card-casino/internal/adapter/http/dto"
	"card-casino/internal/core/ports"
	"card-casino/pkg/apperror"
	"card-casino/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler handles the credit ledger endpoints. These accept the
// username in the request body for compatibility with the legacy
// browser client.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// GameResult handles POST /game-result: the outcome of a round played
// in the browser. Reported wins are capped server side.
func (h *LedgerHandler) GameResult(c *gin.Context) {
	var req dto.GameResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	credits, err := h.ledgerSvc.ApplyGameResult(c.Request.Context(), req.Username, req.BetAmount, req.WinAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.GameResultResponse{Credits: credits})
}

// AddCredits handles POST /add-credits.
func (h *LedgerHandler) AddCredits(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	newBalance, err := h.ledgerSvc.AddCredits(c.Request.Context(), req.Username, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{NewBalance: newBalance})
}

// Withdraw handles POST /withdraw.
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	newBalance, err := h.ledgerSvc.Withdraw(c.Request.Context(), req.Username, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{NewBalance: newBalance})
}

// MyStats handles POST /my-stats.
func (h *LedgerHandler) MyStats(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	stats, err := h.ledgerSvc.GetStats(c.Request.Context(), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatsResponse{
		Credits:        stats.Credits,
		NetEarnings:    stats.NetEarnings,
		TotalWithdrawn: stats.TotalWithdrawn,
	})
}
