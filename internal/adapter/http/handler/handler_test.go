package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"card-casino/internal/core/domain"
	"card-casino/internal/core/ports"
	"card-casino/internal/core/ports/mocks"
	"card-casino/pkg/apperror"
	"card-casino/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerMocks struct {
	auth   *mocks.MockAuthService
	ledger *mocks.MockLedgerService
	game   *mocks.MockGameService
	token  *mocks.MockTokenService
}

func setupRouter(t *testing.T) (*gin.Engine, routerMocks) {
	ctrl := gomock.NewController(t)
	m := routerMocks{
		auth:   mocks.NewMockAuthService(ctrl),
		ledger: mocks.NewMockLedgerService(ctrl),
		game:   mocks.NewMockGameService(ctrl),
		token:  mocks.NewMockTokenService(ctrl),
	}

	r := SetupRouter(RouterDeps{
		AuthSvc:   m.auth,
		LedgerSvc: m.ledger,
		GameSvc:   m.game,
		TokenSvc:  m.token,
		Logger:    logger.New("error", false),
	})
	return r, m
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// --- Auth ---

func TestRegister_Success(t *testing.T) {
	r, m := setupRouter(t)

	expiry := time.Now().Add(time.Hour)
	m.auth.EXPECT().Register(gomock.Any(), "alice", "password123").Return(&ports.Session{
		Username: "alice",
		Credits:  1000,
		Token:    "signed-token",
		Expiry:   expiry,
	}, nil)

	w, resp := postJSON(t, r, "/register", gin.H{"username": "alice", "password": "password123"}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, float64(1000), resp["credits"])
	assert.Equal(t, "signed-token", resp["token"])
}

func TestRegister_UsernameTaken(t *testing.T) {
	r, m := setupRouter(t)

	m.auth.EXPECT().Register(gomock.Any(), "alice", "password123").
		Return(nil, apperror.ErrUsernameTaken())

	w, resp := postJSON(t, r, "/register", gin.H{"username": "alice", "password": "password123"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "User already exists. Try a different username.", resp["message"])
}

func TestRegister_ValidationError(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name    string
		payload gin.H
	}{
		{"empty body", gin.H{}},
		{"short username", gin.H{"username": "al", "password": "password123"}},
		{"short password", gin.H{"username": "alice", "password": "short"}},
		{"unsafe username", gin.H{"username": "a;b c", "password": "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postJSON(t, r, "/register", tt.payload, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestLogin_Success(t *testing.T) {
	r, m := setupRouter(t)

	m.auth.EXPECT().Authenticate(gomock.Any(), "alice", "hunter2-long").Return(&ports.Session{
		Username: "alice",
		Credits:  750,
		Token:    "signed-token",
		Expiry:   time.Now().Add(time.Hour),
	}, nil)

	w, resp := postJSON(t, r, "/login", gin.H{"username": "alice", "password": "hunter2-long"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(750), resp["credits"])
}

func TestLogin_WrongPassword(t *testing.T) {
	r, m := setupRouter(t)

	m.auth.EXPECT().Authenticate(gomock.Any(), "alice", "wrongpassword").
		Return(nil, apperror.ErrInvalidCredentials())

	w, resp := postJSON(t, r, "/login", gin.H{"username": "alice", "password": "wrongpassword"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

// --- Ledger ---

func TestGameResult_Success(t *testing.T) {
	r, m := setupRouter(t)

	m.ledger.EXPECT().ApplyGameResult(gomock.Any(), "alice", int64(100), int64(200)).
		Return(int64(1100), nil)

	w, resp := postJSON(t, r, "/game-result", gin.H{
		"username":  "alice",
		"betAmount": 100,
		"winAmount": 200,
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1100), resp["credits"])
}

func TestGameResult_PayoutCap(t *testing.T) {
	r, m := setupRouter(t)

	m.ledger.EXPECT().ApplyGameResult(gomock.Any(), "alice", int64(100), int64(500)).
		Return(int64(0), apperror.ErrPayoutLimitExceeded())

	w, resp := postJSON(t, r, "/game-result", gin.H{
		"username":  "alice",
		"betAmount": 100,
		"winAmount": 500,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "LED_004", resp["error_code"])
}

func TestAddCredits_Success(t *testing.T) {
	r, m := setupRouter(t)

	m.ledger.EXPECT().AddCredits(gomock.Any(), "alice", int64(500)).Return(int64(1500), nil)

	w, resp := postJSON(t, r, "/add-credits", gin.H{"username": "alice", "amount": 500}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1500), resp["newBalance"])
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	r, m := setupRouter(t)

	m.ledger.EXPECT().Withdraw(gomock.Any(), "alice", int64(5000)).
		Return(int64(0), apperror.ErrInsufficientFunds())

	w, resp := postJSON(t, r, "/withdraw", gin.H{"username": "alice", "amount": 5000}, nil)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestMyStats_Success(t *testing.T) {
	r, m := setupRouter(t)

	m.ledger.EXPECT().GetStats(gomock.Any(), "alice").Return(&ports.Stats{
		Credits:        1100,
		NetEarnings:    100,
		TotalWithdrawn: 50,
	}, nil)

	w, resp := postJSON(t, r, "/my-stats", gin.H{"username": "alice"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1100), resp["credits"])
	assert.Equal(t, float64(100), resp["netEarnings"])
	assert.Equal(t, float64(50), resp["totalWithdrawn"])
}

func TestMyStats_UnknownAccount(t *testing.T) {
	r, m := setupRouter(t)

	m.ledger.EXPECT().GetStats(gomock.Any(), "ghost").
		Return(nil, apperror.ErrAccountNotFound())

	w, resp := postJSON(t, r, "/my-stats", gin.H{"username": "ghost"}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}

// --- Game (JWT-authenticated) ---

func authHeaders(m routerMocks) map[string]string {
	m.token.EXPECT().Validate("session-token").
		Return(&ports.TokenClaims{Username: "alice"}, nil)
	return map[string]string{"Authorization": "Bearer session-token"}
}

func TestBlackjackDeal_Success(t *testing.T) {
	r, m := setupRouter(t)

	round := &domain.BlackjackRound{
		Username: "alice",
		Bet:      100,
		Player: domain.Hand{
			domain.NewCard("10", "♠"),
			domain.NewCard("7", "♥"),
		},
		Dealer: domain.Hand{
			domain.NewCard("9", "♦"),
			domain.NewCard("K", "♣"),
		},
		State: domain.StatePlayerTurn,
	}
	m.game.EXPECT().BlackjackDeal(gomock.Any(), "alice", int64(100)).Return(round, nil)

	w, resp := postJSON(t, r, "/api/blackjack/deal", gin.H{"betAmount": 100}, authHeaders(m))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(17), resp["playerScore"])

	// first dealer card is the hole card and stays hidden while the
	// round is live; the upcard is visible
	dealer := resp["dealer"].([]any)
	require.Len(t, dealer, 2)
	hole := dealer[0].(map[string]any)
	assert.Equal(t, "?", hole["rank"])
	up := dealer[1].(map[string]any)
	assert.Equal(t, "K", up["rank"])
}

func TestBlackjackDeal_RequiresToken(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := postJSON(t, r, "/api/blackjack/deal", gin.H{"betAmount": 100}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestBlackjackStand_ResolvesRound(t *testing.T) {
	r, m := setupRouter(t)

	round := &domain.BlackjackRound{
		Username: "alice",
		Bet:      100,
		Player: domain.Hand{
			domain.NewCard("10", "♠"),
			domain.NewCard("9", "♥"),
		},
		Dealer: domain.Hand{
			domain.NewCard("10", "♦"),
			domain.NewCard("6", "♣"),
			domain.NewCard("K", "♠"),
		},
		State: domain.StateDone,
	}
	resolution := &ports.RoundResolution{
		Outcome:   domain.OutcomeWin,
		BetAmount: 100,
		WinAmount: 200,
		Credits:   1100,
	}
	m.game.EXPECT().BlackjackStand(gomock.Any(), "alice").Return(round, resolution, nil)

	w, resp := postJSON(t, r, "/api/blackjack/stand", gin.H{}, authHeaders(m))

	assert.Equal(t, http.StatusOK, w.Code)
	res := resp["resolution"].(map[string]any)
	assert.Equal(t, "win", res["outcome"])
	assert.Equal(t, float64(200), res["winAmount"])
	assert.Equal(t, float64(1100), res["credits"])

	// all dealer cards visible once done
	dealer := resp["dealer"].([]any)
	assert.Len(t, dealer, 3)
}

func TestPokerDeal_HidesHouseAndRiver(t *testing.T) {
	r, m := setupRouter(t)

	round := &domain.PokerRound{
		Username: "alice",
		Bet:      200,
		Player: domain.Hand{
			domain.NewCard("A", "♠"),
			domain.NewCard("K", "♥"),
		},
		House: domain.Hand{
			domain.NewCard("2", "♦"),
			domain.NewCard("3", "♣"),
		},
		Community: domain.Hand{
			domain.NewCard("4", "♠"),
			domain.NewCard("5", "♠"),
			domain.NewCard("6", "♠"),
			domain.NewCard("7", "♠"),
			domain.NewCard("8", "♠"),
		},
		State: domain.StateInRound,
	}
	m.game.EXPECT().PokerDeal(gomock.Any(), "alice", int64(200)).Return(round, nil)

	w, resp := postJSON(t, r, "/api/poker/deal", gin.H{"betAmount": 200}, authHeaders(m))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, resp["house"])

	community := resp["community"].([]any)
	require.Len(t, community, 5)
	assert.Equal(t, "?", community[3].(map[string]any)["rank"])
	assert.Equal(t, "?", community[4].(map[string]any)["rank"])
}

func TestPokerCall_NoActiveRound(t *testing.T) {
	r, m := setupRouter(t)

	m.game.EXPECT().PokerCall(gomock.Any(), "alice").
		Return(nil, nil, apperror.ErrNoActiveRound())

	w, resp := postJSON(t, r, "/api/poker/call", gin.H{}, authHeaders(m))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}
