package handler

import (
	"path/filepath"

	"card-casino/internal/adapter/http/middleware"
	redisStore "card-casino/internal/adapter/storage/redis"
	"card-casino/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	GameSvc        ports.GameService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	StaticDir      string // "" = no static pages
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Static pages (the browser client) ---
	if deps.StaticDir != "" {
		pages := map[string]string{
			"/":            "index.html",
			"/login":       "login.html",
			"/register":    "register.html",
			"/dashboard":   "dashboard.html",
			"/poker":       "poker.html",
			"/account":     "account.html",
			"/buy-credits": "buy-credits.html",
			"/payment":     "payment.html",
			"/style.css":   "style.css",
		}
		for route, file := range pages {
			r.StaticFile(route, filepath.Join(deps.StaticDir, file))
		}
	}

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	r.POST("/register", rl("auth_register"), authHandler.Register)
	r.POST("/login", rl("auth_login"), authHandler.Login)

	// --- Legacy ledger routes (username in body, trusted client) ---
	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	r.POST("/game-result", ledgerHandler.GameResult)
	r.POST("/add-credits", ledgerHandler.AddCredits)
	r.POST("/withdraw", ledgerHandler.Withdraw)
	r.POST("/my-stats", ledgerHandler.MyStats)

	// --- JWT-authenticated routes (server-side rounds) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	gameHandler := NewGameHandler(deps.GameSvc)

	api := r.Group("/api", jwtAuth, rl("game"))

	blackjack := api.Group("/blackjack")
	{
		blackjack.POST("/deal", gameHandler.BlackjackDeal)
		blackjack.POST("/hit", gameHandler.BlackjackHit)
		blackjack.POST("/stand", gameHandler.BlackjackStand)
	}

	poker := api.Group("/poker")
	{
		poker.POST("/deal", gameHandler.PokerDeal)
		poker.POST("/fold", gameHandler.PokerFold)
		poker.POST("/call", gameHandler.PokerCall)
		poker.POST("/raise", gameHandler.PokerRaise)
	}

	return r
}
