package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrUsernameTaken() *AppError {
	return New("AUTH_001", "User already exists. Try a different username.", http.StatusBadRequest)
}

func ErrUserNotFound() *AppError {
	return New("AUTH_002", "User not found", http.StatusBadRequest)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_003", "Invalid credentials", http.StatusBadRequest)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_004", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Ledger (LED) ----

func ErrAccountNotFound() *AppError {
	return New("LED_001", "Account not found", http.StatusNotFound)
}

func ErrInsufficientFunds() *AppError {
	return New("LED_002", "Insufficient funds", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_003", "Invalid amount", http.StatusBadRequest)
}

func ErrPayoutLimitExceeded() *AppError {
	return New("LED_004", "Reported win exceeds the payout limit for this bet", http.StatusBadRequest)
}

// ---- Game play (GAME) ----

func ErrBetExceedsBalance() *AppError {
	return New("GAME_001", "Bet exceeds current balance", http.StatusBadRequest)
}

func ErrRoundInProgress() *AppError {
	return New("GAME_002", "A round is already in progress", http.StatusConflict)
}

func ErrNoActiveRound() *AppError {
	return New("GAME_003", "No active round", http.StatusNotFound)
}

func ErrInvalidAction(action string) *AppError {
	return New("GAME_004", fmt.Sprintf("Action %q is not valid for the current round", action), http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// ErrStorageUnavailable marks a store connectivity failure. The service
// degrades rather than aborting; callers retry once connectivity returns.
func ErrStorageUnavailable(err error) *AppError {
	return Wrap("SYS_001", "Account store unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_002 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a LED_003-style validation error.
func Validation(message string) *AppError {
	return New("LED_003", message, http.StatusBadRequest)
}
