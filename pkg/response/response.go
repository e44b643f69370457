package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"card-casino/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the standard failure envelope: {success:false, message}.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response carrying v's fields alongside success:true.
// v must marshal to a JSON object.
func OK(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, envelope(v))
}

// Created sends a 201 response carrying v's fields alongside success:true.
func Created(c *gin.Context, v interface{}) {
	c.JSON(http.StatusCreated, envelope(v))
}

// Error sends a failure response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorResponse{
			Success:   false,
			Message:   appErr.Message,
			ErrorCode: appErr.Code,
			RequestID: getRequestID(c),
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success:   false,
		Message:   "Internal server error",
		ErrorCode: "SYS_000",
		RequestID: getRequestID(c),
	})
}

// envelope flattens v into a map and injects the success flag, so every
// payload keeps the legacy {success:true, ...} wire shape.
func envelope(v interface{}) map[string]interface{} {
	m := map[string]interface{}{}
	if v != nil {
		if b, err := json.Marshal(v); err == nil {
			_ = json.Unmarshal(b, &m)
		}
	}
	m["success"] = true
	return m
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
