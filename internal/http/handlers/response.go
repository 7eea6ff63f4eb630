// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: the error envelope, consistent JSON serialization, and helpers
// for common HTTP patterns. Every failure in the API (handler, middleware,
// or panic recovery) funnels through this one translation point; no
// endpoint constructs its own error body.
//
// Error envelope:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "message": "product not found",
//	  "error": {"code": "not_found", "detail": "product not found"}
//	}
//
// The "error" object carries diagnostic detail only in a non-production
// configuration; in production it is always the empty object, so internal
// detail never leaks to callers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-catalog-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// RequestID correlates server logs and client errors.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Message is a human-readable description, safe to show to users.
	Message string `json:"message" example:"product not found"`
	// Error carries code/detail outside production, {} otherwise.
	Error map[string]string `json:"error"`
}

// NewErrorBody builds the envelope without writing it. Middleware that
// aborts requests before reaching a handler (auth, rate limiting, panic
// recovery) uses it so every failure shares one shape.
//
// When expose is false the error object is empty: production responses
// carry the message only.
func NewErrorBody(requestID, code, msg string, expose bool) ErrorResponse {
	detail := map[string]string{}
	if expose {
		detail["code"] = code
		detail["detail"] = msg
	}
	return ErrorResponse{RequestID: requestID, Message: msg, Error: detail}
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string, expose bool) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := NewErrorBody(reqID, code, msg, expose)

	// Log 5xx (server-side) with the request-scoped logger.
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(). External packages (e.g. router
// fallbacks) call it to return consistent envelopes without depending on
// unexported helpers.
func Fail(c *gin.Context, status int, code, msg string, expose bool) {
	fail(c, status, code, msg, expose)
}

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
