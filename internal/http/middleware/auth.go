// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the access guard for the product collection: every
// request to the API group must carry the configured secret in the
// X-API-Key header. The guard runs before any business logic; a missing or
// mismatched credential aborts the request with 401 and the standard error
// envelope. The welcome route and operational endpoints are mounted outside
// the guarded group and stay exempt.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderAPIKey is the request header carrying the caller's credential.
const HeaderAPIKey = "X-API-Key"

// AuthOptions configures APIKeyAuth.
type AuthOptions struct {
	// Header overrides the credential header name; defaults to HeaderAPIKey.
	Header string
	// Secret is the configured credential callers must present.
	Secret string
	// ExposeErrors includes code/detail in the error envelope. Keep false
	// in production.
	ExposeErrors bool
}

// APIKeyAuth returns a Gin middleware that authorizes requests by comparing
// the caller-supplied credential against the configured secret.
//
// The comparison is constant-time exact string equality. Absence of the
// header and a mismatched value are both unauthorized; the response body is
// identical for the two cases so the guard reveals nothing about why the
// credential was rejected.
func APIKeyAuth(opt AuthOptions) gin.HandlerFunc {
	header := opt.Header
	if header == "" {
		header = HeaderAPIKey
	}
	return func(c *gin.Context) {
		supplied := c.GetHeader(header)
		if supplied != "" && subtle.ConstantTimeCompare([]byte(supplied), []byte(opt.Secret)) == 1 {
			c.Next()
			return
		}

		detail := map[string]string{}
		if opt.ExposeErrors {
			detail["code"] = "unauthorized"
			detail["detail"] = "missing or invalid API key"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"message":    "unauthorized",
			"error":      detail,
		})
	}
}
