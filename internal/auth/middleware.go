package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "authClaims"

// FromRequest extracts and verifies the Bearer token on the request.
// Returns (nil, nil) when no Authorization header is present; a malformed
// or invalid token is an error even on routes that allow anonymous access.
func FromRequest(tm *TokenManager, c *gin.Context) (*Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("invalid Authorization header format")
	}

	return tm.Parse(parts[1])
}

// SetClaims attaches verified claims to the request context
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsContextKey, claims)
}

// ClaimsFrom returns the verified claims for the request, or nil for an
// anonymous caller
func ClaimsFrom(c *gin.Context) *Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*Claims)
	return claims
}
