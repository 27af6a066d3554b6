package cookie

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const DefaultAccessTokenCookieName = "access_token"

// GetAccessToken reads the identity provider session cookie, falling back to a bearer header
func GetAccessToken(c *gin.Context, cookieName string) string {
	if cookieName == "" {
		cookieName = DefaultAccessTokenCookieName
	}
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
