package middleware

import (
	"log/slog"
	"net/http"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/handler/httperr"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
)

const ctxPrincipalKey = "principal"

type PrincipalResolver interface {
	CurrentUser(token string) (*auth.Principal, error)
	Role(principal *auth.Principal) auth.Role
}

type PolicyEnforcer interface {
	Enforce(role auth.Role, obj, act string) (bool, error)
}

type AuthMiddleware struct {
	identity   PrincipalResolver
	enforcer   PolicyEnforcer
	cookieName string
}

func NewAuthMiddleware(identity PrincipalResolver, enforcer PolicyEnforcer, cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{
		identity:   identity,
		enforcer:   enforcer,
		cookieName: cfg.CookieName,
	}
}

// RequireAuth resolves the dashboard principal from the session cookie or a bearer token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c, m.cookieName)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, auth.ErrUnauthorized, "Access token required", "unauthorized", nil)
			return
		}

		principal, err := m.identity.CurrentUser(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", "unauthorized", nil)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

// RequireRole must run after RequireAuth; the policy decides by role, path and method
func (m *AuthMiddleware) RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, auth.ErrUnauthorized, "Unauthorized", "unauthorized", nil)
			return
		}

		role := m.identity.Role(principal)
		if role == "" {
			httperr.AbortWithError(c, http.StatusForbidden, auth.ErrForbidden, "Insufficient permissions", "forbidden", nil)
			return
		}

		allowed, err := m.enforcer.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			slog.Error("authorization check failed", "error", err.Error(), "path", c.Request.URL.Path)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", "system_error", nil)
			return
		}
		if !allowed {
			httperr.AbortWithError(c, http.StatusForbidden, auth.ErrForbidden, "Insufficient permissions", "forbidden", nil)
			return
		}

		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok && p != nil
}

// SetPrincipal is used by tests and by routes that authenticate by other means
func SetPrincipal(c *gin.Context, p *auth.Principal) {
	c.Set(ctxPrincipalKey, p)
}
