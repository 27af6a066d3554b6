//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"qr-coupon-server/internal/authz"
	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/infra/identity"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/jwt"
	"qr-coupon-server/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAllEnforcer struct{ err error }

func (e denyAllEnforcer) Enforce(auth.Role, string, string) (bool, error) {
	return false, e.err
}

// overrideRoleResolver validates tokens normally but reports its own role
type overrideRoleResolver struct {
	*identity.Provider
	role auth.Role
}

func (r overrideRoleResolver) Role(*auth.Principal) auth.Role { return r.role }

type recordingEnforcer struct{ got []auth.Role }

func (e *recordingEnforcer) Enforce(role auth.Role, _, _ string) (bool, error) {
	e.got = append(e.got, role)
	return role == auth.RoleAdmin, nil
}

func setupAuthRouter(t *testing.T, enforcer middleware.PolicyEnforcer) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	jwtService := jwt.NewService(cfg.JWT.Secret)
	if enforcer == nil {
		svc, err := authz.NewDefaultService()
		require.NoError(t, err)
		enforcer = svc
	}
	m := middleware.NewAuthMiddleware(identity.NewProvider(jwtService), enforcer, cfg.JWT)

	echo := func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID.String(), "role": p.Role.String()})
	}

	r := gin.New()
	admin := r.Group("/api/admin", m.RequireAuth(), m.RequireRole())
	admin.GET("/overview", echo)
	admin.POST("/campaigns", echo)
	client := r.Group("/api/client", m.RequireAuth(), m.RequireRole())
	client.GET("/overview", echo)
	client.POST("/campaigns", echo)
	return r, jwtService
}

func issue(t *testing.T, svc *jwt.Service, role string, clientID *uuid.UUID) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	token, err := svc.GenerateToken(userID, role, clientID, time.Hour)
	require.NoError(t, err)
	return userID, token
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Run("トークンなしは401", func(t *testing.T) {
		r, _ := setupAuthRouter(t, nil)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, "")
		body := httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
		assert.Equal(t, "unauthorized", body.Code)
	})

	t.Run("改ざんされたトークンは401", func(t *testing.T) {
		r, _ := setupAuthRouter(t, nil)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, "not.a.jwt")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("別の鍵で署名されたトークンは401", func(t *testing.T) {
		r, _ := setupAuthRouter(t, nil)
		_, token := issue(t, jwt.NewService("another-secret"), "admin", nil)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, token)
		httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("期限切れトークンは401", func(t *testing.T) {
		r, svc := setupAuthRouter(t, nil)
		token, err := svc.GenerateToken(uuid.New(), "admin", nil, -time.Minute)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, token)
		httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("client_idのないクライアントトークンは401", func(t *testing.T) {
		r, svc := setupAuthRouter(t, nil)
		_, token := issue(t, svc, "client", nil)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/client/overview", nil, token)
		httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("クッキーのトークンも受け付ける", func(t *testing.T) {
		r, svc := setupAuthRouter(t, nil)
		userID, token := issue(t, svc, "admin", nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/admin/overview", nil)
		req.AddCookie(&http.Cookie{Name: config.NewTestConfig().JWT.CookieName, Value: token})
		rec := nethttptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID.String())
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	clientID := uuid.New()

	cases := []struct {
		name     string
		role     string
		clientID *uuid.UUID
		method   string
		path     string
		want     int
	}{
		{name: "adminは管理APIを利用できる", role: "admin", method: http.MethodGet, path: "/api/admin/overview", want: http.StatusOK},
		{name: "adminは書き込みもできる", role: "admin", method: http.MethodPost, path: "/api/admin/campaigns", want: http.StatusOK},
		{name: "clientは管理APIに入れない", role: "client", clientID: &clientID, method: http.MethodGet, path: "/api/admin/overview", want: http.StatusForbidden},
		{name: "clientは自分のダッシュボードを読める", role: "client", clientID: &clientID, method: http.MethodGet, path: "/api/client/overview", want: http.StatusOK},
		{name: "clientは書き込みできない", role: "client", clientID: &clientID, method: http.MethodPost, path: "/api/client/campaigns", want: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := setupAuthRouter(t, nil)
			userID, token := issue(t, svc, tc.role, tc.clientID)

			rec := httptest.PerformRequest(t, r, tc.method, tc.path, nil, token)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
			if tc.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), userID.String())
			} else {
				httptest.AssertErrorCode(t, rec, http.StatusForbidden, "forbidden")
			}
		})
	}

	t.Run("ポリシー評価の失敗は500", func(t *testing.T) {
		r, svc := setupAuthRouter(t, denyAllEnforcer{err: errors.New("model not loaded")})
		_, token := issue(t, svc, "admin", nil)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, token)
		httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, "system_error")
	})

	t.Run("認証なしでRequireRoleに到達したら401", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		svc, err := authz.NewDefaultService()
		require.NoError(t, err)
		m := middleware.NewAuthMiddleware(identity.NewProvider(jwt.NewService("x")), svc, config.JWTConfig{})

		r := gin.New()
		r.GET("/api/admin/overview", m.RequireRole(), func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, "")
		httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, "unauthorized")
	})
	t.Run("ロールはPrincipalResolverから取得する", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		cfg := config.NewTestConfig()
		jwtService := jwt.NewService(cfg.JWT.Secret)
		_, token := issue(t, jwtService, "client", &clientID)

		cases := []struct {
			name     string
			resolved auth.Role
			want     int
			wantSeen []auth.Role
		}{
			{name: "解決したロールで判定", resolved: auth.RoleAdmin, want: http.StatusOK, wantSeen: []auth.Role{auth.RoleAdmin}},
			{name: "ロール不明なら403", resolved: "", want: http.StatusForbidden, wantSeen: nil},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				enforcer := &recordingEnforcer{}
				resolver := overrideRoleResolver{Provider: identity.NewProvider(jwtService), role: tc.resolved}
				m := middleware.NewAuthMiddleware(resolver, enforcer, cfg.JWT)

				r := gin.New()
				r.GET("/api/admin/overview", m.RequireAuth(), m.RequireRole(), func(c *gin.Context) { c.Status(http.StatusOK) })

				rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/admin/overview", nil, token)
				assert.Equal(t, tc.want, rec.Code, rec.Body.String())
				assert.Equal(t, tc.wantSeen, enforcer.got)
				if tc.want == http.StatusForbidden {
					httptest.AssertErrorCode(t, rec, http.StatusForbidden, "forbidden")
				}
			})
		}
	})
}
