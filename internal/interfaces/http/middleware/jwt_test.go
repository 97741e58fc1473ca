package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raqueto/backend/internal/infrastructure/auth"
	"github.com/raqueto/backend/internal/infrastructure/config"
	"github.com/raqueto/backend/internal/infrastructure/logger"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "admin-key"

func newJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		Issuer:                "raqueto-test",
	}, testAdminKey)
}

func adminRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	admin := router.Group("/admin", AdminAuth(cfg))
	admin.GET("/brands", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"subject": claims.Subject,
			"actor":   logger.Actor(c.Request.Context()),
		})
	})
	return router
}

func getWithToken(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/brands", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestAdminAuth(t *testing.T) {
	svc := newJWTService(15 * time.Minute)
	token, err := svc.ExchangeAdminKey(testAdminKey)
	require.NoError(t, err)

	t.Run("valid admin token", func(t *testing.T) {
		w := getWithToken(adminRouter(JWTMiddlewareConfig{JWTService: svc}), BearerPrefix+token.Token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":"admin","actor":"admin"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := getWithToken(adminRouter(JWTMiddlewareConfig{JWTService: svc}), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, errorCode(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := getWithToken(adminRouter(JWTMiddlewareConfig{JWTService: svc}), BearerPrefix+"not.a.jwt")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenInvalid, errorCode(t, w))
	})

	t.Run("expired token", func(t *testing.T) {
		short := newJWTService(time.Millisecond)
		expired, err := short.ExchangeAdminKey(testAdminKey)
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		w := getWithToken(adminRouter(JWTMiddlewareConfig{JWTService: short}), BearerPrefix+expired.Token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenExpired, errorCode(t, w))
	})

	t.Run("revoked token", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		claims, err := svc.Validate(token.Token)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

		w := getWithToken(adminRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist}), BearerPrefix+token.Token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, w))
	})

	t.Run("non-admin actor is forbidden", func(t *testing.T) {
		other, err := svc.Issue(auth.ActorType("customer"), "cus_01")
		require.NoError(t, err)

		w := getWithToken(adminRouter(JWTMiddlewareConfig{JWTService: svc}), BearerPrefix+other.Token)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer   ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(AuthHeaderKey, tt.header)

		token, ok := BearerToken(c)
		assert.Equal(t, tt.token, token, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}
