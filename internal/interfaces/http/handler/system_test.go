package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentapp "github.com/raqueto/backend/internal/application/payment"
	"github.com/raqueto/backend/internal/infrastructure/auth"
	"github.com/raqueto/backend/internal/infrastructure/config"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
	"github.com/raqueto/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		ping       error
		wantStatus int
		wantDB     string
	}{
		{"database reachable", nil, http.StatusOK, "ok"},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pingerFunc(func() error { return tt.ping }))
			r := gin.New()
			r.GET("/health", h.Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantDB, decode[HealthResponse](t, w).Database)
		})
	}
}

func TestAuthHandler(t *testing.T) {
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Hour,
	}, "admin-key")
	blacklist := auth.NewInMemoryTokenBlacklist()
	h := NewAuthHandler(jwtSvc, blacklist)

	r := gin.New()
	r.POST("/auth/admin/token", h.IssueAdminToken)
	r.DELETE("/auth/admin/token", middleware.AdminAuth(middleware.JWTMiddlewareConfig{
		JWTService:     jwtSvc,
		TokenBlacklist: blacklist,
	}), h.RevokeAdminToken)

	issue := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/admin/token", nil)
		req.Header.Set(middleware.AdminKeyHeader, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := issue("wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid admin API key", errorOf(t, w).Message)

	w = issue("admin-key")
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[auth.AccessToken](t, w)
	require.NotEmpty(t, token.Token)

	revoke := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/auth/admin/token", nil)
		req.Header.Set("Authorization", "Bearer "+token.Token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	require.Equal(t, http.StatusOK, revoke().Code)

	claims, err := jwtSvc.Validate(token.Token)
	require.NoError(t, err)
	revoked, err := blacklist.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	w = revoke()
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, errorOf(t, w).Code)
}

func postWebhook(f *apiFixture, payload, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/hooks/payment/stripe", strings.NewReader(payload))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestPaymentWebhookHandler(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("missing signature", func(t *testing.T) {
		w := postWebhook(f, `{}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing Stripe-Signature header", errorOf(t, w).Message)
	})

	t.Run("bad signature", func(t *testing.T) {
		w := postWebhook(f, `{"id":"evt_1"}`, "t=1,v1=deadbeef")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid webhook signature", errorOf(t, w).Message)
	})

	t.Run("payload too large", func(t *testing.T) {
		w := postWebhook(f, strings.Repeat("x", maxWebhookPayloadSize+1), "t=1,v1=deadbeef")
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("unknown order is acknowledged", func(t *testing.T) {
		payload := fmt.Sprintf(`{"id":"evt_2","object":"event","type":"payment_intent.succeeded",
			"data":{"object":{"id":"pi_2","object":"payment_intent","metadata":{"order_id":%q}}}}`, uuid.NewString())
		sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   []byte(payload),
			Secret:    testWebhookSecret,
			Timestamp: time.Now(),
		})

		w := postWebhook(f, string(sp.Payload), sp.Header)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		result := decode[paymentapp.WebhookResult](t, w)
		assert.Equal(t, "evt_2", result.EventID)
		assert.False(t, result.Processed)
	})
}

func TestOrderHandler_UnknownOrder(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/admin/orders/"+uuid.NewString()+"/confirmation", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, errorOf(t, w).Code)
}
