package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raqueto/backend/internal/infrastructure/auth"
	"github.com/raqueto/backend/internal/infrastructure/logger"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
	"github.com/raqueto/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AuthHandler issues and revokes admin access tokens
type AuthHandler struct {
	BaseHandler
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwt *auth.JWTService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{jwt: jwt, blacklist: blacklist}
}

// IssueAdminToken exchanges the X-Admin-Key header for a bearer token
func (h *AuthHandler) IssueAdminToken(c *gin.Context) {
	token, err := h.jwt.ExchangeAdminKey(c.GetHeader(middleware.AdminKeyHeader))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidAPIKey) {
			logger.GetGinLogger(c).Warn("Rejected admin key", zap.String("client_ip", c.ClientIP()))
			h.Unauthorized(c, "Invalid admin API key")
			return
		}
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// RevokeAdminToken blacklists the caller's token until it would have expired
func (h *AuthHandler) RevokeAdminToken(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, claims.RemainingTTL(time.Now())); err != nil {
		logger.GetGinLogger(c).Error("Failed to revoke token", zap.String("jti", claims.ID), zap.Error(err))
		h.InternalError(c, "Failed to revoke token")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Token revoked"})
}
