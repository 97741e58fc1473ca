package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	newsletterapp "github.com/raqueto/backend/internal/application/newsletter"
	"github.com/raqueto/backend/internal/domain/shared"
)

// Storefront newsletter messages
const (
	msgSubscribed     = "Successfully subscribed to newsletter!"
	msgUnsubscribed   = "Successfully unsubscribed from newsletter"
	msgInvalidEmail   = "Invalid email address"
	msgEmailNotInList = "Email not found in our newsletter list."
)

// NewsletterHandler serves the public subscribe endpoints and the admin list
type NewsletterHandler struct {
	BaseHandler
	newsletter *newsletterapp.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletter *newsletterapp.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

type subscribeResponse struct {
	Success      bool                               `json:"success"`
	Message      string                             `json:"message"`
	Subscription *newsletterapp.SubscriptionSummary `json:"subscription"`
}

type unsubscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type subscriptionEnvelope struct {
	Subscription *newsletterapp.SubscriptionResponse `json:"subscription"`
}

// Subscribe handles POST /store/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletterapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, msgInvalidEmail)
		return
	}
	client := newsletterapp.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	sub, err := h.newsletter.Subscribe(c.Request.Context(), req, client)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscribeResponse{Success: true, Message: msgSubscribed, Subscription: sub})
}

// Unsubscribe handles POST /store/newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req newsletterapp.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, msgInvalidEmail)
		return
	}
	if err := h.newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, msgEmailNotInList)
			return
		}
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, unsubscribeResponse{Success: true, Message: msgUnsubscribed})
}

// List handles GET /admin/newsletter
func (h *NewsletterHandler) List(c *gin.Context) {
	var query newsletterapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	resp, err := h.newsletter.List(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /admin/newsletter
func (h *NewsletterHandler) Create(c *gin.Context) {
	var req newsletterapp.AdminCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sub, err := h.newsletter.AdminCreate(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscriptionEnvelope{Subscription: sub})
}
