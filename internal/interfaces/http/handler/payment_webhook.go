package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	paymentapp "github.com/raqueto/backend/internal/application/payment"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
)

// Stripe webhooks are small; anything larger is rejected before verification.
const maxWebhookPayloadSize = 65536

// PaymentWebhookHandler receives payment provider webhooks. It is not
// behind admin auth; the signature is the credential.
type PaymentWebhookHandler struct {
	BaseHandler
	webhooks *paymentapp.WebhookService
}

// NewPaymentWebhookHandler creates a new PaymentWebhookHandler
func NewPaymentWebhookHandler(webhooks *paymentapp.WebhookService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{webhooks: webhooks}
}

// HandleStripe handles POST /hooks/payment/stripe
func (h *PaymentWebhookHandler) HandleStripe(c *gin.Context) {
	// the raw body is needed for signature verification
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		h.Error(c, dto.ErrCodeRequestTooLarge, "Payload too large")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.BadRequest(c, "Missing Stripe-Signature header")
		return
	}

	result, err := h.webhooks.ProcessWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		// a bad signature is a 400; storage failures answer 500 so the provider retries
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
