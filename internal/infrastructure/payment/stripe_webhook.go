// Package payment verifies payment provider webhooks.
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

// ErrInvalidSignature is returned when the payload does not match its signature header
var ErrInvalidSignature = errors.New("webhook signature verification failed")

// Stripe event types this service reacts to
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
)

// WebhookEvent is the provider-neutral view of a verified webhook
type WebhookEvent struct {
	ID       string
	Type     string
	OrderID  string // from the payment intent's metadata.order_id, when present
	Amount   int64  // minor units
	Currency string
}

// StripeWebhookVerifier checks Stripe-Signature headers
type StripeWebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

// NewStripeWebhookVerifier creates a verifier for the endpoint's signing secret
func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: secret, tolerance: webhook.DefaultTolerance}
}

// Verify authenticates the raw payload and decodes the fields the service uses
func (v *StripeWebhookVerifier) Verify(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	if v.secret == "" {
		return nil, fmt.Errorf("%w: no webhook secret configured", ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if out.Type == EventPaymentIntentSucceeded && event.Data != nil {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment intent: %w", err)
		}
		out.OrderID = intent.Metadata["order_id"]
		out.Amount = intent.Amount
		out.Currency = string(intent.Currency)
	}
	return out, nil
}
