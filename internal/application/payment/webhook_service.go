package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/order"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// ErrInvalidSignature is returned for webhooks that fail verification
var ErrInvalidSignature = shared.InvalidInput("Invalid webhook signature")

// WebhookVerifier authenticates a raw webhook payload
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (*payment.WebhookEvent, error)
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// WebhookService turns captured payments into order.placed events
type WebhookService struct {
	verifier WebhookVerifier
	orders   order.Repository
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(verifier WebhookVerifier, orders order.Repository, events shared.EventPublisher, logger *zap.Logger) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{verifier: verifier, orders: orders, events: events, logger: logger}
}

// ProcessWebhook verifies and handles one provider webhook
func (s *WebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := s.verifier.Verify(payload, signature)
	if err != nil {
		s.logger.Warn("Failed to verify webhook signature", zap.Error(err))
		if errors.Is(err, payment.ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, err
	}

	s.logger.Info("Processing payment webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type))

	result := &WebhookResult{EventID: event.ID, EventType: event.Type}

	switch event.Type {
	case payment.EventPaymentIntentSucceeded:
		result.Processed, result.Message, err = s.handlePaymentSucceeded(ctx, event)
	default:
		result.Message = "Event type not handled"
	}
	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *WebhookService) handlePaymentSucceeded(ctx context.Context, event *payment.WebhookEvent) (bool, string, error) {
	if event.OrderID == "" {
		s.logger.Warn("Payment intent has no order_id metadata, skipping", zap.String("event_id", event.ID))
		return false, "No order_id in payment metadata", nil
	}
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		s.logger.Warn("Payment intent carries an invalid order_id", zap.String("order_id", event.OrderID))
		return false, "Invalid order_id in payment metadata", nil
	}

	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Payment received for unknown order", zap.String("order_id", event.OrderID))
			return false, "Order not found", nil
		}
		return false, "", err
	}

	if err := s.events.Publish(ctx, order.NewPlacedEvent(orderID)); err != nil {
		return false, "", err
	}
	return true, "", nil
}
