// Package order sends order notifications.
package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/application/workflow"
	"github.com/raqueto/backend/internal/domain/order"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/metrics"
	"github.com/raqueto/backend/internal/infrastructure/notification"
	"github.com/raqueto/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SendConfirmationWorkflow is the workflow name
const SendConfirmationWorkflow = "send-order-confirmation"

// DefaultAdminEmail receives admin order notifications when none is configured
const DefaultAdminEmail = "hola@raqueto.shop"

// Notification is one email sent for an order
type Notification struct {
	To       string `json:"to"`
	Channel  string `json:"channel"`
	Template string `json:"template"`
}

// ConfirmationResponse is returned by the manual confirmation endpoint
type ConfirmationResponse struct {
	Success       bool           `json:"success"`
	Notifications []Notification `json:"notifications"`
}

type confirmation struct {
	order *order.Order
	sent  []Notification
}

// ConfirmationService sends order-placed emails to the customer and the shop
type ConfirmationService struct {
	orders     order.Repository
	sender     notification.Sender
	adminEmail string
	logger     *zap.Logger
}

// NewConfirmationService creates a new ConfirmationService
func NewConfirmationService(orders order.Repository, sender notification.Sender, adminEmail string, logger *zap.Logger) *ConfirmationService {
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfirmationService{orders: orders, sender: sender, adminEmail: adminEmail, logger: logger}
}

// Confirm runs the send-order-confirmation workflow for the order
func (s *ConfirmationService) Confirm(ctx context.Context, orderID uuid.UUID, extra ...workflow.Step) (*ConfirmationResponse, error) {
	telemetry.Annotate(ctx, telemetry.AttrOrderID, orderID.String())
	result, err := workflow.Result[*confirmation](ctx, s.workflow(extra...), orderID)
	if err != nil {
		return nil, err
	}
	return &ConfirmationResponse{Success: true, Notifications: result.sent}, nil
}

func (s *ConfirmationService) workflow(extra ...workflow.Step) *workflow.Workflow {
	load := workflow.Typed(
		"load-order",
		func(ctx context.Context, id uuid.UUID) (*confirmation, workflow.NoUndo, error) {
			o, err := s.orders.FindByID(ctx, id)
			if err != nil {
				return nil, workflow.NoUndo{}, err
			}
			return &confirmation{order: o}, workflow.NoUndo{}, nil
		},
		nil,
	)

	customer := workflow.Typed(
		"send-customer-notification",
		func(ctx context.Context, c *confirmation) (*confirmation, workflow.NoUndo, error) {
			if c.order.Email == "" {
				s.logger.Warn("order has no email, skipping customer notification",
					zap.String("order_id", c.order.ID.String()))
				return c, workflow.NoUndo{}, nil
			}
			return c, workflow.NoUndo{}, s.send(ctx, c, c.order.Email, notification.TemplateOrderPlaced)
		},
		nil,
	)

	admin := workflow.Typed(
		"send-admin-notification",
		func(ctx context.Context, c *confirmation) (*confirmation, workflow.NoUndo, error) {
			return c, workflow.NoUndo{}, s.send(ctx, c, s.adminEmail, notification.TemplateOrderPlacedAdmin)
		},
		nil,
	)

	return workflow.New(SendConfirmationWorkflow, s.logger, load, customer, admin).Append(extra...)
}

func (s *ConfirmationService) send(ctx context.Context, c *confirmation, to, template string) error {
	if s.sender == nil {
		return shared.NewDomainError(shared.ErrUpstreamFailed.Code, "Email delivery is not configured")
	}
	err := s.sender.Send(ctx, notification.Message{
		To:       to,
		Template: template,
		Data:     notification.NewOrderData(c.order),
	})
	metrics.RecordEmail(template, err)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.NewDomainError(shared.ErrUpstreamFailed.Code, "Failed to send "+template+" email"), err)
	}
	c.sent = append(c.sent, Notification{To: to, Channel: "email", Template: template})
	return nil
}

// OrderPlacedHandler runs the confirmation workflow for order.placed events
type OrderPlacedHandler struct {
	service *ConfirmationService
	logger  *zap.Logger
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(service *ConfirmationService, logger *zap.Logger) *OrderPlacedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderPlacedHandler{service: service, logger: logger}
}

// EventTypes returns the event types this handler processes
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle sends the confirmation emails for the placed order
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.PlacedEvent)
	if !ok {
		h.logger.Warn("unexpected event payload", zap.String("event_type", event.EventType()))
		return nil
	}

	resp, err := h.service.Confirm(ctx, placed.OrderID)
	if err != nil {
		return err
	}
	h.logger.Info("order confirmation sent",
		zap.String("order_id", placed.OrderID.String()),
		zap.Int("notifications", len(resp.Notifications)),
	)
	return nil
}

var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
