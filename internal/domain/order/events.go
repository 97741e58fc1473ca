package order

import (
	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/shared"
)

// PlacedEvent is published once payment for an order has been captured
type PlacedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
}

// NewPlacedEvent creates a new PlacedEvent
func NewPlacedEvent(orderID uuid.UUID) *PlacedEvent {
	return &PlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "order", orderID),
		OrderID:         orderID,
	}
}
