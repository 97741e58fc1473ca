package newsletter

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows a subscription listing
type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
}

// Repository defines the interface for subscription persistence
type Repository interface {
	// FindByID finds a subscription by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindByEmail finds the non-deleted subscription for a normalized email
	FindByEmail(ctx context.Context, email string) (*Subscription, error)

	// List returns subscriptions newest first and the total matching count
	List(ctx context.Context, filter ListFilter) ([]Subscription, int64, error)

	// Create inserts a subscription. A duplicate email yields shared.ErrAlreadyExists.
	Create(ctx context.Context, sub *Subscription) error

	// Save writes every field of the subscription
	Save(ctx context.Context, sub *Subscription) error
}
