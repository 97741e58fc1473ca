package catalog

import (
	"context"

	"github.com/raqueto/backend/internal/domain/catalog"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/metrics"
	"github.com/raqueto/backend/internal/infrastructure/storefront"
	"go.uber.org/zap"
)

// StorefrontRevalidator drops cached storefront pages by tag
type StorefrontRevalidator interface {
	Enabled() bool
	Revalidate(ctx context.Context, tags ...string) error
}

// RevalidationHandler asks the storefront to refresh its product pages
// whenever a product is created or deleted.
type RevalidationHandler struct {
	storefront StorefrontRevalidator
	logger     *zap.Logger
}

// NewRevalidationHandler creates a new handler for product lifecycle events
func NewRevalidationHandler(client StorefrontRevalidator, logger *zap.Logger) *RevalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevalidationHandler{storefront: client, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *RevalidationHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductCreated, catalog.EventTypeProductDeleted}
}

// Handle triggers the revalidation. Failures are logged and never returned,
// so a storefront outage cannot fail the product write.
func (h *RevalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("product_id", event.AggregateID().String()),
	}

	if h.storefront == nil || !h.storefront.Enabled() {
		h.logger.Warn("STOREFRONT_URL not set, skipping storefront revalidation", fields...)
		metrics.RecordRevalidation(metrics.OutcomeSkipped)
		return nil
	}

	if err := h.storefront.Revalidate(ctx, storefront.TagProducts); err != nil {
		h.logger.Error("storefront revalidation failed", append(fields, zap.Error(err))...)
		metrics.RecordRevalidation(metrics.OutcomeFailure)
		return nil
	}

	h.logger.Info("storefront revalidated", append(fields, zap.String("tags", storefront.TagProducts))...)
	metrics.RecordRevalidation(metrics.OutcomeSuccess)
	return nil
}
