package brand

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/shared"
)

// Repository defines the interface for brand persistence
type Repository interface {
	// FindByID finds a non-deleted brand by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// FindBySlug returns the first non-deleted brand with the slug
	FindBySlug(ctx context.Context, slug string) (*Brand, error)

	// FindAll finds brands matching the filter (equality filters, search on name, limit/offset)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)

	// Count counts brands matching the filter, ignoring limit/offset
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindActive returns active brands ordered by sort order then name
	FindActive(ctx context.Context) ([]Brand, error)

	// ExistsBySlug checks whether a non-deleted brand uses the slug
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Create inserts a brand, honoring its ID. A soft-deleted row with the
	// same ID is revived in place.
	Create(ctx context.Context, brand *Brand) error

	// Save writes every field of the brand
	Save(ctx context.Context, brand *Brand) error

	// Delete soft-deletes a brand
	Delete(ctx context.Context, id uuid.UUID) error

	// Purge removes a brand row permanently
	Purge(ctx context.Context, id uuid.UUID) error
}
