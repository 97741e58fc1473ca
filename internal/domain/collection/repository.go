package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/shared"
)

// Repository persists collections
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Collection, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageRepository persists collection images
type ImageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Image, error)

	// FindByIDs returns the live images among ids, oldest first
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Image, error)

	// Create inserts an image. A second live thumbnail for the same
	// collection yields ErrThumbnailExists.
	Create(ctx context.Context, img *Image) error

	// Delete soft-deletes an image
	Delete(ctx context.Context, id uuid.UUID) error

	// Restore clears the soft-delete marker
	Restore(ctx context.Context, id uuid.UUID) error

	// Purge removes an image row permanently
	Purge(ctx context.Context, id uuid.UUID) error
}
