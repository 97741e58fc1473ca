// Package link models the join tables that associate this service's entities
// with products and collections. A link row has its own lifecycle: it must be
// detached explicitly before either endpoint counts as unlinked.
package link

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/shared"
)

// ProductBrand links a product to its brand. A product has at most one live link.
type ProductBrand struct {
	shared.BaseEntity
	ProductID uuid.UUID
	BrandID   uuid.UUID
}

// NewProductBrand creates a product-brand link
func NewProductBrand(productID, brandID uuid.UUID) *ProductBrand {
	return &ProductBrand{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		BrandID:    brandID,
	}
}

// CollectionImage links a collection to one of its images
type CollectionImage struct {
	shared.BaseEntity
	CollectionID uuid.UUID
	ImageID      uuid.UUID
}

// NewCollectionImage creates a collection-image link
func NewCollectionImage(collectionID, imageID uuid.UUID) *CollectionImage {
	return &CollectionImage{
		BaseEntity:   shared.NewBaseEntity(),
		CollectionID: collectionID,
		ImageID:      imageID,
	}
}

// ProductBrandRepository persists product-brand links
type ProductBrandRepository interface {
	// FindByProduct returns the live link for the product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*ProductBrand, error)

	// ProductIDsByBrand returns the products linked to the brand
	ProductIDsByBrand(ctx context.Context, brandID uuid.UUID) ([]uuid.UUID, error)

	// Attach creates a link
	Attach(ctx context.Context, productID, brandID uuid.UUID) (*ProductBrand, error)

	// DetachByProduct dismisses the product's live link and reports whether one existed
	DetachByProduct(ctx context.Context, productID uuid.UUID) (bool, error)

	// Replace dismisses any live link for the product and attaches the brand,
	// atomically
	Replace(ctx context.Context, productID, brandID uuid.UUID) (*ProductBrand, error)
}

// CollectionImageRepository persists collection-image links
type CollectionImageRepository interface {
	// ImageIDsByCollection returns the linked image IDs, oldest link first
	ImageIDsByCollection(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error)

	// Attach creates a link
	Attach(ctx context.Context, collectionID, imageID uuid.UUID) (*CollectionImage, error)

	// DetachImage dismisses the image's live link and returns it, or nil if none
	DetachImage(ctx context.Context, imageID uuid.UUID) (*CollectionImage, error)
}
