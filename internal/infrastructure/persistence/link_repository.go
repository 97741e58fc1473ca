package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/link"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductBrandRepository implements link.ProductBrandRepository using GORM
type GormProductBrandRepository struct {
	db *gorm.DB
}

// NewGormProductBrandRepository creates a new GormProductBrandRepository
func NewGormProductBrandRepository(db *gorm.DB) *GormProductBrandRepository {
	return &GormProductBrandRepository{db: db}
}

// FindByProduct returns the live link of the product
func (r *GormProductBrandRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*link.ProductBrand, error) {
	var model models.ProductBrandModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		return nil, notFoundOr(err, shared.NotFound("No brand linked to this product"))
	}
	return model.ToDomain(), nil
}

// ProductIDsByBrand returns the products linked to the brand, oldest link first
func (r *GormProductBrandRepository) ProductIDsByBrand(ctx context.Context, brandID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := r.db.WithContext(ctx).
		Model(&models.ProductBrandModel{}).
		Where("brand_id = ?", brandID).
		Order("created_at ASC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Attach links the product to the brand
func (r *GormProductBrandRepository) Attach(ctx context.Context, productID, brandID uuid.UUID) (*link.ProductBrand, error) {
	return attachProductBrand(r.db.WithContext(ctx), productID, brandID)
}

// DetachByProduct dismisses the product's live link
func (r *GormProductBrandRepository) DetachByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	return detachProductBrand(r.db.WithContext(ctx), productID)
}

// Replace dismisses the product's current link and attaches the brand in one transaction
func (r *GormProductBrandRepository) Replace(ctx context.Context, productID, brandID uuid.UUID) (*link.ProductBrand, error) {
	var attached *link.ProductBrand
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := detachProductBrand(tx, productID); err != nil {
			return err
		}
		l, err := attachProductBrand(tx, productID, brandID)
		if err != nil {
			return err
		}
		attached = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attached, nil
}

func attachProductBrand(db *gorm.DB, productID, brandID uuid.UUID) (*link.ProductBrand, error) {
	l := link.NewProductBrand(productID, brandID)
	model := &models.ProductBrandModel{}
	model.FromDomain(l)
	if err := db.Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, shared.AlreadyExists("Product already has a brand")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func detachProductBrand(db *gorm.DB, productID uuid.UUID) (bool, error) {
	result := db.Where("product_id = ?", productID).Delete(&models.ProductBrandModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GormCollectionImageLinkRepository implements link.CollectionImageRepository using GORM
type GormCollectionImageLinkRepository struct {
	db *gorm.DB
}

// NewGormCollectionImageLinkRepository creates a new GormCollectionImageLinkRepository
func NewGormCollectionImageLinkRepository(db *gorm.DB) *GormCollectionImageLinkRepository {
	return &GormCollectionImageLinkRepository{db: db}
}

// ImageIDsByCollection returns the linked image IDs, oldest link first
func (r *GormCollectionImageLinkRepository) ImageIDsByCollection(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := r.db.WithContext(ctx).
		Model(&models.CollectionImageLinkModel{}).
		Where("collection_id = ?", collectionID).
		Order("created_at ASC").
		Pluck("collection_image_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Attach links an image to a collection
func (r *GormCollectionImageLinkRepository) Attach(ctx context.Context, collectionID, imageID uuid.UUID) (*link.CollectionImage, error) {
	l := link.NewCollectionImage(collectionID, imageID)
	model := &models.CollectionImageLinkModel{}
	model.FromDomain(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// DetachImage dismisses the image's live link and returns it, or nil when unlinked
func (r *GormCollectionImageLinkRepository) DetachImage(ctx context.Context, imageID uuid.UUID) (*link.CollectionImage, error) {
	var model models.CollectionImageLinkModel
	err := r.db.WithContext(ctx).First(&model, "collection_image_id = ?", imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

var (
	_ link.ProductBrandRepository    = (*GormProductBrandRepository)(nil)
	_ link.CollectionImageRepository = (*GormCollectionImageLinkRepository)(nil)
)
