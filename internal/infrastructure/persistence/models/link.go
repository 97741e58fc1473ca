package models

import (
	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/link"
)

// ProductBrandModel is the join row between a product and its brand.
type ProductBrandModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_brand_product,where:deleted_at IS NULL"`
	BrandID   uuid.UUID `gorm:"column:brand_id;type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProductBrandModel) TableName() string {
	return "product_brand"
}

// ToDomain converts the persistence model to a domain link.
func (m *ProductBrandModel) ToDomain() *link.ProductBrand {
	return &link.ProductBrand{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		BrandID:    m.BrandID,
	}
}

// FromDomain populates the persistence model from a domain link.
func (m *ProductBrandModel) FromDomain(l *link.ProductBrand) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ProductID = l.ProductID
	m.BrandID = l.BrandID
}

// CollectionImageLinkModel is the join row between a collection and an image.
type CollectionImageLinkModel struct {
	BaseModel
	CollectionID uuid.UUID `gorm:"column:collection_id;type:uuid;not null;index"`
	ImageID      uuid.UUID `gorm:"column:collection_image_id;type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (CollectionImageLinkModel) TableName() string {
	return "collection_collection_image"
}

// ToDomain converts the persistence model to a domain link.
func (m *CollectionImageLinkModel) ToDomain() *link.CollectionImage {
	return &link.CollectionImage{
		BaseEntity:   m.BaseModel.ToDomain(),
		CollectionID: m.CollectionID,
		ImageID:      m.ImageID,
	}
}

// FromDomain populates the persistence model from a domain link.
func (m *CollectionImageLinkModel) FromDomain(l *link.CollectionImage) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.CollectionID = l.CollectionID
	m.ImageID = l.ImageID
}
