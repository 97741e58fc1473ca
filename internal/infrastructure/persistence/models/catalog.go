package models

import (
	"github.com/raqueto/backend/internal/domain/catalog"
	"github.com/raqueto/backend/internal/domain/shared"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	BaseModel
	Title       string                `gorm:"type:text;not null"`
	Handle      string                `gorm:"type:text;not null;index"`
	Description string                `gorm:"type:text"`
	Status      catalog.ProductStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "product"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Title:             m.Title,
		Handle:            m.Handle,
		Description:       m.Description,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Title = p.Title
	m.Handle = p.Handle
	m.Description = p.Description
	m.Status = p.Status
}
