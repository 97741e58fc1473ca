package models

import (
	"github.com/raqueto/backend/internal/domain/brand"
)

// BrandModel is the persistence model for the Brand domain entity.
type BrandModel struct {
	BaseModel
	Name        string         `gorm:"type:text;not null"`
	Slug        string         `gorm:"type:text;not null;index:idx_brand_slug"`
	Description *string        `gorm:"type:text"`
	LogoURL     *string        `gorm:"column:logo_url;type:text"`
	WebsiteURL  *string        `gorm:"column:website_url;type:text"`
	Order       *int           `gorm:"column:order;type:integer"`
	IsActive    bool           `gorm:"column:is_active;not null"`
	Sports      []string       `gorm:"type:jsonb;serializer:json"`
	Country     *string        `gorm:"type:text"`
	Metadata    map[string]any `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brand"
}

// ToDomain converts the persistence model to a domain Brand entity.
func (m *BrandModel) ToDomain() *brand.Brand {
	return &brand.Brand{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		LogoURL:     m.LogoURL,
		WebsiteURL:  m.WebsiteURL,
		Order:       m.Order,
		IsActive:    m.IsActive,
		Sports:      m.Sports,
		Country:     m.Country,
		Metadata:    m.Metadata,
	}
}

// FromDomain populates the persistence model from a domain Brand entity.
func (m *BrandModel) FromDomain(b *brand.Brand) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Slug = b.Slug
	m.Description = b.Description
	m.LogoURL = b.LogoURL
	m.WebsiteURL = b.WebsiteURL
	m.Order = b.Order
	m.IsActive = b.IsActive
	m.Sports = b.Sports
	m.Country = b.Country
	m.Metadata = b.Metadata
}

// BrandModelFromDomain creates a new persistence model from a domain Brand entity.
func BrandModelFromDomain(b *brand.Brand) *BrandModel {
	m := &BrandModel{}
	m.FromDomain(b)
	return m
}
