package models

import (
	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/collection"
)

// CollectionModel is the persistence model for product collections.
type CollectionModel struct {
	BaseModel
	Title  string `gorm:"type:text;not null"`
	Handle string `gorm:"type:text;not null;index"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "product_collection"
}

// ToDomain converts the persistence model to a domain Collection.
func (m *CollectionModel) ToDomain() *collection.Collection {
	return &collection.Collection{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		Handle:     m.Handle,
	}
}

// FromDomain populates the persistence model from a domain Collection.
func (m *CollectionModel) FromDomain(c *collection.Collection) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Title = c.Title
	m.Handle = c.Handle
}

// CollectionImageModel is the persistence model for collection images.
// At most one live thumbnail may exist per collection.
type CollectionImageModel struct {
	BaseModel
	URL          string               `gorm:"column:url;type:text;not null"`
	FileID       string               `gorm:"column:file_id;type:text;not null"`
	Type         collection.ImageType `gorm:"type:varchar(20);not null;uniqueIndex:idx_collection_image_thumbnail,priority:2,where:type = 'thumbnail' AND deleted_at IS NULL"`
	CollectionID uuid.UUID            `gorm:"column:collection_id;type:uuid;not null;index;uniqueIndex:idx_collection_image_thumbnail,priority:1,where:type = 'thumbnail' AND deleted_at IS NULL"`
}

// TableName returns the table name for GORM
func (CollectionImageModel) TableName() string {
	return "collection_image"
}

// ToDomain converts the persistence model to a domain Image.
func (m *CollectionImageModel) ToDomain() *collection.Image {
	return &collection.Image{
		BaseEntity:   m.BaseModel.ToDomain(),
		URL:          m.URL,
		FileID:       m.FileID,
		Type:         m.Type,
		CollectionID: m.CollectionID,
	}
}

// FromDomain populates the persistence model from a domain Image.
func (m *CollectionImageModel) FromDomain(img *collection.Image) {
	m.FromDomainBaseEntity(img.BaseEntity)
	m.URL = img.URL
	m.FileID = img.FileID
	m.Type = img.Type
	m.CollectionID = img.CollectionID
}
