package catalog

import (
	"strings"
	"time"

	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/shared"
)

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

// Product is the sellable item that brands are linked to
type Product struct {
	shared.BaseAggregateRoot
	Title       string
	Handle      string
	Description string
	Status      ProductStatus
}

// NewProduct creates a draft product and records a ProductCreated event
func NewProduct(title, handle, description string) (*Product, error) {
	title = strings.TrimSpace(title)
	if err := validateProductTitle(title); err != nil {
		return nil, err
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		handle = brand.Slugify(title)
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Handle:            handle,
		Description:       description,
		Status:            ProductStatusDraft,
	}
	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// Publish makes the product visible in the storefront
func (p *Product) Publish() error {
	if p.Status == ProductStatusPublished {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Product is already published")
	}
	p.Status = ProductStatusPublished
	p.UpdatedAt = time.Now()
	return nil
}

// MarkDeleted records a ProductDeleted event; the repository performs the soft delete
func (p *Product) MarkDeleted() {
	now := time.Now()
	p.DeletedAt = &now
	p.AddDomainEvent(NewProductDeletedEvent(p))
}

func validateProductTitle(title string) error {
	if title == "" {
		return shared.InvalidInput("Product title cannot be empty")
	}
	if len(title) > 255 {
		return shared.InvalidInput("Product title cannot exceed 255 characters")
	}
	return nil
}
