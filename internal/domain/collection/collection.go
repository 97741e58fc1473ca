package collection

import (
	"strings"

	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/shared"
)

// Collection is a curated product group shown in the storefront
type Collection struct {
	shared.BaseEntity
	Title  string
	Handle string
}

// NewCollection creates a collection; the handle defaults to the slugified title
func NewCollection(title, handle string) (*Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.InvalidInput("Collection title is required")
	}
	if len(title) > 200 {
		return nil, shared.InvalidInput("Collection title cannot exceed 200 characters")
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		handle = brand.Slugify(title)
	}
	return &Collection{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Handle:     handle,
	}, nil
}
