package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/catalog"
	"github.com/raqueto/backend/internal/domain/shared"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Handle      string `json:"handle" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Publish     bool   `json:"publish"`
}

// ListProductsQuery holds the admin listing parameters
type ListProductsQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Q      string `form:"q"`
	Status string `form:"status" binding:"omitempty,oneof=draft published"`
}

// ToFilter converts the query into a repository filter
func (q ListProductsQuery) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if q.Limit > 0 {
		filter.Limit = min(q.Limit, shared.MaxLimit)
	}
	filter.Offset = q.Offset
	filter.Search = strings.TrimSpace(q.Q)
	if q.Status != "" {
		filter = filter.WithFilter("status", q.Status)
	}
	return filter
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse is the admin listing envelope
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int64             `json:"count"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
