package brand

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/shared"
)

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name        string         `json:"name" binding:"required,min=1,max=200"`
	Slug        string         `json:"slug" binding:"omitempty,max=200"`
	Description *string        `json:"description"`
	LogoURL     *string        `json:"logo_url"`
	WebsiteURL  *string        `json:"website_url" binding:"omitempty,url"`
	Order       *int           `json:"order" binding:"omitempty,min=0"`
	IsActive    *bool          `json:"is_active"`
	Sports      []string       `json:"sports"`
	Country     *string        `json:"country"`
	Metadata    map[string]any `json:"metadata"`
}

// UpdateBrandRequest represents a partial brand update
type UpdateBrandRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=1,max=200"`
	Slug        *string        `json:"slug" binding:"omitempty,max=200"`
	Description *string        `json:"description"`
	LogoURL     *string        `json:"logo_url"`
	WebsiteURL  *string        `json:"website_url" binding:"omitempty,url"`
	Order       *int           `json:"order" binding:"omitempty,min=0"`
	IsActive    *bool          `json:"is_active"`
	Sports      []string       `json:"sports"`
	Country     *string        `json:"country"`
	Metadata    map[string]any `json:"metadata"`
}

func (r CreateBrandRequest) toInput() brand.CreateInput {
	return brand.CreateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		LogoURL:     r.LogoURL,
		WebsiteURL:  r.WebsiteURL,
		Order:       r.Order,
		IsActive:    r.IsActive,
		Sports:      r.Sports,
		Country:     r.Country,
		Metadata:    r.Metadata,
	}
}

func (r UpdateBrandRequest) toPatch() brand.Patch {
	return brand.Patch{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		LogoURL:     r.LogoURL,
		WebsiteURL:  r.WebsiteURL,
		Order:       r.Order,
		IsActive:    r.IsActive,
		Sports:      r.Sports,
		Country:     r.Country,
		Metadata:    r.Metadata,
	}
}

// ListBrandsQuery holds the admin listing parameters
type ListBrandsQuery struct {
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
	Q        string `form:"q"`
	IsActive *bool  `form:"is_active"`
	Order    string `form:"order"`
}

var listSortFields = map[string]bool{
	"order":      true,
	"name":       true,
	"created_at": true,
}

// ToFilter converts the query into a repository filter. A leading "-" on
// the order field sorts descending; unknown fields fall back to order.
func (q ListBrandsQuery) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	if filter.Limit > shared.MaxLimit {
		filter.Limit = shared.MaxLimit
	}
	filter.Offset = q.Offset
	filter.Search = strings.TrimSpace(q.Q)

	filter.OrderBy = "order"
	filter.OrderDir = "asc"
	field := strings.TrimSpace(q.Order)
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
		filter.OrderDir = "desc"
	}
	if listSortFields[field] {
		filter.OrderBy = field
	}

	if q.IsActive != nil {
		filter = filter.WithFilter("is_active", *q.IsActive)
	}
	return filter
}

// BrandResponse is the JSON shape of a brand
type BrandResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description *string        `json:"description"`
	LogoURL     *string        `json:"logo_url"`
	WebsiteURL  *string        `json:"website_url"`
	Order       int            `json:"order"`
	IsActive    bool           `json:"is_active"`
	Sports      []string       `json:"sports"`
	Country     *string        `json:"country"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BrandListResponse is the admin listing envelope
type BrandListResponse struct {
	Brands []BrandResponse `json:"brands"`
	Count  int64           `json:"count"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// StoreBrandListResponse is the storefront listing envelope
type StoreBrandListResponse struct {
	Brands []BrandResponse `json:"brands"`
	Count  int             `json:"count"`
}

// ToBrandResponse converts a domain brand to its response shape
func ToBrandResponse(b *brand.Brand) BrandResponse {
	sports := b.Sports
	if sports == nil {
		sports = []string{}
	}
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		WebsiteURL:  b.WebsiteURL,
		Order:       b.SortOrder(),
		IsActive:    b.IsActive,
		Sports:      sports,
		Country:     b.Country,
		Metadata:    b.Metadata,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBrandResponses converts a slice of brands
func ToBrandResponses(brands []brand.Brand) []BrandResponse {
	out := make([]BrandResponse, 0, len(brands))
	for i := range brands {
		out = append(out, ToBrandResponse(&brands[i]))
	}
	return out
}
