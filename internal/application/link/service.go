// Package link manages the product-brand association.
package link

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	brandapp "github.com/raqueto/backend/internal/application/brand"
	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/catalog"
	"github.com/raqueto/backend/internal/domain/link"
	"github.com/raqueto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Messages returned by RemoveBrand
const (
	MessageNoBrandLinked = "No brand linked to this product"
	MessageBrandRemoved  = "Brand removed from product"
)

// ActiveBrandLookup resolves a storefront brand by slug
type ActiveBrandLookup interface {
	GetActiveBySlug(ctx context.Context, slug string) (*brand.Brand, error)
}

// SetBrandRequest links a product to a brand
type SetBrandRequest struct {
	BrandID string `json:"brand_id"`
}

// BrandProductsResponse lists the products of a storefront brand
type BrandProductsResponse struct {
	Brand      brandapp.BrandResponse `json:"brand"`
	ProductIDs []uuid.UUID            `json:"product_ids"`
	Count      int                    `json:"count"`
}

// ProductBrandService reads and changes which brand a product belongs to
type ProductBrandService struct {
	links    link.ProductBrandRepository
	brands   brand.Repository
	products catalog.ProductRepository
	lookup   ActiveBrandLookup
	logger   *zap.Logger
}

// NewProductBrandService creates a new ProductBrandService
func NewProductBrandService(
	links link.ProductBrandRepository,
	brands brand.Repository,
	products catalog.ProductRepository,
	lookup ActiveBrandLookup,
	logger *zap.Logger,
) *ProductBrandService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductBrandService{
		links:    links,
		brands:   brands,
		products: products,
		lookup:   lookup,
		logger:   logger,
	}
}

// GetBrand returns the product's brand, or nil when none is linked
func (s *ProductBrandService) GetBrand(ctx context.Context, productID uuid.UUID) (*brandapp.BrandResponse, error) {
	l, err := s.links.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	b, err := s.brands.FindByID(ctx, l.BrandID)
	if err != nil {
		// a link to a deleted brand reads as unlinked
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := brandapp.ToBrandResponse(b)
	return &resp, nil
}

// SetBrand replaces the product's brand link
func (s *ProductBrandService) SetBrand(ctx context.Context, productID uuid.UUID, req SetBrandRequest) (*brandapp.BrandResponse, error) {
	raw := strings.TrimSpace(req.BrandID)
	if raw == "" {
		return nil, shared.InvalidInput("brand_id is required")
	}
	brandID, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.InvalidInput("brand_id must be a valid UUID")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	b, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	if _, err := s.links.Replace(ctx, productID, brandID); err != nil {
		return nil, err
	}
	s.logger.Info("product linked to brand",
		zap.String("product_id", productID.String()),
		zap.String("brand_id", brandID.String()),
	)

	resp := brandapp.ToBrandResponse(b)
	return &resp, nil
}

// RemoveBrand dismisses the product's brand link and returns the message
// describing what happened.
func (s *ProductBrandService) RemoveBrand(ctx context.Context, productID uuid.UUID) (string, error) {
	removed, err := s.links.DetachByProduct(ctx, productID)
	if err != nil {
		return "", err
	}
	if !removed {
		return MessageNoBrandLinked, nil
	}
	return MessageBrandRemoved, nil
}

// BrandProducts returns the IDs of the products linked to an active brand
func (s *ProductBrandService) BrandProducts(ctx context.Context, slug string) (*BrandProductsResponse, error) {
	b, err := s.lookup.GetActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	ids, err := s.links.ProductIDsByBrand(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &BrandProductsResponse{
		Brand:      brandapp.ToBrandResponse(b),
		ProductIDs: ids,
		Count:      len(ids),
	}, nil
}
