package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/catalog"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		events:      events,
		logger:      logger,
	}
}

// Create creates a new product and publishes product.created
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Title, req.Handle, req.Description)
	if err != nil {
		return nil, err
	}
	if req.Publish {
		if err := product.Publish(); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) (*ProductListResponse, error) {
	filter := query.ToFilter()

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return &ProductListResponse{Products: out, Count: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Delete soft-deletes a product and publishes product.deleted
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	telemetry.Annotate(ctx, telemetry.AttrProductID, id.String())
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.MarkDeleted()
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvents(ctx, product)
	return nil
}

// publishEvents hands the aggregate's pending events to the bus. Subscriber
// failures never fail the write that produced the events.
func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}
