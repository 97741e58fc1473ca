package brand

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/application/workflow"
	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// sportScanPageSize is the page size used when ListBySport walks the table
const sportScanPageSize = shared.MaxLimit

// BrandService handles brand administration and storefront lookups
type BrandService struct {
	repo   brand.Repository
	cache  brand.ListCache
	logger *zap.Logger

	createWF *workflow.Workflow
	updateWF *workflow.Workflow
	deleteWF *workflow.Workflow
}

// NewBrandService creates a new BrandService. cache may be nil, in which case
// the storefront list is always read from the repository.
func NewBrandService(repo brand.Repository, cache brand.ListCache, logger *zap.Logger) *BrandService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrandService{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		createWF: NewCreateWorkflow(repo, logger),
		updateWF: NewUpdateWorkflow(repo, logger),
		deleteWF: NewDeleteWorkflow(repo, logger),
	}
}

// Create runs the create-brand workflow. Extra steps run after the brand
// is persisted and receive the created *brand.Brand.
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest, extra ...workflow.Step) (*BrandResponse, error) {
	b, err := workflow.Result[*brand.Brand](ctx, s.createWF.Append(extra...), req.toInput())
	s.invalidate(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(b)
	return &resp, nil
}

// Update runs the update-brand workflow
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest, extra ...workflow.Step) (*BrandResponse, error) {
	telemetry.Annotate(ctx, telemetry.AttrBrandID, id.String())
	b, err := workflow.Result[*brand.Brand](ctx, s.updateWF.Append(extra...), UpdateInput{ID: id, Patch: req.toPatch()})
	s.invalidate(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(b)
	return &resp, nil
}

// Delete runs the delete-brand workflow
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID, extra ...workflow.Step) error {
	telemetry.Annotate(ctx, telemetry.AttrBrandID, id.String())
	_, _, err := s.deleteWF.Append(extra...).Run(ctx, id)
	s.invalidate(ctx)
	return err
}

// GetByID returns a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(b)
	return &resp, nil
}

// List returns a page of brands for the admin listing
func (s *BrandService) List(ctx context.Context, query ListBrandsQuery) (*BrandListResponse, error) {
	filter := query.ToFilter()

	brands, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &BrandListResponse{
		Brands: ToBrandResponses(brands),
		Count:  count,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// GetActiveBySlug returns the storefront brand with the slug. Inactive
// brands are reported as not found.
func (s *BrandService) GetActiveBySlug(ctx context.Context, slug string) (*brand.Brand, error) {
	notFound := shared.NotFound(fmt.Sprintf("Brand with slug %q not found", slug))

	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if !b.IsActive {
		return nil, notFound
	}
	return b, nil
}

// ListActive returns the storefront brand list, optionally narrowed to a
// sport. The unfiltered list is served cache-aside.
func (s *BrandService) ListActive(ctx context.Context, sport string) (*StoreBrandListResponse, error) {
	brands, err := s.activeBrands(ctx)
	if err != nil {
		return nil, err
	}
	if sport != "" {
		brands = filterBySport(brands, sport)
	}
	return &StoreBrandListResponse{
		Brands: ToBrandResponses(brands),
		Count:  len(brands),
	}, nil
}

// ListBySport walks every brand and keeps those tagged with the sport
func (s *BrandService) ListBySport(ctx context.Context, sport string) ([]brand.Brand, error) {
	var all []brand.Brand
	filter := shared.DefaultFilter()
	filter.Limit = sportScanPageSize
	filter.OrderBy = "order"
	filter.OrderDir = "asc"

	for {
		page, err := s.repo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < filter.Limit {
			break
		}
		filter.Offset += len(page)
	}
	return filterBySport(all, sport), nil
}

// Seed creates every brand whose slug is not taken yet and returns the
// number created.
func (s *BrandService) Seed(ctx context.Context, catalog []brand.CreateInput) (int, error) {
	created := 0
	for _, in := range catalog {
		slug := in.Slug
		if slug == "" {
			slug = brand.Slugify(in.Name)
		}
		exists, err := s.repo.ExistsBySlug(ctx, slug)
		if err != nil {
			return created, err
		}
		if exists {
			s.logger.Info("brand already exists, skipping", zap.String("slug", slug))
			continue
		}
		if _, err := workflow.Result[*brand.Brand](ctx, s.createWF, in); err != nil {
			return created, fmt.Errorf("seed brand %s: %w", slug, err)
		}
		created++
		s.logger.Info("brand seeded", zap.String("slug", slug))
	}
	if created > 0 {
		s.invalidate(ctx)
	}
	return created, nil
}

func (s *BrandService) activeBrands(ctx context.Context) ([]brand.Brand, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("brand cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	brands, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, brands); err != nil {
			s.logger.Warn("brand cache write failed", zap.Error(err))
		}
	}
	return brands, nil
}

// invalidate drops the cached storefront list; failures only log
func (s *BrandService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("brand cache invalidation failed", zap.Error(err))
	}
}

func filterBySport(brands []brand.Brand, sport string) []brand.Brand {
	out := make([]brand.Brand, 0, len(brands))
	for i := range brands {
		if brands[i].HasSport(sport) {
			out = append(out, brands[i])
		}
	}
	return out
}
