package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/brand"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errBrandNotFound is returned for lookups that miss
var errBrandNotFound = shared.NotFound("Brand not found")

// GormBrandRepository implements brand.Repository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*brand.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, errBrandNotFound)
	}
	return model.ToDomain(), nil
}

// FindBySlug returns the oldest brand using the slug
func (r *GormBrandRepository) FindBySlug(ctx context.Context, slug string) (*brand.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, errBrandNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll finds all brands matching the filter
func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]brand.Brand, error) {
	var rows []models.BrandModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BrandModel{}), filter)
	query = applyOrder(query, filter, BrandSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBrands(rows), nil
}

// Count counts brands matching the filter
func (r *GormBrandRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BrandModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindActive returns the storefront-visible brands in display order
func (r *GormBrandRepository) FindActive(ctx context.Context) ([]brand.Brand, error) {
	var rows []models.BrandModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBrands(rows), nil
}

// ExistsBySlug checks if a live brand uses the slug
func (r *GormBrandRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BrandModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the brand with its own ID. A soft-deleted row carrying the
// same ID is revived and overwritten.
func (r *GormBrandRepository) Create(ctx context.Context, b *brand.Brand) error {
	model := models.BrandModelFromDomain(b)
	model.DeletedAt = gorm.DeletedAt{}

	var existing int64
	if err := r.db.WithContext(ctx).Unscoped().
		Model(&models.BrandModel{}).
		Where("id = ?", b.ID).
		Count(&existing).Error; err != nil {
		return err
	}

	if existing > 0 {
		if err := r.db.WithContext(ctx).Unscoped().Save(model).Error; err != nil {
			return err
		}
	} else if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.AlreadyExists("Brand already exists")
		}
		return err
	}

	b.DeletedAt = nil
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Save writes every field of a live brand
func (r *GormBrandRepository) Save(ctx context.Context, b *brand.Brand) error {
	model := models.BrandModelFromDomain(b)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("created_at", "deleted_at").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errBrandNotFound
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete soft-deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BrandModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errBrandNotFound
	}
	return nil
}

// Purge removes the brand row, deleted or not
func (r *GormBrandRepository) Purge(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.BrandModel{}, "id = ?", id).Error
}

// applyFilter applies search and equality filters, ignoring pagination
func (r *GormBrandRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if q := strings.TrimSpace(filter.Search); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active", "slug", "name", "country":
			query = query.Where(clause.Eq{Column: clause.Column{Name: key}, Value: value})
		case "id":
			query = query.Where("id IN ?", value)
		}
	}

	return query
}

func toBrands(rows []models.BrandModel) []brand.Brand {
	brands := make([]brand.Brand, 0, len(rows))
	for i := range rows {
		brands = append(brands, *rows[i].ToDomain())
	}
	return brands
}

// Ensure GormBrandRepository implements brand.Repository
var _ brand.Repository = (*GormBrandRepository)(nil)
