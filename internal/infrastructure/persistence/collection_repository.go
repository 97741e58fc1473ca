package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/collection"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var (
	errCollectionNotFound = shared.NotFound("Collection not found")
	errImageNotFound      = shared.NotFound("Collection image not found")
)

// GormCollectionRepository implements collection.Repository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a collection by ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, errCollectionNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll finds collections matching the filter
func (r *GormCollectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]collection.Collection, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CollectionModel{}), filter)
	query = applyOrder(query, filter, CollectionSortFields, "created_at")
	query = applyPagination(query, filter)

	var rows []models.CollectionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]collection.Collection, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Count counts collections matching the filter
func (r *GormCollectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CollectionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a collection
func (r *GormCollectionRepository) Save(ctx context.Context, c *collection.Collection) error {
	model := &models.CollectionModel{}
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft-deletes a collection
func (r *GormCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CollectionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errCollectionNotFound
	}
	return nil
}

func (r *GormCollectionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if q := strings.TrimSpace(filter.Search); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if handle, ok := filter.Filters["handle"]; ok {
		query = query.Where("handle = ?", handle)
	}
	return query
}

// GormCollectionImageRepository implements collection.ImageRepository using GORM
type GormCollectionImageRepository struct {
	db *gorm.DB
}

// NewGormCollectionImageRepository creates a new GormCollectionImageRepository
func NewGormCollectionImageRepository(db *gorm.DB) *GormCollectionImageRepository {
	return &GormCollectionImageRepository{db: db}
}

// FindByID finds a live image by ID
func (r *GormCollectionImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Image, error) {
	var model models.CollectionImageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, errImageNotFound)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the live images among ids, oldest first
func (r *GormCollectionImageRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]collection.Image, error) {
	if len(ids) == 0 {
		return []collection.Image{}, nil
	}
	var rows []models.CollectionImageModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	images := make([]collection.Image, 0, len(rows))
	for i := range rows {
		images = append(images, *rows[i].ToDomain())
	}
	return images, nil
}

// Create inserts an image
func (r *GormCollectionImageRepository) Create(ctx context.Context, img *collection.Image) error {
	model := &models.CollectionImageModel{}
	model.FromDomain(img)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return collection.ErrThumbnailExists
		}
		return err
	}
	img.CreatedAt = model.CreatedAt
	img.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete soft-deletes an image
func (r *GormCollectionImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CollectionImageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errImageNotFound
	}
	return nil
}

// Restore clears the soft-delete marker of an image
func (r *GormCollectionImageRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().
		Model(&models.CollectionImageModel{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return collection.ErrThumbnailExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errImageNotFound
	}
	return nil
}

// Purge removes an image row permanently
func (r *GormCollectionImageRepository) Purge(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.CollectionImageModel{}, "id = ?", id).Error
}

var (
	_ collection.Repository      = (*GormCollectionRepository)(nil)
	_ collection.ImageRepository = (*GormCollectionImageRepository)(nil)
)
