package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/newsletter"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// defaultSubscriptionLimit is the page size of admin subscription listings
const defaultSubscriptionLimit = 50

var errSubscriptionNotFound = shared.NotFound("Subscription not found")

// GormNewsletterRepository implements newsletter.Repository using GORM
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewGormNewsletterRepository creates a new GormNewsletterRepository
func NewGormNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// FindByID finds a subscription by ID
func (r *GormNewsletterRepository) FindByID(ctx context.Context, id uuid.UUID) (*newsletter.Subscription, error) {
	var model models.NewsletterSubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, errSubscriptionNotFound)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds the live subscription for the normalized email
func (r *GormNewsletterRepository) FindByEmail(ctx context.Context, email string) (*newsletter.Subscription, error) {
	var model models.NewsletterSubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", newsletter.NormalizeEmail(email)).
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, errSubscriptionNotFound)
	}
	return model.ToDomain(), nil
}

// List returns subscriptions newest first with the total matching count
func (r *GormNewsletterRepository) List(ctx context.Context, filter newsletter.ListFilter) ([]newsletter.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NewsletterSubscriptionModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSubscriptionLimit
	}
	if limit > shared.MaxLimit {
		limit = shared.MaxLimit
	}

	var rows []models.NewsletterSubscriptionModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	subs := make([]newsletter.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, *rows[i].ToDomain())
	}
	return subs, count, nil
}

// Create inserts a subscription. A live row with the same email yields shared.ErrAlreadyExists.
func (r *GormNewsletterRepository) Create(ctx context.Context, sub *newsletter.Subscription) error {
	model := models.NewsletterSubscriptionModelFromDomain(sub)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.AlreadyExists("Email is already subscribed")
		}
		return err
	}
	sub.CreatedAt = model.CreatedAt
	sub.UpdatedAt = model.UpdatedAt
	return nil
}

// Save writes every field of a live subscription
func (r *GormNewsletterRepository) Save(ctx context.Context, sub *newsletter.Subscription) error {
	model := models.NewsletterSubscriptionModelFromDomain(sub)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("created_at", "deleted_at").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errSubscriptionNotFound
	}
	sub.UpdatedAt = model.UpdatedAt
	return nil
}

// Ensure GormNewsletterRepository implements newsletter.Repository
var _ newsletter.Repository = (*GormNewsletterRepository)(nil)
