package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/order"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository reads orders for notifications
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads the order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, shared.NotFound("Order not found"))
	}
	return model.ToDomain(), nil
}

var _ order.Repository = (*GormOrderRepository)(nil)
