package persistence

import (
	"testing"

	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with every model migrated.
// A single connection keeps the in-memory database shared across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.BrandModel{},
		&models.NewsletterSubscriptionModel{},
		&models.CollectionModel{},
		&models.CollectionImageModel{},
		&models.ProductModel{},
		&models.ProductBrandModel{},
		&models.CollectionImageLinkModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	)
	require.NoError(t, err)

	return db
}
