package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/catalog"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	racquet, err := catalog.NewProduct("Astrox 99 Pro", "", "Head-heavy badminton racquet")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, racquet))

	shoes, err := catalog.NewProduct("Power Cushion 65Z", "pc-65z", "")
	require.NoError(t, err)
	require.NoError(t, shoes.Publish())
	require.NoError(t, repo.Save(ctx, shoes))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, racquet.ID)
		require.NoError(t, err)
		assert.Equal(t, "astrox-99-pro", found.Handle)
		assert.Equal(t, catalog.ProductStatusDraft, found.Status)
		assert.Empty(t, found.GetDomainEvents())
	})

	t.Run("filter by status", func(t *testing.T) {
		filter := shared.DefaultFilter().WithFilter("status", catalog.ProductStatusPublished)
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, shoes.ID, products[0].ID)
	})

	t.Run("filter by ids", func(t *testing.T) {
		filter := shared.DefaultFilter().WithFilter("id", []uuid.UUID{racquet.ID, uuid.New()})
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, racquet.ID))
		_, err := repo.FindByID(ctx, racquet.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, racquet.ID), shared.ErrNotFound)
	})
}
