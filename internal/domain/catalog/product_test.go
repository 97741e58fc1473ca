package catalog

import (
	"errors"
	"testing"

	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("Yonex EZONE 98", "", "")
	require.NoError(t, err)

	assert.Equal(t, "yonex-ezone-98", p.Handle)
	assert.Equal(t, ProductStatusDraft, p.Status)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	assert.Equal(t, p.ID, events[0].AggregateID())
}

func TestNewProduct_EmptyTitle(t *testing.T) {
	_, err := NewProduct("   ", "", "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestProduct_MarkDeleted(t *testing.T) {
	p, _ := NewProduct("Head Speed", "head-speed", "")
	p.ClearDomainEvents()

	p.MarkDeleted()

	assert.NotNil(t, p.DeletedAt)
	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductDeleted, events[0].EventType())
}

func TestProduct_Publish(t *testing.T) {
	p, _ := NewProduct("Head Speed", "", "")

	require.NoError(t, p.Publish())
	assert.Equal(t, ProductStatusPublished, p.Status)
	assert.True(t, errors.Is(p.Publish(), shared.ErrInvalidState))
}
