package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NotFound("Brand not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Brand not found", err.Error())
}

func TestDomainError_IsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load brand: %w", AlreadyExists("duplicate"))

	assert.True(t, errors.Is(wrapped, ErrAlreadyExists))

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "ALREADY_EXISTS", de.Code)
}

func TestFilter_WithFilterCopies(t *testing.T) {
	base := DefaultFilter()
	derived := base.WithFilter("is_active", true)

	assert.Empty(t, base.Filters)
	assert.Equal(t, true, derived.Filters["is_active"])
	assert.Equal(t, DefaultLimit, derived.Limit)
}
