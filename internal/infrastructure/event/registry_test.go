package event

import (
	"context"
	"testing"

	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler("product.created", "product.deleted")

	registry.Register(handler, "product.created", "product.deleted")

	assert.Len(t, registry.Handlers("product.created"), 1)
	assert.Len(t, registry.Handlers("product.deleted"), 1)
	assert.Empty(t, registry.Handlers("order.placed"))
}

func TestHandlerRegistry_WildcardComesLast(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newTestHandler()
	typed := newTestHandler("order.placed")

	registry.Register(wildcard)
	registry.Register(typed, "order.placed")

	handlers := registry.Handlers("order.placed")
	assert.Equal(t, []shared.EventHandler{typed, wildcard}, handlers)
	assert.Equal(t, []shared.EventHandler{wildcard}, registry.Handlers("anything"))
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	h1 := newTestHandler("product.created")
	h2 := newTestHandler("product.created")
	wildcard := newTestHandler()

	registry.Register(h1, "product.created")
	registry.Register(h2, "product.created")
	registry.Register(wildcard)

	registry.Unregister(h1)
	registry.Unregister(wildcard)

	assert.Equal(t, []shared.EventHandler{h2}, registry.Handlers("product.created"))

	registry.Unregister(h2)
	assert.Empty(t, registry.Handlers("product.created"))
	assert.NotContains(t, registry.handlers, "product.created")
}

func TestHandlerFunc(t *testing.T) {
	var got string
	h := HandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		got = event.EventType()
		return nil
	}, "order.placed")

	assert.Equal(t, []string{"order.placed"}, h.EventTypes())
	assert.NoError(t, h.Handle(context.Background(), newTestEvent("order.placed")))
	assert.Equal(t, "order.placed", got)
}
