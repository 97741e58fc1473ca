package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/order"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/event"
	"github.com/raqueto/backend/internal/infrastructure/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

const testSecret = "whsec_test_secret"

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func signedIntent(orderID string) (string, []byte) {
	payload := fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_1", "object": "payment_intent", "amount": 4500, "currency": "eur",
			"metadata": {"order_id": %q}}}
	}`, orderID)
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return sp.Header, sp.Payload
}

func newService(t *testing.T, repo *MockOrderRepository) (*WebhookService, *[]uuid.UUID) {
	t.Helper()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	var placed []uuid.UUID
	bus.Subscribe(event.HandlerFunc(func(_ context.Context, e shared.DomainEvent) error {
		placed = append(placed, e.(*order.PlacedEvent).OrderID)
		return nil
	}, order.EventTypeOrderPlaced))
	return NewWebhookService(payment.NewStripeWebhookVerifier(testSecret), repo, bus, nil), &placed
}

func TestWebhookService_PaymentSucceeded(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	repo := new(MockOrderRepository)
	repo.On("FindByID", ctx, orderID).Return(&order.Order{ID: orderID}, nil)
	svc, placed := newService(t, repo)

	header, body := signedIntent(orderID.String())
	result, err := svc.ProcessWebhook(ctx, body, header)
	require.NoError(t, err)

	assert.True(t, result.Processed)
	assert.Equal(t, payment.EventPaymentIntentSucceeded, result.EventType)
	assert.Equal(t, []uuid.UUID{orderID}, *placed)
}

func TestWebhookService_SkipsUnusableMetadata(t *testing.T) {
	ctx := context.Background()
	unknown := uuid.New()
	repo := new(MockOrderRepository)
	repo.On("FindByID", ctx, unknown).Return(nil, shared.NotFound("Order not found"))

	cases := map[string]struct {
		orderID string
		message string
	}{
		"missing":   {"", "No order_id in payment metadata"},
		"malformed": {"order_123", "Invalid order_id in payment metadata"},
		"unknown":   {unknown.String(), "Order not found"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, placed := newService(t, repo)
			header, body := signedIntent(tc.orderID)

			result, err := svc.ProcessWebhook(ctx, body, header)
			require.NoError(t, err)
			assert.False(t, result.Processed)
			assert.Equal(t, tc.message, result.Message)
			assert.Empty(t, *placed)
		})
	}
}

func TestWebhookService_OtherEventTypes(t *testing.T) {
	svc, placed := newService(t, new(MockOrderRepository))
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(`{"id":"evt_9","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})

	result, err := svc.ProcessWebhook(context.Background(), sp.Payload, sp.Header)
	require.NoError(t, err)
	assert.False(t, result.Processed)
	assert.Equal(t, "Event type not handled", result.Message)
	assert.Empty(t, *placed)
}

func TestWebhookService_BadSignature(t *testing.T) {
	svc, _ := newService(t, new(MockOrderRepository))
	_, body := signedIntent(uuid.NewString())

	_, err := svc.ProcessWebhook(context.Background(), body, "t=1,v1=deadbeef")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, "Invalid webhook signature", err.Error())
}
