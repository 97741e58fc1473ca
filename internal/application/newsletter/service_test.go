package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/newsletter"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*newsletter.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*newsletter.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*newsletter.Subscription, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*newsletter.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) List(ctx context.Context, filter newsletter.ListFilter) ([]newsletter.Subscription, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]newsletter.Subscription), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *newsletter.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *newsletter.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

var errNoRow = shared.NotFound("Subscription not found")

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo *MockSubscriptionRepository, sender notification.Sender) *NewsletterService {
	svc := NewNewsletterService(repo, sender, "https://raqueto.shop", nil)
	svc.now = fixedClock
	return svc
}

func welcomeTo(email string) interface{} {
	return mock.MatchedBy(func(msg notification.Message) bool {
		data, ok := msg.Data.(notification.WelcomeData)
		return ok && msg.To == email &&
			msg.Template == notification.TemplateNewsletterWelcome &&
			data.PromoCode == notification.WelcomePromoCode &&
			data.ShopURL == "https://raqueto.shop"
	})
}

func TestNewsletterService_Subscribe(t *testing.T) {
	ctx := context.Background()
	client := ClientInfo{IPAddress: "203.0.113.7", UserAgent: "test-agent"}

	t.Run("new address is created and welcomed", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		sender := new(MockSender)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errNoRow)
		repo.On("Create", ctx, mock.MatchedBy(func(s *newsletter.Subscription) bool {
			return s.Email == "ana@example.com" &&
				s.Status == newsletter.StatusActive &&
				*s.Source == newsletter.SourceWebsite &&
				s.Metadata["ip_address"] == "203.0.113.7" &&
				s.Metadata["user_agent"] == "test-agent" &&
				s.Metadata["subscribed_at"] == "2026-03-01T10:00:00Z"
		})).Return(nil)
		sender.On("Send", ctx, welcomeTo("ana@example.com")).Return(nil)

		sub, err := newTestService(repo, sender).Subscribe(ctx, SubscribeRequest{Email: " Ana@Example.com "}, client)
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", sub.Email)
		assert.Equal(t, "active", sub.Status)
		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)

		_, err := newTestService(repo, nil).Subscribe(ctx, SubscribeRequest{Email: "not-an-email"}, client)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, "Invalid email address", err.Error())
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("active address is returned unchanged", func(t *testing.T) {
		existing, _ := newsletter.NewSubscription("ana@example.com", newsletter.Options{Source: "footer"})
		repo := new(MockSubscriptionRepository)
		sender := new(MockSender)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(existing, nil)

		sub, err := newTestService(repo, sender).Subscribe(ctx, SubscribeRequest{Email: "ana@example.com"}, client)
		require.NoError(t, err)

		assert.Equal(t, existing.ID, sub.ID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("bounced address is not reactivated", func(t *testing.T) {
		existing, _ := newsletter.NewSubscription("ana@example.com", newsletter.Options{})
		existing.Status = newsletter.StatusBounced
		repo := new(MockSubscriptionRepository)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(existing, nil)

		sub, err := newTestService(repo, nil).Subscribe(ctx, SubscribeRequest{Email: "ana@example.com"}, client)
		require.NoError(t, err)
		assert.Equal(t, "bounced", sub.Status)
	})

	t.Run("unsubscribed address is reactivated in place", func(t *testing.T) {
		existing, _ := newsletter.NewSubscription("ana@example.com", newsletter.Options{})
		existing.Unsubscribe()
		repo := new(MockSubscriptionRepository)
		sender := new(MockSender)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(existing, nil)
		repo.On("Save", ctx, existing).Return(nil)
		sender.On("Send", ctx, welcomeTo("ana@example.com")).Return(nil)

		sub, err := newTestService(repo, sender).Subscribe(ctx, SubscribeRequest{Email: "ana@example.com", Source: "popup"}, client)
		require.NoError(t, err)

		assert.Equal(t, existing.ID, sub.ID)
		assert.Equal(t, "active", sub.Status)
		assert.Equal(t, "popup", *existing.Source)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent create resolves to the stored row", func(t *testing.T) {
		winner, _ := newsletter.NewSubscription("ana@example.com", newsletter.Options{})
		repo := new(MockSubscriptionRepository)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errNoRow).Once()
		repo.On("Create", ctx, mock.Anything).Return(shared.AlreadyExists("Email is already subscribed"))
		repo.On("FindByEmail", ctx, "ana@example.com").Return(winner, nil).Once()

		sub, err := newTestService(repo, nil).Subscribe(ctx, SubscribeRequest{Email: "ana@example.com"}, client)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, sub.ID)
	})

	t.Run("welcome email failure is swallowed", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		repo := new(MockSubscriptionRepository)
		sender := new(MockSender)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errNoRow)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		sender.On("Send", ctx, mock.Anything).Return(errors.New("resend: 500"))

		svc := NewNewsletterService(repo, sender, "", zap.New(core))
		sub, err := svc.Subscribe(ctx, SubscribeRequest{Email: "ana@example.com"}, client)
		require.NoError(t, err)
		assert.Equal(t, "active", sub.Status)
		assert.Equal(t, 1, logs.FilterMessage("failed to send newsletter welcome email").Len())
	})
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, errNoRow)

		err := newTestService(repo, nil).Unsubscribe(ctx, "Ghost@example.com")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Equal(t, "Email not found in newsletter list", err.Error())
	})

	t.Run("active email", func(t *testing.T) {
		existing, _ := newsletter.NewSubscription("ana@example.com", newsletter.Options{})
		repo := new(MockSubscriptionRepository)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(existing, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(s *newsletter.Subscription) bool {
			return s.Status == newsletter.StatusUnsubscribed
		})).Return(nil)

		require.NoError(t, newTestService(repo, nil).Unsubscribe(ctx, "ana@example.com"))
		repo.AssertExpectations(t)
	})
}

func TestNewsletterService_LinkToCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("no subscription is a no-op", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errNoRow)

		resp, err := newTestService(repo, nil).LinkToCustomer(ctx, "ana@example.com", "cus_123")
		require.NoError(t, err)
		assert.Nil(t, resp)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("links customer", func(t *testing.T) {
		existing, _ := newsletter.NewSubscription("ana@example.com", newsletter.Options{})
		repo := new(MockSubscriptionRepository)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(existing, nil)
		repo.On("Save", ctx, existing).Return(nil)

		resp, err := newTestService(repo, nil).LinkToCustomer(ctx, "ana@example.com", "cus_123")
		require.NoError(t, err)
		require.NotNil(t, resp.CustomerID)
		assert.Equal(t, "cus_123", *resp.CustomerID)
	})
}

func TestNewsletterService_AdminCreate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubscriptionRepository)
	repo.On("FindByEmail", ctx, "ops@example.com").Return(nil, errNoRow)
	repo.On("Create", ctx, mock.MatchedBy(func(s *newsletter.Subscription) bool {
		return *s.Source == newsletter.SourceAdmin
	})).Return(nil)

	resp, err := newTestService(repo, nil).AdminCreate(ctx, AdminCreateRequest{Email: "ops@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "admin", *resp.Source)
}

func TestNewsletterService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubscriptionRepository)
	a, _ := newsletter.NewSubscription("a@example.com", newsletter.Options{})
	b, _ := newsletter.NewSubscription("b@example.com", newsletter.Options{})

	status := newsletter.StatusActive
	repo.On("List", ctx, newsletter.ListFilter{Status: &status, Limit: DefaultListLimit}).
		Return([]newsletter.Subscription{*a, *b}, int64(2), nil)

	resp, err := newTestService(repo, nil).List(ctx, ListQuery{Status: "active"})
	require.NoError(t, err)
	assert.Len(t, resp.Subscriptions, 2)
	assert.Equal(t, int64(2), resp.Count)
	assert.Equal(t, DefaultListLimit, resp.Limit)
}
