package newsletter

import (
	"context"
	"errors"
	"time"

	"github.com/raqueto/backend/internal/domain/newsletter"
	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/raqueto/backend/internal/infrastructure/metrics"
	"github.com/raqueto/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
)

// ErrEmailNotFound is returned when unsubscribing an unknown address
var ErrEmailNotFound = shared.NotFound("Email not found in newsletter list")

// NewsletterService manages the newsletter list
type NewsletterService struct {
	repo    newsletter.Repository
	sender  notification.Sender
	shopURL string
	logger  *zap.Logger
	now     func() time.Time
}

// NewNewsletterService creates a new NewsletterService. A nil sender
// disables welcome emails.
func NewNewsletterService(repo newsletter.Repository, sender notification.Sender, shopURL string, logger *zap.Logger) *NewsletterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsletterService{
		repo:    repo,
		sender:  sender,
		shopURL: shopURL,
		logger:  logger,
		now:     time.Now,
	}
}

// Subscribe adds the address to the list from the storefront.
// It is idempotent: an active or bounced address is returned unchanged and
// an unsubscribed one is reactivated in place.
func (s *NewsletterService) Subscribe(ctx context.Context, req SubscribeRequest, client ClientInfo) (*SubscriptionSummary, error) {
	source := req.Source
	if source == "" {
		source = newsletter.SourceWebsite
	}
	opts := newsletter.Options{
		Source:      source,
		Preferences: req.Preferences,
		Metadata: map[string]any{
			"subscribed_at": s.now().UTC().Format(time.RFC3339),
			"ip_address":    client.IPAddress,
			"user_agent":    client.UserAgent,
		},
	}

	sub, err := s.subscribe(ctx, req.Email, opts)
	if err != nil {
		return nil, err
	}
	summary := ToSummary(sub)
	return &summary, nil
}

// AdminCreate adds an address on behalf of an administrator
func (s *NewsletterService) AdminCreate(ctx context.Context, req AdminCreateRequest) (*SubscriptionResponse, error) {
	source := req.Source
	if source == "" {
		source = newsletter.SourceAdmin
	}
	sub, err := s.subscribe(ctx, req.Email, newsletter.Options{Source: source})
	if err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

func (s *NewsletterService) subscribe(ctx context.Context, email string, opts newsletter.Options) (*newsletter.Subscription, error) {
	if err := newsletter.ValidateEmail(email); err != nil {
		return nil, err
	}
	email = newsletter.NormalizeEmail(email)

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.resubscribe(ctx, existing, opts)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	sub, err := newsletter.NewSubscription(email, opts)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		// a concurrent request created the row first
		existing, findErr := s.repo.FindByEmail(ctx, email)
		if findErr != nil {
			return nil, findErr
		}
		return existing, nil
	}

	s.logger.Info("newsletter subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.Stringp("source", sub.Source),
	)
	s.sendWelcome(ctx, sub.Email)
	return sub, nil
}

func (s *NewsletterService) resubscribe(ctx context.Context, sub *newsletter.Subscription, opts newsletter.Options) (*newsletter.Subscription, error) {
	if sub.Status != newsletter.StatusUnsubscribed {
		return sub, nil
	}
	if err := sub.Reactivate(opts); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info("newsletter subscription reactivated", zap.String("subscription_id", sub.ID.String()))
	s.sendWelcome(ctx, sub.Email)
	return sub, nil
}

// Unsubscribe marks the address as unsubscribed
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	sub, err := s.repo.FindByEmail(ctx, newsletter.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrEmailNotFound
		}
		return err
	}
	sub.Unsubscribe()
	return s.repo.Save(ctx, sub)
}

// LinkToCustomer attaches a customer to the address's subscription.
// Unknown addresses are ignored.
func (s *NewsletterService) LinkToCustomer(ctx context.Context, email, customerID string) (*SubscriptionResponse, error) {
	sub, err := s.repo.FindByEmail(ctx, newsletter.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	sub.LinkCustomer(customerID)
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// List returns a page of subscriptions, newest first
func (s *NewsletterService) List(ctx context.Context, query ListQuery) (*SubscriptionListResponse, error) {
	filter := query.ToFilter()
	subs, count, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, ToSubscriptionResponse(&subs[i]))
	}
	return &SubscriptionListResponse{
		Subscriptions: out,
		Count:         count,
		Limit:         filter.Limit,
		Offset:        filter.Offset,
	}, nil
}

// sendWelcome delivers the welcome email. Failures never fail the subscription.
func (s *NewsletterService) sendWelcome(ctx context.Context, email string) {
	if s.sender == nil {
		return
	}
	err := s.sender.Send(ctx, notification.Message{
		To:       email,
		Template: notification.TemplateNewsletterWelcome,
		Data: notification.WelcomeData{
			Email:     email,
			PromoCode: notification.WelcomePromoCode,
			ShopURL:   s.shopURL,
		},
	})
	metrics.RecordEmail(notification.TemplateNewsletterWelcome, err)
	if err != nil {
		s.logger.Warn("failed to send newsletter welcome email", zap.Error(err))
	}
}
