package models

import (
	"github.com/raqueto/backend/internal/domain/newsletter"
)

// NewsletterSubscriptionModel is the persistence model for newsletter subscriptions.
// Email is unique among rows that are not soft-deleted.
type NewsletterSubscriptionModel struct {
	BaseModel
	Email       string            `gorm:"type:text;not null;uniqueIndex:idx_newsletter_subscription_email,where:deleted_at IS NULL"`
	CustomerID  *string           `gorm:"column:customer_id;type:text;index"`
	Status      newsletter.Status `gorm:"type:varchar(20);not null;index"`
	Source      *string           `gorm:"type:text"`
	Preferences map[string]any    `gorm:"type:jsonb;serializer:json"`
	Metadata    map[string]any    `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (NewsletterSubscriptionModel) TableName() string {
	return "newsletter_subscription"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *NewsletterSubscriptionModel) ToDomain() *newsletter.Subscription {
	return &newsletter.Subscription{
		BaseEntity:  m.BaseModel.ToDomain(),
		Email:       m.Email,
		CustomerID:  m.CustomerID,
		Status:      m.Status,
		Source:      m.Source,
		Preferences: m.Preferences,
		Metadata:    m.Metadata,
	}
}

// FromDomain populates the persistence model from a domain Subscription.
func (m *NewsletterSubscriptionModel) FromDomain(s *newsletter.Subscription) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Email = s.Email
	m.CustomerID = s.CustomerID
	m.Status = s.Status
	m.Source = s.Source
	m.Preferences = s.Preferences
	m.Metadata = s.Metadata
}

// NewsletterSubscriptionModelFromDomain creates a new persistence model from a domain Subscription.
func NewsletterSubscriptionModelFromDomain(s *newsletter.Subscription) *NewsletterSubscriptionModel {
	m := &NewsletterSubscriptionModel{}
	m.FromDomain(s)
	return m
}
