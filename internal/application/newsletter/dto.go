package newsletter

import (
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/newsletter"
)

// Newsletter listing defaults
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// SubscribeRequest is the public subscribe body
type SubscribeRequest struct {
	Email       string         `json:"email" binding:"required"`
	Source      string         `json:"source" binding:"omitempty,max=100"`
	Preferences map[string]any `json:"preferences"`
}

// ClientInfo describes the caller of a public subscribe request
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// UnsubscribeRequest is the public unsubscribe body
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// AdminCreateRequest creates a subscription from the admin
type AdminCreateRequest struct {
	Email  string `json:"email" binding:"required"`
	Source string `json:"source" binding:"omitempty,max=100"`
}

// ListQuery holds the admin listing parameters
type ListQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Status string `form:"status" binding:"omitempty,oneof=active unsubscribed bounced"`
}

// ToFilter converts the query into a repository filter
func (q ListQuery) ToFilter() newsletter.ListFilter {
	filter := newsletter.ListFilter{Limit: q.Limit, Offset: q.Offset}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if q.Status != "" {
		status := newsletter.Status(q.Status)
		filter.Status = &status
	}
	return filter
}

// SubscriptionSummary is the short shape returned to the storefront
type SubscriptionSummary struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Status string    `json:"status"`
}

// SubscriptionResponse is the full admin shape of a subscription
type SubscriptionResponse struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	CustomerID  *string        `json:"customer_id"`
	Status      string         `json:"status"`
	Source      *string        `json:"source"`
	Preferences map[string]any `json:"preferences"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// SubscriptionListResponse is the admin listing envelope
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Count         int64                  `json:"count"`
	Limit         int                    `json:"limit"`
	Offset        int                    `json:"offset"`
}

// ToSummary converts a subscription to its storefront shape
func ToSummary(s *newsletter.Subscription) SubscriptionSummary {
	return SubscriptionSummary{ID: s.ID, Email: s.Email, Status: string(s.Status)}
}

// ToSubscriptionResponse converts a subscription to its admin shape
func ToSubscriptionResponse(s *newsletter.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID,
		Email:       s.Email,
		CustomerID:  s.CustomerID,
		Status:      string(s.Status),
		Source:      s.Source,
		Preferences: s.Preferences,
		Metadata:    s.Metadata,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
