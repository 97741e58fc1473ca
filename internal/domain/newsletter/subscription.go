package newsletter

import (
	"net/mail"
	"strings"
	"time"

	"github.com/raqueto/backend/internal/domain/shared"
)

// Status is the delivery state of a subscription
type Status string

const (
	StatusActive       Status = "active"
	StatusUnsubscribed Status = "unsubscribed"
	StatusBounced      Status = "bounced"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusUnsubscribed, StatusBounced:
		return true
	}
	return false
}

// Default sources recorded on a subscription
const (
	SourceWebsite = "website"
	SourceAdmin   = "admin"
)

// Subscription is one email address on the newsletter list.
// CustomerID is a weak back-reference; the subscription does not own the customer.
type Subscription struct {
	shared.BaseEntity
	Email       string
	CustomerID  *string
	Status      Status
	Source      *string
	Preferences map[string]any
	Metadata    map[string]any
}

// Options carries the optional fields supplied when subscribing
type Options struct {
	Source      string
	Preferences map[string]any
	Metadata    map[string]any
}

// NormalizeEmail trims and lower-cases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that the value is a bare RFC 5322 address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.InvalidInput("Invalid email address")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address, "@") {
		return shared.InvalidInput("Invalid email address")
	}
	return nil
}

// NewSubscription creates an active subscription
func NewSubscription(email string, opts Options) (*Subscription, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	s := &Subscription{
		BaseEntity:  shared.NewBaseEntity(),
		Email:       NormalizeEmail(email),
		Status:      StatusActive,
		Preferences: opts.Preferences,
		Metadata:    opts.Metadata,
	}
	if opts.Source != "" {
		src := opts.Source
		s.Source = &src
	}
	return s, nil
}

// IsActive reports whether mail should be delivered to this address
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// Reactivate flips an unsubscribed row back to active, merging the new options
func (s *Subscription) Reactivate(opts Options) error {
	if s.Status != StatusUnsubscribed {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Only unsubscribed addresses can be reactivated")
	}
	s.Status = StatusActive
	if opts.Source != "" {
		src := opts.Source
		s.Source = &src
	}
	if opts.Preferences != nil {
		s.Preferences = opts.Preferences
	}
	if opts.Metadata != nil {
		s.Metadata = opts.Metadata
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Unsubscribe marks the address as unsubscribed
func (s *Subscription) Unsubscribe() {
	s.Status = StatusUnsubscribed
	s.UpdatedAt = time.Now()
}

// LinkCustomer records the customer that owns this address
func (s *Subscription) LinkCustomer(customerID string) {
	s.CustomerID = &customerID
	s.UpdatedAt = time.Now()
}
