package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeOrderPlaced = "order.placed"
)

// LineItem is one purchased item on an order
type LineItem struct {
	Title     string
	Variant   string
	Quantity  int
	UnitPrice decimal.Decimal
	Thumbnail string
}

// Total returns quantity times unit price
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Address is a postal address on an order
type Address struct {
	FirstName   string
	LastName    string
	Address1    string
	Address2    string
	City        string
	PostalCode  string
	Province    string
	CountryCode string
	Phone       string
}

// Order is the read model used to render order confirmations
type Order struct {
	ID              uuid.UUID
	DisplayID       int
	Email           string
	CurrencyCode    string
	Items           []LineItem
	ShippingAddress *Address
	Subtotal        decimal.Decimal
	ShippingTotal   decimal.Decimal
	TaxTotal        decimal.Decimal
	DiscountTotal   decimal.Decimal
	Total           decimal.Decimal
	CreatedAt       time.Time
}

// Repository reads orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}
