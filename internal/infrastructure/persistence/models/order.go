package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model read by order notifications.
type OrderModel struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key"`
	DisplayID       int                `gorm:"column:display_id;not null"`
	Email           string             `gorm:"type:text;not null"`
	CurrencyCode    string             `gorm:"column:currency_code;type:varchar(3);not null"`
	Subtotal        decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	ShippingTotal   decimal.Decimal    `gorm:"column:shipping_total;type:decimal(18,4);not null"`
	TaxTotal        decimal.Decimal    `gorm:"column:tax_total;type:decimal(18,4);not null"`
	DiscountTotal   decimal.Decimal    `gorm:"column:discount_total;type:decimal(18,4);not null"`
	Total           decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	ShippingAddress *OrderAddressModel `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	Items           []OrderItemModel   `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one line of an order.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	Title     string          `gorm:"type:text;not null"`
	Variant   string          `gorm:"type:text"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(18,4);not null"`
	Thumbnail string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderAddressModel is the JSON shape of a stored address.
type OrderAddressModel struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2,omitempty"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Province    string `json:"province,omitempty"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone,omitempty"`
}

// ToDomain converts the persistence model to the order read model.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		ID:            m.ID,
		DisplayID:     m.DisplayID,
		Email:         m.Email,
		CurrencyCode:  m.CurrencyCode,
		Subtotal:      m.Subtotal,
		ShippingTotal: m.ShippingTotal,
		TaxTotal:      m.TaxTotal,
		DiscountTotal: m.DiscountTotal,
		Total:         m.Total,
		CreatedAt:     m.CreatedAt,
		Items:         make([]order.LineItem, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		o.Items = append(o.Items, order.LineItem{
			Title:     it.Title,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Thumbnail: it.Thumbnail,
		})
	}
	if a := m.ShippingAddress; a != nil {
		o.ShippingAddress = &order.Address{
			FirstName:   a.FirstName,
			LastName:    a.LastName,
			Address1:    a.Address1,
			Address2:    a.Address2,
			City:        a.City,
			PostalCode:  a.PostalCode,
			Province:    a.Province,
			CountryCode: a.CountryCode,
			Phone:       a.Phone,
		}
	}
	return o
}
