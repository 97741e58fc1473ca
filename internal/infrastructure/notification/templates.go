// Package notification renders transactional emails and delivers them.
package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/raqueto/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// Template names
const (
	TemplateNewsletterWelcome = "newsletter-welcome"
	TemplateOrderPlaced       = "order-placed"
	TemplateOrderPlacedAdmin  = "order-placed-admin"
)

// WelcomePromoCode is the discount code sent to new subscribers
const WelcomePromoCode = "WELCOME5"

//go:embed templates/*.html
var templateFS embed.FS

// Message is one email to deliver
type Message struct {
	To       string
	Template string
	Data     any
}

// WelcomeData feeds the newsletter-welcome template
type WelcomeData struct {
	Email     string
	PromoCode string
	ShopURL   string
}

// OrderData feeds both order templates. Money values are preformatted.
type OrderData struct {
	DisplayID   int
	Email       string
	Items       []OrderLine
	Address     *order.Address
	Subtotal    string
	Shipping    string
	Tax         string
	Discount    string
	HasDiscount bool
	Total       string
}

// OrderLine is one formatted item row
type OrderLine struct {
	Title     string
	Variant   string
	Quantity  int
	UnitPrice string
	Total     string
}

// NewOrderData formats an order for rendering
func NewOrderData(o *order.Order) OrderData {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, OrderLine{
			Title:     item.Title,
			Variant:   item.Variant,
			Quantity:  item.Quantity,
			UnitPrice: FormatMoney(item.UnitPrice, o.CurrencyCode),
			Total:     FormatMoney(item.Total(), o.CurrencyCode),
		})
	}
	return OrderData{
		DisplayID:   o.DisplayID,
		Email:       o.Email,
		Items:       lines,
		Address:     o.ShippingAddress,
		Subtotal:    FormatMoney(o.Subtotal, o.CurrencyCode),
		Shipping:    FormatMoney(o.ShippingTotal, o.CurrencyCode),
		Tax:         FormatMoney(o.TaxTotal, o.CurrencyCode),
		Discount:    FormatMoney(o.DiscountTotal, o.CurrencyCode),
		HasDiscount: o.DiscountTotal.IsPositive(),
		Total:       FormatMoney(o.Total, o.CurrencyCode),
	}
}

var currencySymbols = map[string]string{
	"eur": "€",
	"usd": "$",
	"gbp": "£",
	"mxn": "$",
	"clp": "$",
	"cop": "$",
	"ars": "$",
}

// FormatMoney renders an amount with two decimals and the currency's narrow symbol
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToLower(currencyCode)
	if sym, ok := currencySymbols[code]; ok {
		return sym + amount.StringFixed(2)
	}
	return strings.ToUpper(code) + " " + amount.StringFixed(2)
}

// Renderer turns a Message into a subject and an HTML body
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the message's template
func (r *Renderer) Render(msg Message) (subject, html string, err error) {
	subject, err = subjectFor(msg)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, msg.Template+".html", msg.Data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", msg.Template, err)
	}
	return subject, buf.String(), nil
}

func subjectFor(msg Message) (string, error) {
	switch msg.Template {
	case TemplateNewsletterWelcome:
		return "¡Bienvenido a Raqueto! 🎾 Aquí tienes tu código de descuento exclusivo", nil
	case TemplateOrderPlaced:
		if d, ok := msg.Data.(OrderData); ok {
			return fmt.Sprintf("Confirmación de tu pedido #%d", d.DisplayID), nil
		}
	case TemplateOrderPlacedAdmin:
		if d, ok := msg.Data.(OrderData); ok {
			return fmt.Sprintf("🔔 Nueva orden #%d - %s", d.DisplayID, d.Total), nil
		}
	default:
		return "", fmt.Errorf("unknown email template %q", msg.Template)
	}
	return "", fmt.Errorf("template %s expects OrderData, got %T", msg.Template, msg.Data)
}
