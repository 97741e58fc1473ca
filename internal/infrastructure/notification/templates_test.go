package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *order.Order {
	return &order.Order{
		ID:           uuid.New(),
		DisplayID:    1042,
		Email:        "ana@raqueto.shop",
		CurrencyCode: "eur",
		Items: []order.LineItem{
			{Title: "Head Speed MP", Variant: "L2", Quantity: 2, UnitPrice: decimal.RequireFromString("199.5")},
		},
		ShippingAddress: &order.Address{FirstName: "Ana", LastName: "Ruiz", Address1: "Calle Mayor 1", City: "Madrid", PostalCode: "28013", CountryCode: "es"},
		Subtotal:        decimal.RequireFromString("399"),
		ShippingTotal:   decimal.RequireFromString("4.99"),
		TaxTotal:        decimal.Zero,
		DiscountTotal:   decimal.RequireFromString("10"),
		Total:           decimal.RequireFromString("393.99"),
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "€12.50", FormatMoney(decimal.RequireFromString("12.5"), "EUR"))
	assert.Equal(t, "$3.00", FormatMoney(decimal.NewFromInt(3), "usd"))
	assert.Equal(t, "JPY 100.00", FormatMoney(decimal.NewFromInt(100), "jpy"))
}

func TestNewOrderData(t *testing.T) {
	data := NewOrderData(testOrder())

	assert.Equal(t, 1042, data.DisplayID)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "€199.50", data.Items[0].UnitPrice)
	assert.Equal(t, "€399.00", data.Items[0].Total)
	assert.True(t, data.HasDiscount)
	assert.Equal(t, "€393.99", data.Total)
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("newsletter welcome", func(t *testing.T) {
		subject, html, err := r.Render(Message{
			To:       "ana@raqueto.shop",
			Template: TemplateNewsletterWelcome,
			Data:     WelcomeData{Email: "ana@raqueto.shop", PromoCode: WelcomePromoCode, ShopURL: "https://raqueto.shop"},
		})
		require.NoError(t, err)
		assert.Contains(t, subject, "Bienvenido")
		assert.Contains(t, html, "WELCOME5")
		assert.Contains(t, html, "Hola ana@raqueto.shop")
	})

	t.Run("order placed", func(t *testing.T) {
		subject, html, err := r.Render(Message{Template: TemplateOrderPlaced, Data: NewOrderData(testOrder())})
		require.NoError(t, err)
		assert.Equal(t, "Confirmación de tu pedido #1042", subject)
		assert.Contains(t, html, "Head Speed MP")
		assert.Contains(t, html, "Hola Ana Ruiz")
		assert.Contains(t, html, "-€10.00")
	})

	t.Run("order placed admin", func(t *testing.T) {
		subject, html, err := r.Render(Message{Template: TemplateOrderPlacedAdmin, Data: NewOrderData(testOrder())})
		require.NoError(t, err)
		assert.Equal(t, "🔔 Nueva orden #1042 - €393.99", subject)
		assert.Contains(t, html, "ana@raqueto.shop")
	})

	t.Run("escapes user input", func(t *testing.T) {
		_, html, err := r.Render(Message{
			Template: TemplateNewsletterWelcome,
			Data:     WelcomeData{Email: "<script>x</script>@a.b", PromoCode: WelcomePromoCode},
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>x")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, err := r.Render(Message{Template: "nope"})
		require.Error(t, err)
	})

	t.Run("wrong data type", func(t *testing.T) {
		_, _, err := r.Render(Message{Template: TemplateOrderPlaced, Data: WelcomeData{}})
		require.Error(t, err)
	})
}
