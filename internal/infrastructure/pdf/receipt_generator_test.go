package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"10":         "$10.00",
		"999.999":    "$1,000.00",
		"1234.5":     "$1,234.50",
		"1000000.01": "$1,000,000.01",
		"-25":        "-$25.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	notes := "Dejar en portería"
	order := &entity.Order{
		ID:              42,
		CustomerID:      7,
		Status:          entity.OrderPending,
		PaymentStatus:   entity.PaymentPending,
		TotalAmount:     decimal.RequireFromString("23.00"),
		ShippingAddress: "Calle 1 # 2-3",
		Notes:           &notes,
		CreatedAt:       time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductID: 1, ProductName: "Taza", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: 2, ProductName: "Plato", Quantity: 1, UnitPrice: decimal.RequireFromString("3.00")},
		},
	}

	out, err := NewReceiptGenerator("Tienda").GenerateReceiptPDF(context.Background(), order)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
