package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea de carrito, única por (CustomerID, ProductID).
type CartItem struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Product foto del producto al momento de leer (precio vivo, no congelado).
	Product *CartProduct
}

// CartProduct datos desnormalizados del producto para mostrar el carrito.
type CartProduct struct {
	Name        string
	Price       decimal.Decimal
	Image       *string
	Stock       int
	IsAvailable bool
}

// Subtotal cantidad × precio vivo. Cero si el producto no se cargó.
func (i *CartItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
