package entity

import "time"

// Niveles de fidelización.
const (
	CustomerLevelBronze = "BRONZE"
)

// Customer identidad comercial derivada de un User. Su ID es la FK de carrito y pedidos.
type Customer struct {
	ID              int64
	UserID          int64
	Points          int
	Level           string
	Newsletter      bool
	ShippingAddress *string
	BillingAddress  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
