package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// CartRepository líneas de carrito por cliente. Las lecturas incluyen la foto del producto.
type CartRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CartItem, error)
	FindItem(ctx context.Context, customerID, productID int64) (*entity.CartItem, error)
	// AddItem crea la línea o incrementa su cantidad (upsert).
	AddItem(ctx context.Context, customerID, productID int64, quantity int) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, customerID, productID int64, quantity int) (*entity.CartItem, error)
	RemoveItem(ctx context.Context, customerID, productID int64) error
	Clear(ctx context.Context, customerID int64) error
}
