package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// OrderFilter filtros de listado de pedidos.
type OrderFilter struct {
	ListQuery
	CustomerID *int64
	Status     *entity.OrderStatus
}

// OrderRepository pedidos con sus líneas.
type OrderRepository interface {
	// Create inserta cabecera y líneas; completa IDs y timestamps.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// GetByIDForUpdate bloquea la cabecera del pedido (usar dentro de una transacción).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	Count(ctx context.Context, filter OrderFilter) (int, error)
}
