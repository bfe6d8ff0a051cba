package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros de catálogo. Los productos borrados nunca se listan.
type ProductFilter struct {
	ListQuery
	Search              string // nombre contiene
	SearchInDescription bool   // Search también aplica a la descripción
	CategoryID          *int64
	IsAvailable         *bool
	MinPrice            *decimal.Decimal
	MaxPrice            *decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve también productos borrados; el caso de uso decide la visibilidad.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea las filas (SELECT ... FOR UPDATE) en orden de id ascendente.
	GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id int64) (*entity.Product, error)
	// AdjustStock suma delta al stock. Devuelve domain.ErrInsufficientStock si quedaría negativo.
	AdjustStock(ctx context.Context, productID int64, delta int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
}
