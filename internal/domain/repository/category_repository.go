package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// CategoryFilter filtros de listado de categorías.
type CategoryFilter struct {
	ListQuery
	Search string // contiene, sin distinguir mayúsculas
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CategoryFilter) ([]*entity.Category, error)
	Count(ctx context.Context, filter CategoryFilter) (int, error)
}
