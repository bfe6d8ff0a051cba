package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductState estado derivado de DeletedAt + IsAvailable.
type ProductState string

const (
	ProductActive      ProductState = "ACTIVE"
	ProductUnavailable ProductState = "UNAVAILABLE"
	ProductDeleted     ProductState = "DELETED"
)

// Product artículo del catálogo. Stock es un entero ≥ 0 (CHECK en la DB).
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       decimal.Decimal
	Image       *string
	IsAvailable bool
	Stock       int
	DeletedAt   *time.Time
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// State un producto borrado es DELETED aunque IsAvailable siga en true.
func (p *Product) State() ProductState {
	switch {
	case p.DeletedAt != nil:
		return ProductDeleted
	case !p.IsAvailable:
		return ProductUnavailable
	default:
		return ProductActive
	}
}

// IsDeleted indica soft delete.
func (p *Product) IsDeleted() bool {
	return p.State() == ProductDeleted
}

// CanBeSold el producto existe, está disponible y no fue borrado.
func (p *Product) CanBeSold() bool {
	return p.State() == ProductActive
}
