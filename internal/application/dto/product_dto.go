package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
	IsAvailable *bool           `json:"isAvailable"` // por defecto true
	Stock       *int            `json:"stock"`       // por defecto 0
	CategoryID  *int64          `json:"categoryId"`
}

// Validate name obligatorio, price y stock no negativos.
func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name should not be empty")
	}
	if r.Price.IsNegative() {
		return errors.New("price must not be less than 0")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return errors.New("stock must not be less than 0")
	}
	if r.CategoryID != nil && *r.CategoryID <= 0 {
		return errors.New("categoryId must be a positive number")
	}
	return nil
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	IsAvailable *bool            `json:"isAvailable"`
	Stock       *int             `json:"stock"`
	CategoryID  *int64           `json:"categoryId"`
}

// Validate mismas reglas que en creación para los campos presentes.
func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name should not be empty")
		}
		r.Name = &n
	}
	if r.Price != nil && r.Price.IsNegative() {
		return errors.New("price must not be less than 0")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return errors.New("stock must not be less than 0")
	}
	if r.CategoryID != nil && *r.CategoryID <= 0 {
		return errors.New("categoryId must be a positive number")
	}
	return nil
}

// ProductFilterQuery filtros comunes a listado y paginación de productos.
type ProductFilterQuery struct {
	CategoryID  *int64           `query:"categoryId"`
	IsAvailable *bool            `query:"isAvailable"`
	MinPrice    *decimal.Decimal `query:"-"` // minPrice, parseo manual
	MaxPrice    *decimal.Decimal `query:"-"` // maxPrice, parseo manual
}

// ProductListQuery listado sin paginar.
type ProductListQuery struct {
	SkipTake
	ProductFilterQuery
	Search string
}

// ProductPageQuery listado paginado.
type ProductPageQuery struct {
	PageQuery
	ProductFilterQuery
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
	IsAvailable bool            `json:"isAvailable"`
	Stock       int             `json:"stock"`
	CategoryID  *int64          `json:"categoryId"`
	DeletedAt   *time.Time      `json:"deletedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewProductResponse mapea la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		IsAvailable: p.IsAvailable,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		DeletedAt:   p.DeletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductResponses mapea una lista.
func NewProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
