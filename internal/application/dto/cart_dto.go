package dto

import (
	"errors"
	"math"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// maxQuantity tope de la columna quantity (INTEGER).
const maxQuantity = math.MaxInt32

var errQuantityTooLarge = errors.New("quantity must not be greater than 2147483647")

// AddCartItemRequest entrada para agregar un producto al carrito.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  *int  `json:"quantity"` // por defecto 1
}

// Validate productId positivo y quantity >= 1 si viene.
func (r *AddCartItemRequest) Validate() error {
	if r.ProductID <= 0 {
		return errors.New("productId must be a positive number")
	}
	if r.Quantity != nil && *r.Quantity < 1 {
		return errors.New("quantity must not be less than 1")
	}
	if r.Quantity != nil && *r.Quantity > maxQuantity {
		return errQuantityTooLarge
	}
	return nil
}

// Qty cantidad efectiva.
func (r *AddCartItemRequest) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// UpdateCartItemRequest nueva cantidad de la línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Validate quantity >= 1.
func (r *UpdateCartItemRequest) Validate() error {
	if r.Quantity < 1 {
		return errors.New("quantity must not be less than 1")
	}
	if r.Quantity > maxQuantity {
		return errQuantityTooLarge
	}
	return nil
}

// CartProductResponse foto del producto dentro del carrito.
type CartProductResponse struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"isAvailable"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ID        int64                `json:"id"`
	ProductID int64                `json:"productId"`
	Quantity  int                  `json:"quantity"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Product   *CartProductResponse `json:"product"`
}

// CartResponse carrito con totales calculados sobre precios vivos.
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalItems  int                `json:"totalItems"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
}

// NewCartItemResponse mapea una línea.
func NewCartItemResponse(it *entity.CartItem) CartItemResponse {
	out := CartItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	if p := it.Product; p != nil {
		out.Product = &CartProductResponse{
			Name: p.Name, Price: p.Price, Image: p.Image, Stock: p.Stock, IsAvailable: p.IsAvailable,
		}
	}
	return out
}

// NewCartResponse arma el carrito: totalItems = Σ qty, totalAmount = Σ qty × precio.
func NewCartResponse(items []*entity.CartItem) CartResponse {
	out := CartResponse{Items: make([]CartItemResponse, 0, len(items)), TotalAmount: decimal.Zero}
	for _, it := range items {
		out.Items = append(out.Items, NewCartItemResponse(it))
		out.TotalItems += it.Quantity
		out.TotalAmount = out.TotalAmount.Add(it.Subtotal())
	}
	return out
}
