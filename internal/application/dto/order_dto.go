package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest checkout del carrito.
type CreateOrderRequest struct {
	ShippingAddress string  `json:"shippingAddress"`
	Notes           *string `json:"notes"`
}

// Validate shippingAddress obligatorio.
func (r *CreateOrderRequest) Validate() error {
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
	if r.ShippingAddress == "" {
		return errors.New("shippingAddress should not be empty")
	}
	return nil
}

// UpdateOrderStatusRequest cambio de estado (ADMIN).
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderPageQuery paginado de pedidos con filtro opcional por estado.
type OrderPageQuery struct {
	PageQuery
	Status string
}

// OrderItemResponse línea congelada del pedido.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID              int64               `json:"id"`
	CustomerID      int64               `json:"customerId"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress string              `json:"shippingAddress"`
	Notes           *string             `json:"notes"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Items           []OrderItemResponse `json:"items"`
}

// NewOrderResponse mapea la entidad.
func NewOrderResponse(o *entity.Order) OrderResponse {
	out := OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		PaymentStatus:   o.PaymentStatus,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}

// NewOrderResponses mapea una lista.
func NewOrderResponses(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
