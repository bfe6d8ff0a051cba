package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estados del pedido.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses todos los estados en el orden del flujo.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

// Estados de pago. El flujo de pago no está implementado; todo pedido nace PENDING.
const (
	PaymentPending = "PENDING"
)

// orderTransitions transiciones permitidas (solo hacia adelante; CANCELLED es terminal).
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped},
	OrderShipped:    {OrderDelivered},
}

// ParseOrderStatus valida un estado recibido del exterior.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo indica si el cambio de estado es legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order pedido inmutable una vez creado, salvo status.
type Order struct {
	ID              int64
	CustomerID      int64
	Status          OrderStatus
	PaymentStatus   string
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem línea congelada: precio y nombre del producto al momento de la compra.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string
	CreatedAt   time.Time
}

// Subtotal precio unitario congelado × cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumItems Σ(unitPrice × quantity).
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
