package ordering

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de productos, carrito y pedidos.
// Si fn devuelve error se hace Rollback y no queda ningún efecto.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// EventType tipo de evento de pedido; también es la routing key del exchange.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderCancelled     EventType = "order.cancelled"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// Event evento de dominio emitido después del commit.
type Event struct {
	ID             string
	Type           EventType
	OccurredAt     time.Time
	Order          *entity.Order
	PreviousStatus entity.OrderStatus // solo en status_changed y cancelled
}

// EventPublisher publica eventos de pedido (RabbitMQ en producción).
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

// ReceiptGenerator genera el comprobante PDF de un pedido.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// Caller quién invoca la operación. CustomerID 0 significa sin perfil de cliente.
type Caller struct {
	CustomerID int64
	Role       string
}

// IsAdmin indica rol ADMIN.
func (c Caller) IsAdmin() bool { return c.Role == entity.RoleAdmin }

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
