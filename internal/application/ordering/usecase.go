// Package ordering contiene el flujo de pedidos: checkout del carrito, cancelación,
// cambios de estado por administración y consultas.
package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// OrderUseCase casos de uso de pedidos.
//
// Las escrituras (crear, cancelar, cambiar estado) corren en una transacción vía TxRunner;
// los eventos se publican después del commit y un fallo al publicar solo se registra.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	publisher EventPublisher
	receipts  ReceiptGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso. publisher y receipts pueden ser nil.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	publisher EventPublisher,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *OrderUseCase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		publisher: publisher,
		receipts:  receipts,
		log:       log.Named("ordering"),
		now:       time.Now,
	}
}

func (uc *OrderUseCase) publish(ctx context.Context, typ EventType, order *entity.Order, prev entity.OrderStatus) {
	evt := Event{
		ID:             uuid.NewString(),
		Type:           typ,
		OccurredAt:     uc.now().UTC(),
		Order:          order,
		PreviousStatus: prev,
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.log.Error().Err(err).
			Str("event", string(typ)).
			Int64("order_id", order.ID).
			Msg("no se pudo publicar el evento de pedido")
	}
}

// getOwned carga el pedido y verifica acceso: ADMIN o dueño.
func (uc *OrderUseCase) getOwned(ctx context.Context, orderID int64, caller Caller) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order with ID %d not found", orderID)
	}
	if !caller.IsAdmin() && order.CustomerID != caller.CustomerID {
		return nil, domain.ErrAccessDenied
	}
	return order, nil
}
