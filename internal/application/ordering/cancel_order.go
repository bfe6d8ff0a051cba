package ordering

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// CancelOrder cancela un pedido PENDING del cliente y devuelve el stock.
// La cabecera se bloquea (FOR UPDATE) para que dos cancelaciones simultáneas no
// devuelvan el stock dos veces.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID, customerID int64) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("Order with ID %d not found", orderID)
		}
		if o.CustomerID != customerID {
			return domain.ErrAccessDenied
		}
		if o.Status != entity.OrderPending {
			return domain.ErrOrderNotCancelable
		}
		if err := transition(ctx, productRepo, orderRepo, o, entity.OrderCancelled); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, EventOrderCancelled, order, entity.OrderPending)
	out := dto.NewOrderResponse(order)
	return &out, nil
}

// UpdateOrderStatus cambio de estado por administración. Solo transiciones hacia adelante;
// pasar a CANCELLED devuelve el stock en la misma transacción.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*dto.OrderResponse, error) {
	next, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, domain.ErrInvalidOrderStatus
	}
	var (
		order *entity.Order
		prev  entity.OrderStatus
	)
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("Order with ID %d not found", orderID)
		}
		if !o.Status.CanTransitionTo(next) {
			return domain.BadRequest("Cannot change order status from %s to %s", o.Status, next)
		}
		prev = o.Status
		if err := transition(ctx, productRepo, orderRepo, o, next); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	typ := EventOrderStatusChanged
	if next == entity.OrderCancelled {
		typ = EventOrderCancelled
	}
	uc.publish(ctx, typ, order, prev)
	out := dto.NewOrderResponse(order)
	return &out, nil
}

// transition persiste el nuevo estado; si es CANCELLED repone el stock de cada línea.
func transition(
	ctx context.Context,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	o *entity.Order,
	next entity.OrderStatus,
) error {
	if err := orderRepo.UpdateStatus(ctx, o.ID, next); err != nil {
		return err
	}
	if next == entity.OrderCancelled {
		for _, it := range o.Items {
			if err := productRepo.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
	}
	o.Status = next
	return nil
}
