package ordering

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// CreateOrder convierte el carrito del cliente en un pedido.
//
// En una sola transacción:
//  1. Lee el carrito; vacío → "Cart is empty".
//  2. Bloquea los productos (FOR UPDATE, orden por id) y valida disponibilidad y stock
//     contra las filas bloqueadas.
//  3. Congela nombre y precio de cada línea y calcula el total.
//  4. Inserta pedido + líneas, descuenta stock y vacía el carrito.
//
// Cualquier error revierte todo. Tras el commit publica order.created.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, customerID int64, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error {
		items, err := cartRepo.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrCartEmpty
		}

		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		locked, err := productRepo.GetForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.Product, len(locked))
		for _, p := range locked {
			byID[p.ID] = p
		}

		// Se recorre en el orden del carrito para que los mensajes coincidan con lo que ve el cliente.
		lines := make([]entity.OrderItem, 0, len(items))
		for _, it := range items {
			p := byID[it.ProductID]
			if p == nil || !p.CanBeSold() {
				name := ""
				if it.Product != nil {
					name = it.Product.Name
				}
				if p != nil {
					name = p.Name
				}
				return domain.BadRequest("Product \"%s\" is no longer available", name)
			}
			if it.Quantity > p.Stock {
				return domain.BadRequest("Insufficient stock for \"%s\". Available: %d, In cart: %d", p.Name, p.Stock, it.Quantity)
			}
			lines = append(lines, entity.OrderItem{
				ProductID:   p.ID,
				Quantity:    it.Quantity,
				UnitPrice:   p.Price,
				ProductName: p.Name,
			})
		}

		order = &entity.Order{
			CustomerID:      customerID,
			Status:          entity.OrderPending,
			PaymentStatus:   entity.PaymentPending,
			TotalAmount:     entity.SumItems(lines),
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
			Items:           lines,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, line := range lines {
			if err := productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}
		return cartRepo.Clear(ctx, customerID)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, EventOrderCreated, order, "")
	out := dto.NewOrderResponse(order)
	return &out, nil
}
