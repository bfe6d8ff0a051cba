package ordering

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// FindOne devuelve el pedido si el llamante es ADMIN o su dueño.
func (uc *OrderUseCase) FindOne(ctx context.Context, orderID int64, caller Caller) (*dto.OrderResponse, error) {
	order, err := uc.getOwned(ctx, orderID, caller)
	if err != nil {
		return nil, err
	}
	out := dto.NewOrderResponse(order)
	return &out, nil
}

// FindMyOrders pedidos del cliente, paginados (más recientes primero por defecto).
func (uc *OrderUseCase) FindMyOrders(ctx context.Context, customerID int64, q dto.PageQuery) (*dto.Page[dto.OrderResponse], error) {
	return uc.paginate(ctx, q, repository.OrderFilter{CustomerID: &customerID})
}

// FindAllPaginated todos los pedidos (ADMIN), con filtro opcional por estado.
func (uc *OrderUseCase) FindAllPaginated(ctx context.Context, q dto.OrderPageQuery) (*dto.Page[dto.OrderResponse], error) {
	filter := repository.OrderFilter{}
	if q.Status != "" {
		st, ok := entity.ParseOrderStatus(q.Status)
		if !ok {
			return nil, domain.ErrInvalidOrderStatus
		}
		filter.Status = &st
	}
	return uc.paginate(ctx, q.PageQuery, filter)
}

func (uc *OrderUseCase) paginate(ctx context.Context, q dto.PageQuery, filter repository.OrderFilter) (*dto.Page[dto.OrderResponse], error) {
	filter.ListQuery = q.ListQuery()
	var (
		list  []*entity.Order
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		list, err = uc.orderRepo.List(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		total, err = uc.orderRepo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	page := dto.NewPage(q, total, dto.NewOrderResponses(list))
	return &page, nil
}
