package memory

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ s *Store }

// NewOrderRepository construye el repo.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	o.ID = r.s.nextID()
	o.CreatedAt, o.UpdatedAt = now, now
	for i := range o.Items {
		o.Items[i].ID = r.s.nextID()
		o.Items[i].OrderID = o.ID
		o.Items[i].CreatedAt = now
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		o.Status = status
		o.UpdatedAt = r.s.Now()
	}
	return nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.filter(f)
	sortBy(list, f.ListQuery, func(o *entity.Order) sortKey {
		switch f.OrderBy {
		case "id":
			return sortKey{n: float64(o.ID), id: o.ID}
		case "status":
			return sortKey{s: string(o.Status), id: o.ID}
		case "totalAmount":
			v, _ := o.TotalAmount.Float64()
			return sortKey{n: v, id: o.ID}
		}
		return sortKey{n: float64(o.CreatedAt.UnixNano()), id: o.ID}
	})
	return page(list, f.ListQuery), nil
}

func (r *OrderRepo) Count(_ context.Context, f repository.OrderFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.filter(f)), nil
}

func (r *OrderRepo) filter(f repository.OrderFilter) []*entity.Order {
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out
}

// AnalyticsRepo dashboard calculado sobre los pedidos en memoria.
type AnalyticsRepo struct{ s *Store }

// NewAnalyticsRepository construye el repo.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func (r *AnalyticsRepo) GetSalesMetrics(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	revenue, n := decimal.Zero, 0
	for _, o := range r.s.orders {
		if counts(o, start, end) {
			revenue = revenue.Add(o.TotalAmount)
			n++
		}
	}
	return revenue, n, nil
}

func (r *AnalyticsRepo) CountOrdersByStatus(_ context.Context) (map[entity.OrderStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[entity.OrderStatus]int{}
	for _, o := range r.s.orders {
		out[o.Status]++
	}
	return out, nil
}

func (r *AnalyticsRepo) GetTopProducts(_ context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProduct := map[int64]*repository.TopProductResult{}
	for _, o := range r.s.orders {
		if !counts(o, start, end) {
			continue
		}
		for _, it := range o.Items {
			row, ok := byProduct[it.ProductID]
			if !ok {
				row = &repository.TopProductResult{ProductID: it.ProductID, ProductName: it.ProductName, Revenue: decimal.Zero}
				byProduct[it.ProductID] = row
			}
			row.UnitsSold += it.Quantity
			row.Revenue = row.Revenue.Add(it.Subtotal())
		}
	}
	out := make([]repository.TopProductResult, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sortBy(out, repository.ListQuery{Desc: true}, func(t repository.TopProductResult) sortKey {
		return sortKey{n: float64(t.UnitsSold), id: -t.ProductID}
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func counts(o *entity.Order, start, end time.Time) bool {
	return o.Status != entity.OrderCancelled && !o.CreatedAt.Before(start) && o.CreatedAt.Before(end)
}
