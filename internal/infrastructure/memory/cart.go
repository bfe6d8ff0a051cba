package memory

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo líneas de carrito en memoria.
type CartRepo struct{ s *Store }

// NewCartRepository construye el repo.
func NewCartRepository(s *Store) *CartRepo { return &CartRepo{s: s} }

func (r *CartRepo) ListByCustomer(_ context.Context, customerID int64) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CartItem, 0)
	for k, it := range r.s.cart {
		if k.customerID == customerID {
			out = append(out, r.withProduct(it))
		}
	}
	sortBy(out, repository.ListQuery{Desc: true}, func(it *entity.CartItem) sortKey {
		return sortKey{n: float64(it.CreatedAt.UnixNano()), id: it.ID}
	})
	return out, nil
}

func (r *CartRepo) FindItem(_ context.Context, customerID, productID int64) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cart[cartKey{customerID, productID}]
	if !ok {
		return nil, nil
	}
	return r.withProduct(it), nil
}

func (r *CartRepo) AddItem(_ context.Context, customerID, productID int64, quantity int) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := cartKey{customerID, productID}
	now := r.s.Now()
	if it, ok := r.s.cart[k]; ok {
		it.Quantity += quantity
		it.UpdatedAt = now
		return r.withProduct(it), nil
	}
	it := &entity.CartItem{
		ID: r.s.nextID(), CustomerID: customerID, ProductID: productID, Quantity: quantity,
		CreatedAt: now, UpdatedAt: now,
	}
	r.s.cart[k] = it
	return r.withProduct(it), nil
}

func (r *CartRepo) UpdateQuantity(_ context.Context, customerID, productID int64, quantity int) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cart[cartKey{customerID, productID}]
	if !ok {
		return nil, nil
	}
	it.Quantity = quantity
	it.UpdatedAt = r.s.Now()
	return r.withProduct(it), nil
}

func (r *CartRepo) RemoveItem(_ context.Context, customerID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.cart, cartKey{customerID, productID})
	return nil
}

func (r *CartRepo) Clear(_ context.Context, customerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.cart {
		if k.customerID == customerID {
			delete(r.s.cart, k)
		}
	}
	return nil
}

// withProduct copia la línea con la foto del producto; requiere s.mu tomado.
func (r *CartRepo) withProduct(it *entity.CartItem) *entity.CartItem {
	out := cloneCartItem(it)
	if p, ok := r.s.products[it.ProductID]; ok {
		out.Product = &entity.CartProduct{
			Name: p.Name, Price: p.Price, Image: p.Image, Stock: p.Stock, IsAvailable: p.IsAvailable,
		}
	}
	return out
}
