package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.ProductRepository = (*ProductRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// NewCategoryRepository construye el repo.
func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	c.ID = r.s.nextID()
	c.CreatedAt, c.UpdatedAt = now, now
	x := *c
	r.s.categories[c.ID] = &x
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	x := *c
	return &x, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok {
		return nil
	}
	cur.Name = c.Name
	cur.UpdatedAt = r.s.Now()
	c.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	for _, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
		}
	}
	return nil
}

func (r *CategoryRepo) List(_ context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.filter(f)
	sortBy(list, f.ListQuery, func(c *entity.Category) sortKey {
		switch f.OrderBy {
		case "name":
			return sortKey{s: strings.ToLower(c.Name), id: c.ID}
		case "id":
			return sortKey{n: float64(c.ID), id: c.ID}
		case "updatedAt":
			return sortKey{n: float64(c.UpdatedAt.UnixNano()), id: c.ID}
		}
		return sortKey{n: float64(c.CreatedAt.UnixNano()), id: c.ID}
	})
	return page(list, f.ListQuery), nil
}

func (r *CategoryRepo) Count(_ context.Context, f repository.CategoryFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.filter(f)), nil
}

func (r *CategoryRepo) filter(f repository.CategoryFilter) []*entity.Category {
	out := make([]*entity.Category, 0)
	for _, c := range r.s.categories {
		if f.Search != "" && !containsFold(c.Name, f.Search) {
			continue
		}
		x := *c
		out = append(out, &x)
	}
	return out
}

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el repo.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.CategoryID != nil {
		if _, ok := r.s.categories[*p.CategoryID]; !ok {
			return domain.NotFound("Category with ID %d not found", *p.CategoryID)
		}
	}
	now := r.s.Now()
	p.ID = r.s.nextID()
	p.CreatedAt, p.UpdatedAt = now, now
	x := *p
	r.s.products[p.ID] = &x
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	x := *p
	return &x, nil
}

func (r *ProductRepo) GetForUpdate(_ context.Context, ids []int64) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			x := *p
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.IsDeleted() {
		return domain.NotFound("Product with ID %d not found", p.ID)
	}
	if p.CategoryID != nil {
		if _, ok := r.s.categories[*p.CategoryID]; !ok {
			return domain.NotFound("Category with ID %d not found", *p.CategoryID)
		}
	}
	p.UpdatedAt = r.s.Now()
	p.CreatedAt = cur.CreatedAt
	x := *p
	r.s.products[p.ID] = &x
	return nil
}

func (r *ProductRepo) SoftDelete(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.IsDeleted() {
		return nil, nil
	}
	now := r.s.Now()
	p.DeletedAt = &now
	p.IsAvailable = false
	p.UpdatedAt = now
	x := *p
	return &x, nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, productID int64, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.NotFound("Product with ID %d not found", productID)
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = r.s.Now()
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.filter(f)
	sortBy(list, f.ListQuery, func(p *entity.Product) sortKey {
		switch f.OrderBy {
		case "name":
			return sortKey{s: strings.ToLower(p.Name), id: p.ID}
		case "price":
			v, _ := p.Price.Float64()
			return sortKey{n: v, id: p.ID}
		case "stock":
			return sortKey{n: float64(p.Stock), id: p.ID}
		case "id":
			return sortKey{n: float64(p.ID), id: p.ID}
		case "updatedAt":
			return sortKey{n: float64(p.UpdatedAt.UnixNano()), id: p.ID}
		}
		return sortKey{n: float64(p.CreatedAt.UnixNano()), id: p.ID}
	})
	return page(list, f.ListQuery), nil
}

func (r *ProductRepo) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.filter(f)), nil
}

func (r *ProductRepo) filter(f repository.ProductFilter) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.IsDeleted() {
			continue
		}
		if f.Search != "" {
			match := containsFold(p.Name, f.Search)
			if !match && f.SearchInDescription && p.Description != nil {
				match = containsFold(*p.Description, f.Search)
			}
			if !match {
				continue
			}
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.IsAvailable != nil && p.IsAvailable != *f.IsAvailable {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		x := *p
		out = append(out, &x)
	}
	return out
}

// sortKey clave de orden: numérica o texto, con id como desempate.
type sortKey struct {
	n  float64
	s  string
	id int64
}

func (a sortKey) less(b sortKey) bool {
	if a.s != b.s {
		return a.s < b.s
	}
	if a.n != b.n {
		return a.n < b.n
	}
	return a.id < b.id
}

func sortBy[T any](list []T, q repository.ListQuery, key func(T) sortKey) {
	sort.SliceStable(list, func(i, j int) bool {
		if q.Desc {
			return key(list[j]).less(key(list[i]))
		}
		return key(list[i]).less(key(list[j]))
	})
}

func page[T any](list []T, q repository.ListQuery) []T {
	if q.Offset > 0 {
		if q.Offset >= len(list) {
			return list[:0]
		}
		list = list[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(list) {
		list = list[:q.Limit]
	}
	return list
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
