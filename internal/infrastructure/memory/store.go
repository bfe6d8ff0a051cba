// Package memory implementa los puertos de repositorio en memoria. Lo usan los tests de
// casos de uso y handlers; el TxRunner restaura una copia de los datos si fn falla.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

type cartKey struct {
	customerID int64
	productID  int64
}

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex // serializa transacciones
	mu   sync.Mutex // protege los mapas

	seq        int64
	users      map[int64]*entity.User
	profiles   map[int64]*entity.Profile // por user_id
	customers  map[int64]*entity.Customer
	tokens     map[int64]*entity.RefreshToken
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	cart       map[cartKey]*entity.CartItem
	orders     map[int64]*entity.Order

	// Now reloj usado para timestamps; reemplazable en tests.
	Now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:      map[int64]*entity.User{},
		profiles:   map[int64]*entity.Profile{},
		customers:  map[int64]*entity.Customer{},
		tokens:     map[int64]*entity.RefreshToken{},
		categories: map[int64]*entity.Category{},
		products:   map[int64]*entity.Product{},
		cart:       map[cartKey]*entity.CartItem{},
		orders:     map[int64]*entity.Order{},
		Now:        time.Now,
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	seq        int64
	users      map[int64]*entity.User
	profiles   map[int64]*entity.Profile
	customers  map[int64]*entity.Customer
	tokens     map[int64]*entity.RefreshToken
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	cart       map[cartKey]*entity.CartItem
	orders     map[int64]*entity.Order
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		seq:        s.seq,
		users:      cloneMap(s.users, cloneUser),
		profiles:   cloneMap(s.profiles, func(p *entity.Profile) *entity.Profile { c := *p; return &c }),
		customers:  cloneMap(s.customers, func(c *entity.Customer) *entity.Customer { x := *c; return &x }),
		tokens:     cloneMap(s.tokens, func(t *entity.RefreshToken) *entity.RefreshToken { x := *t; return &x }),
		categories: cloneMap(s.categories, func(c *entity.Category) *entity.Category { x := *c; return &x }),
		products:   cloneMap(s.products, func(p *entity.Product) *entity.Product { x := *p; return &x }),
		cart:       cloneMap(s.cart, cloneCartItem),
		orders:     cloneMap(s.orders, cloneOrder),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.users = snap.users
	s.profiles = snap.profiles
	s.customers = snap.customers
	s.tokens = snap.tokens
	s.categories = snap.categories
	s.products = snap.products
	s.cart = snap.cart
	s.orders = snap.orders
}

func cloneMap[K comparable, V any](m map[K]V, clone func(V) V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Profile, c.Customer = nil, nil
	return &c
}

func cloneCartItem(it *entity.CartItem) *entity.CartItem {
	c := *it
	c.Product = nil
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}
