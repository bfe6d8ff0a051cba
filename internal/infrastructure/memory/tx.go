package memory

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ ordering.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones en memoria: serializadas y con rollback por copia.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunOrder ejecuta fn con repos de productos, carrito y pedidos.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.inTx(func() error {
		return fn(NewProductRepository(r.s), NewCartRepository(r.s), NewOrderRepository(r.s))
	})
}

// RunAuth ejecuta fn con repos de usuarios y refresh tokens.
func (r *TxRunner) RunAuth(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
) error) error {
	return r.inTx(func() error {
		return fn(NewUserRepository(r.s), NewRefreshTokenRepository(r.s))
	})
}

func (r *TxRunner) inTx(fn func() error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
