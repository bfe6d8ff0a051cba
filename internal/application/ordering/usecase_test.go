package ordering_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

const (
	customerID int64 = 500
	otherID    int64 = 501
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ordering.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt ordering.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []ordering.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ordering.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeReceipts struct{}

func (fakeReceipts) GenerateReceiptPDF(_ context.Context, o *entity.Order) ([]byte, error) {
	return []byte("%PDF-" + string(o.Status)), nil
}

type fixture struct {
	uc       *ordering.OrderUseCase
	products *memory.ProductRepo
	cart     *memory.CartRepo
	orders   *memory.OrderRepo
	pub      *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		products: memory.NewProductRepository(store),
		cart:     memory.NewCartRepository(store),
		orders:   memory.NewOrderRepository(store),
		pub:      &recordingPublisher{},
	}
	f.uc = ordering.NewOrderUseCase(memory.NewTxRunner(store), f.orders, f.pub, fakeReceipts{}, logger.Nop())
	return f
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock, IsAvailable: true}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) addToCart(t *testing.T, customer, productID int64, qty int) {
	t.Helper()
	_, err := f.cart.AddItem(context.Background(), customer, productID, qty)
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) checkout(t *testing.T, customer int64) *dto.OrderResponse {
	t.Helper()
	o, err := f.uc.CreateOrder(context.Background(), customer, dto.CreateOrderRequest{ShippingAddress: "Calle 1"})
	require.NoError(t, err)
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DescuentaStockYVaciaCarrito(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 2)

	o := f.checkout(t, customerID)

	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, "PENDING", o.Status)
	assert.Equal(t, "PENDING", o.PaymentStatus)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Taza", o.Items[0].ProductName)
	assert.Equal(t, 3, f.stock(t, p.ID))

	items, err := f.cart.ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []ordering.EventType{ordering.EventOrderCreated}, f.pub.types())
}

func TestCreateOrder_CarritoVacio(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateOrder(context.Background(), customerID, dto.CreateOrderRequest{ShippingAddress: "x"})

	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	assert.Empty(t, f.pub.types())
}

func TestCreateOrder_StockInsuficienteNoDejaEfectos(t *testing.T) {
	f := newFixture(t)
	ok := f.product(t, "Plato", "3.00", 10)
	short := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, ok.ID, 1)
	f.addToCart(t, customerID, short.ID, 4)

	// el stock baja después de armar el carrito
	require.NoError(t, f.products.AdjustStock(context.Background(), short.ID, -3))

	_, err := f.uc.CreateOrder(context.Background(), customerID, dto.CreateOrderRequest{ShippingAddress: "x"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, `Insufficient stock for "Taza". Available: 2, In cart: 4`, err.Error())
	assert.Equal(t, 10, f.stock(t, ok.ID))
	assert.Equal(t, 2, f.stock(t, short.ID))
	items, _ := f.cart.ListByCustomer(context.Background(), customerID)
	assert.Len(t, items, 2)
	n, _ := f.orders.Count(context.Background(), repositoryAll())
	assert.Zero(t, n)
}

func TestCreateOrder_ProductoBorradoODesactivado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)
	_, err := f.products.SoftDelete(context.Background(), p.ID)
	require.NoError(t, err)

	_, err = f.uc.CreateOrder(context.Background(), customerID, dto.CreateOrderRequest{ShippingAddress: "x"})

	assert.Equal(t, `Product "Taza" is no longer available`, err.Error())
}

func TestCreateOrder_PrecioCongelado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)
	o := f.checkout(t, customerID)

	p.Price = decimal.RequireFromString("99.00")
	require.NoError(t, f.products.Update(ctx, p))

	got, err := f.uc.FindOne(ctx, o.ID, ordering.Caller{CustomerID: customerID, Role: entity.RoleCustomer})
	require.NoError(t, err)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestCreateOrder_FalloAlPublicarNoFallaElPedido(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker caído")
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)

	o := f.checkout(t, customerID)

	assert.NotZero(t, o.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_RestauraStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 2)
	o := f.checkout(t, customerID)

	out, err := f.uc.CancelOrder(context.Background(), o.ID, customerID)

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", out.Status)
	assert.Equal(t, 5, f.stock(t, p.ID))
	assert.Equal(t, []ordering.EventType{ordering.EventOrderCreated, ordering.EventOrderCancelled}, f.pub.types())
}

func TestCancelOrder_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)
	o := f.checkout(t, customerID)

	_, err := f.uc.CancelOrder(ctx, 9999, customerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Order with ID 9999 not found", err.Error())

	_, err = f.uc.CancelOrder(ctx, o.ID, otherID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.uc.CancelOrder(ctx, o.ID, customerID)
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(ctx, o.ID, customerID)
	assert.ErrorIs(t, err, domain.ErrOrderNotCancelable)
	assert.Equal(t, 5, f.stock(t, p.ID))
}

func TestCancelOrder_ConcurrenteRestauraUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 3)
	o := f.checkout(t, customerID)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.CancelOrder(context.Background(), o.ID, customerID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 5, f.stock(t, p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateOrderStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOrderStatus_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)
	o := f.checkout(t, customerID)

	for _, st := range []string{"CONFIRMED", "PROCESSING", "SHIPPED", "DELIVERED"} {
		out, err := f.uc.UpdateOrderStatus(ctx, o.ID, st)
		require.NoError(t, err, st)
		assert.Equal(t, st, out.Status)
	}

	_, err := f.uc.UpdateOrderStatus(ctx, o.ID, "PENDING")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Cannot change order status from DELIVERED to PENDING", err.Error())
}

func TestUpdateOrderStatus_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateOrderStatus(context.Background(), 1, "LOST")
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
}

func TestUpdateOrderStatus_CancelarDesdeConfirmadoRestauraStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 2)
	o := f.checkout(t, customerID)

	_, err := f.uc.UpdateOrderStatus(ctx, o.ID, "CONFIRMED")
	require.NoError(t, err)
	_, err = f.uc.UpdateOrderStatus(ctx, o.ID, "CANCELLED")
	require.NoError(t, err)

	assert.Equal(t, 5, f.stock(t, p.ID))
	_, err = f.uc.UpdateOrderStatus(ctx, o.ID, "CONFIRMED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestFindOne_Acceso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)
	o := f.checkout(t, customerID)

	_, err := f.uc.FindOne(ctx, o.ID, ordering.Caller{CustomerID: otherID, Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.uc.FindOne(ctx, o.ID, ordering.Caller{Role: entity.RoleAdmin})
	assert.NoError(t, err)

	_, err = f.uc.FindOne(ctx, o.ID+100, ordering.Caller{Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindMyOrdersYFindAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "1.00", 50)
	for i := 0; i < 3; i++ {
		f.addToCart(t, customerID, p.ID, 1)
		f.checkout(t, customerID)
	}
	f.addToCart(t, otherID, p.ID, 1)
	other := f.checkout(t, otherID)
	_, err := f.uc.CancelOrder(ctx, other.ID, otherID)
	require.NoError(t, err)

	mine, err := f.uc.FindMyOrders(ctx, customerID, dto.PageQuery{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, mine.TotalItems)
	assert.Equal(t, 2, mine.TotalPages)
	assert.Len(t, mine.Data, 2)
	assert.Greater(t, mine.Data[0].ID, mine.Data[1].ID)

	all, err := f.uc.FindAllPaginated(ctx, dto.OrderPageQuery{Status: "CANCELLED"})
	require.NoError(t, err)
	require.Equal(t, 1, all.TotalItems)
	assert.Equal(t, other.ID, all.Data[0].ID)

	_, err = f.uc.FindAllPaginated(ctx, dto.OrderPageQuery{Status: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
}

func TestReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Taza", "10.00", 5)
	f.addToCart(t, customerID, p.ID, 1)
	o := f.checkout(t, customerID)

	pdf, name, err := f.uc.Receipt(ctx, o.ID, ordering.Caller{CustomerID: customerID, Role: entity.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-PENDING", string(pdf))
	assert.Contains(t, name, "order-")

	_, _, err = f.uc.Receipt(ctx, o.ID, ordering.Caller{CustomerID: otherID, Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}
