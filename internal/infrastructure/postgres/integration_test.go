package postgres_test

import (
	"context"
	"math"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-api/pkg/config"
)

// testPool conecta a TEST_DATABASE_URL, aplica migraciones y deja las tablas vacías.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE order_items, orders, cart_items, products, categories,
		refresh_tokens, customers, profiles, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type pgFixture struct {
	pool       *pgxpool.Pool
	authUC     *auth.AuthUseCase
	productUC  *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
	cartUC     *usecase.CartUseCase
	orderUC    *ordering.OrderUseCase
	users      *postgres.UserRepo
}

func newPGFixture(t *testing.T) *pgFixture {
	pool := testPool(t)
	tx := postgres.NewTxRunner(pool)
	users := postgres.NewUserRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)
	return &pgFixture{
		pool: pool,
		authUC: auth.NewAuthUseCase(users, postgres.NewRefreshTokenRepository(pool), tx,
			auth.JWTConfig{Secret: "integration-secret", ExpMinutes: 5, Issuer: "test"}, nil),
		productUC:  usecase.NewProductUseCase(products, categories),
		categoryUC: usecase.NewCategoryUseCase(categories),
		cartUC:     usecase.NewCartUseCase(postgres.NewCartRepository(pool), products),
		orderUC:    ordering.NewOrderUseCase(tx, postgres.NewOrderRepository(pool), nil, nil, nil),
		users:      users,
	}
}

func (f *pgFixture) customer(t *testing.T, email string) int64 {
	t.Helper()
	ctx := context.Background()
	u, err := f.authUC.Register(ctx, dto.RegisterRequest{Email: email, Password: "secret123", FirstName: "Ana", LastName: "Pérez"})
	require.NoError(t, err)
	c, err := f.users.FindCustomerByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.ID
}

func (f *pgFixture) product(t *testing.T, name, price string, stock int) int64 {
	t.Helper()
	p, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name: name, Price: decimal.RequireFromString(price), Stock: &stock,
	})
	require.NoError(t, err)
	return p.ID
}

func TestPostgres_RegistroDuplicado(t *testing.T) {
	f := newPGFixture(t)
	f.customer(t, "ana@example.com")

	_, err := f.authUC.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "secret123", FirstName: "Ana", LastName: "Pérez",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestPostgres_CheckoutYCancelacion(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	customerID := f.customer(t, "ana@example.com")
	productID := f.product(t, "Taza", "10.00", 5)

	_, err := f.cartUC.AddItem(ctx, customerID, productID, 2)
	require.NoError(t, err)

	order, err := f.orderUC.CreateOrder(ctx, customerID, dto.CreateOrderRequest{ShippingAddress: "Calle 1"})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20").Equal(order.TotalAmount))

	p, err := f.productUC.FindOne(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)

	cart, err := f.cartUC.GetCart(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = f.orderUC.CancelOrder(ctx, order.ID, customerID)
	require.NoError(t, err)
	p, err = f.productUC.FindOne(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestPostgres_StockInsuficienteHaceRollback(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	customerID := f.customer(t, "ana@example.com")
	productID := f.product(t, "Taza", "10.00", 1)

	_, err := f.cartUC.AddItem(ctx, customerID, productID, 1)
	require.NoError(t, err)
	_, err = f.productUC.Update(ctx, productID, dto.UpdateProductRequest{Stock: intPtr(0)})
	require.NoError(t, err)

	_, err = f.orderUC.CreateOrder(ctx, customerID, dto.CreateOrderRequest{ShippingAddress: "Calle 1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cart, err := f.cartUC.GetCart(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestPostgres_CheckoutsConcurrentesNoSobrevenden(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	productID := f.product(t, "Taza", "10.00", 3)

	const buyers = 5
	customers := make([]int64, buyers)
	for i := range customers {
		customers[i] = f.customer(t, "c"+string(rune('a'+i))+"@example.com")
		_, err := f.cartUC.AddItem(ctx, customers[i], productID, 1)
		require.NoError(t, err)
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, id := range customers {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()
			if _, err := f.orderUC.CreateOrder(ctx, customerID, dto.CreateOrderRequest{ShippingAddress: "Calle 1"}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	p, err := f.productUC.FindOne(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestPostgres_Dashboard(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	customerID := f.customer(t, "ana@example.com")
	productID := f.product(t, "Taza", "10.00", 5)
	_, err := f.cartUC.AddItem(ctx, customerID, productID, 2)
	require.NoError(t, err)
	_, err = f.orderUC.CreateOrder(ctx, customerID, dto.CreateOrderRequest{ShippingAddress: "Calle 1"})
	require.NoError(t, err)

	summary, err := analytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(f.pool)).GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.OrdersByStatus["PENDING"])
	require.NotEmpty(t, summary.TopProducts)
	assert.Equal(t, "Taza", summary.TopProducts[0].ProductName)
}

func TestPostgres_BusquedaComodinesLiterales(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	f.product(t, "Descuento 50%", "10.00", 1)
	f.product(t, "Descuento 500", "10.00", 1)
	f.product(t, "taza_azul", "10.00", 1)
	f.product(t, "tazaXazul", "10.00", 1)

	list, err := f.productUC.List(ctx, dto.ProductListQuery{Search: "50%"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Descuento 50%", list[0].Name)

	list, err = f.productUC.List(ctx, dto.ProductListQuery{Search: "a_a"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "taza_azul", list[0].Name)
}

func TestPostgres_SkipSinTake(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	f.product(t, "Uno", "1.00", 1)
	f.product(t, "Dos", "1.00", 1)
	f.product(t, "Tres", "1.00", 1)

	list, err := f.productUC.List(ctx, dto.ProductListQuery{SkipTake: dto.SkipTake{Skip: 1}})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPostgres_PaginaMuyAltaDevuelveVacio(t *testing.T) {
	f := newPGFixture(t)
	f.product(t, "Uno", "1.00", 1)

	page, err := f.productUC.Paginate(context.Background(), dto.ProductPageQuery{
		PageQuery: dto.PageQuery{CurrentPage: math.MaxInt / 5, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.TotalPages)
}

func intPtr(v int) *int { return &v }
