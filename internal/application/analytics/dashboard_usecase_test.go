package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)

func seedOrder(t *testing.T, store *memory.Store, at time.Time, status entity.OrderStatus, items ...entity.OrderItem) {
	t.Helper()
	store.Now = func() time.Time { return at }
	repo := memory.NewOrderRepository(store)
	o := &entity.Order{CustomerID: 1, Status: status, PaymentStatus: entity.PaymentPending, Items: items}
	o.TotalAmount = entity.SumItems(items)
	require.NoError(t, repo.Create(context.Background(), o))
}

func line(productID int64, name string, qty int, price string) entity.OrderItem {
	return entity.OrderItem{ProductID: productID, ProductName: name, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestGetSummary(t *testing.T) {
	store := memory.NewStore()
	// hoy
	seedOrder(t, store, fixedNow.Add(-time.Hour), entity.OrderPending, line(1, "Taza", 2, "10.00"))
	seedOrder(t, store, fixedNow.Add(-2*time.Hour), entity.OrderCancelled, line(2, "Plato", 9, "1.00"))
	// este mes, otro día
	seedOrder(t, store, fixedNow.AddDate(0, 0, -5), entity.OrderDelivered, line(2, "Plato", 3, "5.00"), line(1, "Taza", 1, "10.00"))
	// mes anterior
	seedOrder(t, store, fixedNow.AddDate(0, -1, 0), entity.OrderShipped, line(3, "Vaso", 50, "1.00"))

	uc := analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(store)).
		WithClock(func() time.Time { return fixedNow })

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, got.TodaySales.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, 1, got.TodayOrders)
	assert.True(t, got.MonthlySales.Equal(decimal.RequireFromString("45")))
	assert.Equal(t, 2, got.MonthlyOrders)
	assert.Equal(t, "October 2026", got.DateLabel)

	assert.Len(t, got.OrdersByStatus, 6)
	assert.Equal(t, 1, got.OrdersByStatus["PENDING"])
	assert.Equal(t, 1, got.OrdersByStatus["CANCELLED"])
	assert.Equal(t, 0, got.OrdersByStatus["CONFIRMED"])

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, "Taza", got.TopProducts[0].ProductName)
	assert.Equal(t, 3, got.TopProducts[0].UnitsSold)
	assert.Equal(t, "Plato", got.TopProducts[1].ProductName)
	assert.Equal(t, 3, got.TopProducts[1].UnitsSold)
}

func TestGetSummary_SinPedidos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(memory.NewStore())).
		WithClock(func() time.Time { return fixedNow })

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, got.TodaySales.IsZero())
	assert.NotNil(t, got.TopProducts)
	assert.Empty(t, got.TopProducts)
}

type failingRepo struct{ repository.AnalyticsRepository }

func (failingRepo) GetSalesMetrics(context.Context, time.Time, time.Time) (decimal.Decimal, int, error) {
	return decimal.Zero, 0, errors.New("db caída")
}

func (failingRepo) CountOrdersByStatus(context.Context) (map[entity.OrderStatus]int, error) {
	return nil, nil
}

func (failingRepo) GetTopProducts(context.Context, time.Time, time.Time, int) ([]repository.TopProductResult, error) {
	return nil, nil
}

func TestGetSummary_PropagaError(t *testing.T) {
	_, err := analytics.NewDashboardUseCase(failingRepo{}).GetSummary(context.Background())
	assert.ErrorContains(t, err, "db caída")
}
