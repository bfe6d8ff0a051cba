package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TopProductResult resultado crudo de la consulta de productos más vendidos.
type TopProductResult struct {
	ProductID   int64
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard de administración.
// Las implementaciones son read-only. Los pedidos CANCELLED no cuentan como venta.
type AnalyticsRepository interface {
	// GetSalesMetrics ingresos y número de pedidos en [startDate, endDate).
	GetSalesMetrics(ctx context.Context, startDate, endDate time.Time) (revenue decimal.Decimal, orders int, err error)

	// CountOrdersByStatus número de pedidos por estado (todos los tiempos).
	CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)

	// GetTopProducts los `limit` productos con más unidades vendidas en el período.
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
}
