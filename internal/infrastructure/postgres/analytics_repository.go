package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de administración.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesMetrics ingresos y número de pedidos no cancelados en [startDate, endDate).
// Usa COALESCE para devolver cero si no hay pedidos en el período.
func (r *AnalyticsRepo) GetSalesMetrics(
	ctx context.Context,
	startDate, endDate time.Time,
) (revenue decimal.Decimal, orders int, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(o.total_amount), 0) AS revenue,
	    COUNT(*)                         AS orders
	FROM orders o
	WHERE o.created_at >= $1
	  AND o.created_at <  $2
	  AND o.status <> 'CANCELLED'`

	err = r.pool.QueryRow(ctx, query, startDate, endDate).Scan(&revenue, &orders)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, orders, nil
}

// CountOrdersByStatus número de pedidos por estado.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountOrdersByStatus: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.OrderStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountOrdersByStatus scan: %w", err)
		}
		out[entity.OrderStatus(status)] = n
	}
	return out, rows.Err()
}

// GetTopProducts los `limit` productos con más unidades vendidas en el período.
// El nombre sale de la línea congelada para no depender de productos borrados.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	startDate, endDate time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    oi.product_id,
	    MAX(oi.product_name)               AS product_name,
	    SUM(oi.quantity)                   AS units_sold,
	    SUM(oi.quantity * oi.unit_price)   AS revenue
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.created_at >= $1
	  AND o.created_at <  $2
	  AND o.status <> 'CANCELLED'
	GROUP BY oi.product_id
	ORDER BY units_sold DESC, revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	results := make([]repository.TopProductResult, 0, limit)
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
