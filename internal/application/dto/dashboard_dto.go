package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/admin/dashboard.
// KPIs del día y del mes en curso, pedidos por estado y Top-5 productos del mes.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – ahora)
	TodaySales  decimal.Decimal `json:"todaySales"`
	TodayOrders int             `json:"todayOrders"`

	// Métricas del mes en curso (día 1 – ahora)
	MonthlySales  decimal.Decimal `json:"monthlySales"`
	MonthlyOrders int             `json:"monthlyOrders"`

	// Pedidos por estado (todos los tiempos); estados sin pedidos aparecen en 0
	OrdersByStatus map[string]int `json:"ordersByStatus"`

	// Top 5 productos por unidades vendidas en el mes
	TopProducts []TopProductDTO `json:"topProducts"`

	DateLabel string `json:"dateLabel"` // ej: "October 2026"
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitsSold   int             `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"`
}
