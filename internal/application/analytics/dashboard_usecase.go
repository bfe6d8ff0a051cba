// Package analytics contiene los casos de uso de reportes para el panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. GetSalesMetrics(hoy)        → TodaySales + TodayOrders
//  2. GetSalesMetrics(mes)        → MonthlySales + MonthlyOrders
//  3. CountOrdersByStatus         → OrdersByStatus
//  4. GetTopProducts(mes, top 5)  → TopProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: [00:00, mañana 00:00)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	// Mes en curso: [día 1 00:00, mañana 00:00)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		todayRevenue, monthRevenue decimal.Decimal
		todayOrders, monthOrders   int
		byStatus                   map[entity.OrderStatus]int
		top                        []repository.TopProductResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todayRevenue, todayOrders, err = uc.analyticsRepo.GetSalesMetrics(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: métricas de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		monthRevenue, monthOrders, err = uc.analyticsRepo.GetSalesMetrics(gctx, monthStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: métricas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		byStatus, err = uc.analyticsRepo.CountOrdersByStatus(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: pedidos por estado: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		top, err = uc.analyticsRepo.GetTopProducts(gctx, monthStart, todayEnd, dashboardTopProducts)
		if err != nil {
			return fmt.Errorf("dashboard: top productos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	statuses := make(map[string]int, len(entity.OrderStatuses))
	for _, st := range entity.OrderStatuses {
		statuses[string(st)] = byStatus[st]
	}
	products := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		products = append(products, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:     todayRevenue.Round(2),
		TodayOrders:    todayOrders,
		MonthlySales:   monthRevenue.Round(2),
		MonthlyOrders:  monthOrders,
		OrdersByStatus: statuses,
		TopProducts:    products,
		DateLabel:      monthLabel(now),
	}, nil
}

// monthLabel etiqueta legible del mes, ej: "October 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}
