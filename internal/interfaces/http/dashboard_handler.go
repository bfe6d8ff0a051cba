package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ecommerce-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// DashboardHandler resumen de ventas para administración.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary godoc
// @Summary      Resumen de ventas (ADMIN)
// @Description  Ventas y pedidos de hoy y del mes, pedidos por estado y top 5 productos del mes.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
