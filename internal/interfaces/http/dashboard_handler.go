package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del panel principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen devuelve los indicadores del panel.
// GET /api/dashboard/resumen
//
// Respuesta: DashboardResumenResponse (ventas del día y del mes, saldo por
// cobrar, entregas pendientes, cocciones en proceso, ventas de los últimos
// seis meses y top de productos). Las fechas se calculan en el servidor.
//
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResumenResponse
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext(), GetEmpresaID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
