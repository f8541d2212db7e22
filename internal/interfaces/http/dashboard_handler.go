package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/RaphaCalixto/garantia-tech-flow/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary indicadores del panel principal.
// GET /api/dashboard
//
// Respuesta: DashboardDTO (total de equipos, mantenimientos pendientes y del mes, clientes,
// garantías vigentes y por vencer, últimas órdenes, próximos vencimientos, serie de 6 meses).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	summary, err := h.uc.GetSummary(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
