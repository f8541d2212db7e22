package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
)

// ReportHandler exportación de reportes en PDF o Excel (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Download godoc
// @Summary      Descargar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind    path   string  true   "equipments | maintenances | customers | warranties"
// @Param        format  query  string  false  "pdf (default) | xlsx"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind} [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	f, err := h.uc.Generate(c.UserContext(), owner, report.Kind(c.Params("kind")), report.Format(c.Query("format")))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}
