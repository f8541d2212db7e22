package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/equipment"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/maintenance"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
)

// EquipmentHandler maneja alta, edición, consultas, rastreo QR y etiquetas de equipos (protegido).
type EquipmentHandler struct {
	uc       *equipment.UseCase
	maintUC  *maintenance.UseCase
	reportUC *report.UseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *equipment.UseCase, maintUC *maintenance.UseCase, reportUC *report.UseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, maintUC: maintUC, reportUC: reportUC}
}

// Create godoc
// @Summary      Registrar equipo
// @Description  SKU vacío → lo genera el sistema. per_unit exige una unidad por cada equipo y sin garantía propia.
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "equipo"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipments [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	var in dto.CreateEquipmentRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateEquipment(c.UserContext(), owner, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/equipments/:id (sobrescritura completa)
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	var in dto.UpdateEquipmentRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateEquipment(c.UserContext(), owner, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/equipments/:id
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	out, err := h.uc.GetEquipment(c.UserContext(), owner, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/equipments?search=&limit=20&offset=0
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	req := dto.EquipmentListRequest{
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)},
		Search:      c.Query("search"),
	}
	if ok, err := check(c, &req); !ok {
		return err
	}
	out, err := h.uc.ListEquipment(c.UserContext(), owner, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lookup GET /api/equipments/lookup?sku= (rastreo por QR)
func (h *EquipmentHandler) Lookup(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	out, err := h.uc.LookupBySKU(c.UserContext(), owner, c.Query("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Units GET /api/equipments/:id/units
func (h *EquipmentHandler) Units(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	out, err := h.uc.ListUnits(c.UserContext(), owner, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Maintenances GET /api/equipments/:id/maintenances
func (h *EquipmentHandler) Maintenances(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	out, err := h.maintUC.ListByEquipment(c.UserContext(), owner, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Label GET /api/equipments/:id/label.pdf (etiqueta con QR del SKU)
func (h *EquipmentHandler) Label(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	f, err := h.reportUC.Label(c.UserContext(), owner, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

func sendFile(c *fiber.Ctx, f *report.File) error {
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
