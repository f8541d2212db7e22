package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/maintenance"
)

// MaintenanceHandler órdenes de servicio (protegido).
type MaintenanceHandler struct {
	uc *maintenance.UseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.UseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir orden de servicio
// @Description  El número OS-000000 lo asigna el sistema. Completed sin fecha de finalización toma la fecha de término o la de hoy.
// @Tags         maintenances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaintenanceRequest  true  "orden"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenances [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	var in dto.MaintenanceRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), owner, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/maintenances/:id
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "maintenance")
	if !ok {
		return err
	}
	var in dto.MaintenanceRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), owner, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/maintenances/:id
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "maintenance")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), owner, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /api/maintenances?status=&search=
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	list, err := h.uc.List(c.UserContext(), owner, maintenance.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
