package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/inventory"
)

// InventoryHandler entradas y salidas de equipos (protegido).
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de equipo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "equipment id"
// @Param        body  body  dto.RegisterMovementRequest  true  "kind (incoming|outgoing), quantity, customer_id (salidas), date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	var in dto.RegisterMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), owner, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements GET /api/equipments/:id/movements (orden de registro)
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "equipment")
	if !ok {
		return err
	}
	list, err := h.uc.ListMovements(c.UserContext(), owner, id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}
