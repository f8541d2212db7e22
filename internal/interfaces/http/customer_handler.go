package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/customer"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *customer.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	var in dto.CustomerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), owner, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/customers?search=
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	list, err := h.uc.List(c.UserContext(), owner, c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "customer")
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), owner, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "customer")
	if !ok {
		return err
	}
	var in dto.CustomerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), owner, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/customers/:id (409 si todavía tiene equipos)
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	owner, ok, err := ownerID(c)
	if !ok {
		return err
	}
	id, ok, err := pathID(c, "customer")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), owner, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
