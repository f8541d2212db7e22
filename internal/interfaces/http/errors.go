package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bind parsea el body JSON y valida los tags `validate`. Si falla ya respondió 400.
func bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return check(c, out)
}

// check valida un struct ya poblado (body o query).
func check(c *fiber.Ctx, in any) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	details := make(map[string]any, len(ves))
	for _, ve := range ves {
		details[ve.Field()] = ve.Tag()
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "datos inválidos", Details: details,
	})
}

// pathID :id de la ruta. Un id que no es UUID no puede existir: responde 404 como cualquier id desconocido.
func pathID(c *fiber.Ctx, entity string) (string, bool, error) {
	id := c.Params("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", false, writeError(c, domain.NotFound(entity, id))
	}
	return id, true, nil
}

// writeError traduce errores de dominio a código HTTP y ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		validation   *domain.ValidationError
		duplicateSKU *domain.DuplicateSKUError
		insufficient *domain.InsufficientQuantityError
		partial      *domain.PartialFailureError
		storage      *domain.StorageError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(), Details: map[string]any{"field": validation.Field},
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.As(err, &duplicateSKU):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: "DUPLICATE_SKU", Message: err.Error(),
			Details: map[string]any{"sku": duplicateSKU.SKU, "generated": duplicateSKU.Generated},
		}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.As(err, &insufficient):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: "INSUFFICIENT_QUANTITY", Message: err.Error(),
			Details: map[string]any{"available": insufficient.Available, "requested": insufficient.Requested},
		}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"}
	case errors.As(err, &partial):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code: "PARTIAL_FAILURE", Message: err.Error(),
			Details: map[string]any{"movement_id": partial.MovementID, "equipment_id": partial.EquipmentID},
		}
	case errors.As(err, &storage):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "STORAGE", Message: "falla de almacenamiento"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}
