package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores tipados de abajo hacen match con estos sentinelas vía errors.Is.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
	ErrStorage              = errors.New("falla de almacenamiento")
	ErrPartialFailure       = errors.New("operación aplicada parcialmente")
)

// ValidationError la entrada del llamador viola una precondición. Nunca se reintenta.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validación: " + e.Reason
	}
	return fmt.Sprintf("validación: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateSKUError el SKU choca con uno existente del mismo dueño.
// Generated indica que el SKU lo produjo el asignador (ya se agotó el reintento).
type DuplicateSKUError struct {
	SKU       string
	Generated bool
}

func (e *DuplicateSKUError) Error() string {
	if e.Generated {
		return fmt.Sprintf("sku %q duplicado después de reintentar la generación", e.SKU)
	}
	return fmt.Sprintf("sku %q ya existe", e.SKU)
}

func (e *DuplicateSKUError) Is(target error) bool { return target == ErrDuplicate }

// InsufficientQuantityError una salida pide más de lo disponible. No hubo escrituras.
type InsufficientQuantityError struct {
	Available int
	Requested int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cantidad insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientQuantityError) Is(target error) bool { return target == ErrInsufficientQuantity }

// NotFoundError la entidad referenciada no existe para el dueño.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound atajo para construir un NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StorageError falla de transporte/almacenamiento propagada sin reintentos.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("almacenamiento (%s): %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// PartialFailureError el movimiento quedó registrado pero la cantidad del equipo no se actualizó.
// El llamador debe conciliar usando MovementID.
type PartialFailureError struct {
	MovementID  string
	EquipmentID string
	Err         error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("movimiento %s registrado pero el equipo %s no se actualizó: %v", e.MovementID, e.EquipmentID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

// Storage envuelve err en StorageError salvo que ya sea un error de dominio conocido.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrConflict, ErrForbidden,
		ErrInsufficientQuantity, ErrStorage, ErrPartialFailure, ErrEmailAlreadyExists,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return &StorageError{Op: op, Err: err}
}
