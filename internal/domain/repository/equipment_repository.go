package repository

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
)

// EquipmentRepository define el puerto de persistencia para Equipment (DIP).
// Todas las consultas van acotadas al dueño: un ID de otro dueño se trata como inexistente.
type EquipmentRepository interface {
	// Create inserta el equipo. Devuelve domain.ErrDuplicate si el SKU ya existe para el dueño.
	Create(ctx context.Context, equipment *entity.Equipment) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, ownerID, id string) (*entity.Equipment, error)
	// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Equipment, error)
	GetBySKU(ctx context.Context, ownerID, sku string) (*entity.Equipment, error)
	// Update sobrescribe los campos editables. domain.ErrDuplicate si el SKU choca.
	Update(ctx context.Context, equipment *entity.Equipment) error
	// AdjustQuantity suma delta a la cantidad de forma atómica y fija el holder (vacío = empresa).
	// Si el resultado sería negativo no escribe nada y devuelve *domain.InsufficientQuantityError.
	AdjustQuantity(ctx context.Context, ownerID, id string, delta int, customerID string) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Equipment, error)
}

// EquipmentUnitRepository unidades de los lotes rastreados por unidad.
type EquipmentUnitRepository interface {
	Create(ctx context.Context, unit *entity.EquipmentUnit) error
	ListByEquipment(ctx context.Context, equipmentID string) ([]entity.EquipmentUnit, error)
}

// EquipmentMovementRepository historial append-only de movimientos. No hay Update ni Delete.
type EquipmentMovementRepository interface {
	Append(ctx context.Context, movement *entity.EquipmentMovement) error
	// ListByEquipment en orden de registro (no por la fecha informada por el usuario).
	ListByEquipment(ctx context.Context, ownerID, equipmentID string) ([]*entity.EquipmentMovement, error)
}
