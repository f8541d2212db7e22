package repository

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
)

// MaintenanceRepository define el puerto de persistencia para órdenes de servicio.
// Las lecturas rellenan los campos de equipo y cliente.
type MaintenanceRepository interface {
	// Create asigna OrderNumber con la siguiente secuencia del dueño.
	Create(ctx context.Context, m *entity.Maintenance) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Maintenance, error)
	Update(ctx context.Context, m *entity.Maintenance) error
	Delete(ctx context.Context, ownerID, id string) error
	// ListByOwner más recientes primero (OpenedAt desc).
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Maintenance, error)
	ListByEquipment(ctx context.Context, ownerID, equipmentID string) ([]*entity.Maintenance, error)
}
