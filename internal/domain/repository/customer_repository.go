package repository

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Las lecturas rellenan Customer.EquipmentCount.
type CustomerRepository interface {
	// Create devuelve domain.ErrDuplicate si el tax id ya existe para el dueño.
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Customer, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete devuelve domain.ErrConflict si el cliente todavía tiene equipos.
	Delete(ctx context.Context, ownerID, id string) error
}
