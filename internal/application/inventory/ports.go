package inventory

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.EquipmentMovementRepository,
		customerRepo repository.CustomerRepository,
	) error) error
	// Transactional false si un error de fn no deshace las escrituras ya hechas.
	Transactional() bool
}
