package equipment

import (
	"context"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

// TxRunner ejecuta el alta/edición de un equipo (fila padre + unidades) como una sola unidad de trabajo.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		equipRepo repository.EquipmentRepository,
		unitRepo repository.EquipmentUnitRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// SKUAllocator genera candidatos de SKU (ver domain/sku).
type SKUAllocator interface {
	Next() string
}
