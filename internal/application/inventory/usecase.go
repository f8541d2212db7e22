package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/ports"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/ledger"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

// RegisterMovementUseCase registra entradas y salidas de equipos: bloquea la fila del equipo
// (SELECT FOR UPDATE), agrega el movimiento al historial y ajusta la cantidad con un delta atómico.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	equipRepo repository.EquipmentRepository
	movRepo   repository.EquipmentMovementRepository
	metrics   ports.Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	equipRepo repository.EquipmentRepository,
	movRepo repository.EquipmentMovementRepository,
	metrics ports.Metrics,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		equipRepo: equipRepo,
		movRepo:   movRepo,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	OwnerID     string
	EquipmentID string
	Kind        string // incoming | outgoing
	Quantity    int
	CustomerID  string // obligatorio en outgoing
	Date        time.Time
	Notes       string
}

// RegisterMovement aplica el movimiento y lo agrega al historial como un único evento.
// Orden de escritura: primero el movimiento, después la cantidad. Si la unidad de trabajo no es
// transaccional y falla la segunda escritura se devuelve *domain.PartialFailureError.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.EquipmentMovement, error) {
	mov := &entity.EquipmentMovement{
		ID:          uuid.New().String(),
		EquipmentID: input.EquipmentID,
		OwnerID:     input.OwnerID,
		Kind:        input.Kind,
		CustomerID:  input.CustomerID,
		Quantity:    input.Quantity,
		Notes:       input.Notes,
		Date:        input.Date,
		CreatedAt:   uc.now(),
	}
	if err := ledger.ValidateMovement(mov); err != nil {
		uc.metrics.MovementRejected("validation")
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.EquipmentMovementRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// Bloquea la fila del equipo para serializar movimientos concurrentes
		eq, err := equipRepo.GetForUpdate(ctx, input.OwnerID, input.EquipmentID)
		if err != nil {
			return domain.Storage("get equipment", err)
		}
		if eq == nil {
			return domain.NotFound("equipment", input.EquipmentID)
		}
		if mov.CustomerID != "" {
			c, err := customerRepo.GetByID(ctx, input.OwnerID, mov.CustomerID)
			if err != nil {
				return domain.Storage("get customer", err)
			}
			if c == nil {
				return domain.NotFound("customer", mov.CustomerID)
			}
		}

		posting, err := ledger.Apply(eq.Quantity, mov)
		if err != nil {
			return err
		}

		if err := movRepo.Append(ctx, mov); err != nil {
			return domain.Storage("append movement", err)
		}
		if _, err := equipRepo.AdjustQuantity(ctx, input.OwnerID, eq.ID, posting.Delta, posting.CustomerID); err != nil {
			if !uc.txRunner.Transactional() {
				return &domain.PartialFailureError{MovementID: mov.ID, EquipmentID: eq.ID, Err: err}
			}
			return domain.Storage("adjust quantity", err)
		}
		return nil
	})
	if err != nil {
		uc.reject(mov, err)
		return nil, err
	}

	uc.metrics.MovementRegistered(mov.Kind, mov.Quantity)
	uc.log.Info().
		Str("equipment_id", mov.EquipmentID).
		Str("movement_id", mov.ID).
		Str("kind", mov.Kind).
		Int("quantity", mov.Quantity).
		Msg("movimiento registrado")
	return mov, nil
}

func (uc *RegisterMovementUseCase) reject(mov *entity.EquipmentMovement, err error) {
	var partial *domain.PartialFailureError
	switch {
	case errors.As(err, &partial):
		uc.metrics.MovementRejected("partial")
		uc.log.Error().Err(err).
			Str("movement_id", partial.MovementID).
			Str("equipment_id", partial.EquipmentID).
			Msg("movimiento registrado sin actualizar la cantidad: requiere conciliación")
	case errors.Is(err, domain.ErrInsufficientQuantity):
		uc.metrics.MovementRejected("insufficient")
	case errors.Is(err, domain.ErrNotFound):
		uc.metrics.MovementRejected("not_found")
	case errors.Is(err, domain.ErrInvalidInput):
		uc.metrics.MovementRejected("validation")
	default:
		uc.metrics.MovementRejected("storage")
		uc.log.Error().Err(err).Str("equipment_id", mov.EquipmentID).Msg("registrar movimiento")
	}
}

// ListMovements historial del equipo en orden de registro.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, ownerID, equipmentID string) ([]*entity.EquipmentMovement, error) {
	eq, err := uc.equipRepo.GetByID(ctx, ownerID, equipmentID)
	if err != nil {
		return nil, domain.Storage("get equipment", err)
	}
	if eq == nil {
		return nil, domain.NotFound("equipment", equipmentID)
	}
	list, err := uc.movRepo.ListByEquipment(ctx, ownerID, equipmentID)
	if err != nil {
		return nil, domain.Storage("list movements", err)
	}
	return list, nil
}
