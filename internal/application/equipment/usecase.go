package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/ports"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

// UseCase alta, edición y consultas de equipos.
type UseCase struct {
	txRunner     TxRunner
	equipRepo    repository.EquipmentRepository
	unitRepo     repository.EquipmentUnitRepository
	customerRepo repository.CustomerRepository
	maintRepo    repository.MaintenanceRepository
	skus         SKUAllocator
	metrics      ports.Metrics
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	equipRepo repository.EquipmentRepository,
	unitRepo repository.EquipmentUnitRepository,
	customerRepo repository.CustomerRepository,
	maintRepo repository.MaintenanceRepository,
	skus SKUAllocator,
	metrics ports.Metrics,
	log *logger.Logger,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:     txRunner,
		equipRepo:    equipRepo,
		unitRepo:     unitRepo,
		customerRepo: customerRepo,
		maintRepo:    maintRepo,
		skus:         skus,
		metrics:      metrics,
		log:          log,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CreateEquipment registra un equipo. Con SKU vacío lo genera y, ante un choque de unicidad,
// genera otro y reintenta una sola vez. Un SKU informado por el usuario nunca se reintenta.
// Con PerUnit crea además una EquipmentUnit por unidad en la misma unidad de trabajo.
func (uc *UseCase) CreateEquipment(ctx context.Context, ownerID string, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	warrantyUntil := in.WarrantyUntil.TimePtr()
	if in.PerUnit {
		if warrantyUntil != nil {
			return nil, domain.NewValidationError("warranty_until", "no se admite junto con garantía por unidad")
		}
		if in.Quantity == 0 {
			return nil, domain.NewValidationError("quantity", "debe ser mayor que cero con garantía por unidad")
		}
		if len(in.Units) != in.Quantity {
			return nil, domain.NewValidationError("units", fmt.Sprintf("se informaron %d unidades para una cantidad de %d", len(in.Units), in.Quantity))
		}
	} else if len(in.Units) > 0 {
		return nil, domain.NewValidationError("units", "solo se admiten con garantía por unidad")
	}

	now := uc.now()
	eq := &entity.Equipment{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Name:          name,
		Serial:        strings.TrimSpace(in.Serial),
		SKU:           strings.TrimSpace(in.SKU),
		CustomerID:    in.CustomerID,
		Model:         in.Model,
		Location:      in.Location,
		WarrantyUntil: warrantyUntil,
		PerUnit:       in.PerUnit,
		Quantity:      in.Quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, u := range in.Units {
		eq.Units = append(eq.Units, entity.EquipmentUnit{
			ID:            uuid.New().String(),
			EquipmentID:   eq.ID,
			Serial:        strings.TrimSpace(u.Serial),
			WarrantyUntil: u.WarrantyUntil.TimePtr(),
			CreatedAt:     now,
		})
	}

	generated := eq.SKU == ""
	for attempt := 1; ; attempt++ {
		if generated {
			eq.SKU = uc.skus.Next()
		}
		err := uc.insert(ctx, eq)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		if !generated {
			return nil, &domain.DuplicateSKUError{SKU: eq.SKU}
		}
		if attempt == 2 {
			uc.log.Warn().Str("sku", eq.SKU).Msg("sku generado duplicado después del reintento")
			return nil, &domain.DuplicateSKUError{SKU: eq.SKU, Generated: true}
		}
		uc.metrics.SKURetry()
		uc.log.Warn().Str("sku", eq.SKU).Msg("sku generado duplicado, reintentando con uno nuevo")
	}

	uc.metrics.EquipmentCreated(generated)
	uc.log.Info().Str("equipment_id", eq.ID).Str("sku", eq.SKU).Int("quantity", eq.Quantity).Msg("equipo registrado")
	out := dto.ToEquipmentResponse(eq, now)
	return &out, nil
}

// insert corre una unidad de trabajo completa: un duplicado aborta la transacción en PostgreSQL,
// así que cada intento usa una nueva.
func (uc *UseCase) insert(ctx context.Context, eq *entity.Equipment) error {
	return uc.txRunner.RunRegistration(ctx, func(
		equipRepo repository.EquipmentRepository,
		unitRepo repository.EquipmentUnitRepository,
		customerRepo repository.CustomerRepository,
	) error {
		holder, err := holderName(ctx, customerRepo, eq.OwnerID, eq.CustomerID)
		if err != nil {
			return err
		}
		eq.CustomerName = holder
		if err := equipRepo.Create(ctx, eq); err != nil {
			return domain.Storage("insert equipment", err)
		}
		for i := range eq.Units {
			if err := unitRepo.Create(ctx, &eq.Units[i]); err != nil {
				return domain.Storage("insert equipment unit", err)
			}
		}
		return nil
	})
}

// UpdateEquipment sobrescribe los campos editables. No toca el historial de movimientos
// ni vuelve a generar el SKU.
func (uc *UseCase) UpdateEquipment(ctx context.Context, ownerID, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es obligatorio")
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	warrantyUntil := in.WarrantyUntil.TimePtr()
	now := uc.now()

	var eq *entity.Equipment
	err := uc.txRunner.RunRegistration(ctx, func(
		equipRepo repository.EquipmentRepository,
		unitRepo repository.EquipmentUnitRepository,
		customerRepo repository.CustomerRepository,
	) error {
		var err error
		eq, err = equipRepo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return domain.Storage("get equipment", err)
		}
		if eq == nil {
			return domain.NotFound("equipment", id)
		}
		if eq.PerUnit {
			if warrantyUntil != nil {
				return domain.NewValidationError("warranty_until", "el equipo tiene garantía por unidad")
			}
			units, err := unitRepo.ListByEquipment(ctx, eq.ID)
			if err != nil {
				return domain.Storage("list equipment units", err)
			}
			if in.Quantity != len(units) {
				return domain.NewValidationError("quantity", fmt.Sprintf("debe coincidir con las %d unidades registradas", len(units)))
			}
			eq.Units = units
		}
		holder, err := holderName(ctx, customerRepo, ownerID, in.CustomerID)
		if err != nil {
			return err
		}

		eq.Name = name
		eq.Serial = strings.TrimSpace(in.Serial)
		eq.SKU = sku
		eq.CustomerID = in.CustomerID
		eq.CustomerName = holder
		eq.Model = in.Model
		eq.Location = in.Location
		eq.WarrantyUntil = warrantyUntil
		eq.Quantity = in.Quantity
		eq.UpdatedAt = now
		if err := equipRepo.Update(ctx, eq); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return &domain.DuplicateSKUError{SKU: sku}
			}
			return domain.Storage("update equipment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToEquipmentResponse(eq, now)
	return &out, nil
}

// holderName verifica que el cliente exista y devuelve su razón social. Vacío = empresa operadora.
func holderName(ctx context.Context, customerRepo repository.CustomerRepository, ownerID, customerID string) (string, error) {
	if customerID == "" {
		return "", nil
	}
	c, err := customerRepo.GetByID(ctx, ownerID, customerID)
	if err != nil {
		return "", domain.Storage("get customer", err)
	}
	if c == nil {
		return "", domain.NotFound("customer", customerID)
	}
	return c.CompanyName, nil
}
