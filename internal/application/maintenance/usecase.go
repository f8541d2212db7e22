package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/search"
)

// UseCase órdenes de servicio (OS) sobre equipos.
type UseCase struct {
	repo      repository.MaintenanceRepository
	equipRepo repository.EquipmentRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MaintenanceRepository, equipRepo repository.EquipmentRepository) *UseCase {
	return &UseCase{repo: repo, equipRepo: equipRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ListFilter filtros del listado.
type ListFilter struct {
	Status string
	Search string // número de OS, equipo, cliente, técnico o problema
}

// Create abre una orden. El número OS-000123 lo asigna el repositorio con la secuencia del dueño.
func (uc *UseCase) Create(ctx context.Context, ownerID string, in dto.MaintenanceRequest) (*dto.MaintenanceResponse, error) {
	now := uc.now()
	m := &entity.Maintenance{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	if err := uc.apply(ctx, m, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, domain.Storage("insert maintenance", err)
	}
	return uc.reload(ctx, ownerID, m.ID)
}

// Update sobrescribe la orden. El número de OS no cambia.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, in dto.MaintenanceRequest) (*dto.MaintenanceResponse, error) {
	m, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.Storage("get maintenance", err)
	}
	if m == nil {
		return nil, domain.NotFound("maintenance", id)
	}
	if err := uc.apply(ctx, m, in, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, domain.Storage("update maintenance", err)
	}
	return uc.reload(ctx, ownerID, id)
}

// Delete elimina la orden.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return domain.Storage("delete maintenance", err)
	}
	return nil
}

// List órdenes del dueño, más recientes primero.
func (uc *UseCase) List(ctx context.Context, ownerID string, f ListFilter) ([]dto.MaintenanceResponse, error) {
	if f.Status != "" && !entity.ValidMaintenanceStatus(f.Status) {
		return nil, domain.NewValidationError("status", "desconocido")
	}
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Storage("list maintenances", err)
	}
	match := search.NewMatcher(f.Search)
	out := make([]dto.MaintenanceResponse, 0, len(list))
	for _, m := range list {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if !match.Match(m.OrderNumber, m.EquipmentName, m.CustomerName, m.Technician, m.Problem) {
			continue
		}
		out = append(out, dto.ToMaintenanceResponse(m))
	}
	return out, nil
}

// ListByEquipment historial de servicio de un equipo.
func (uc *UseCase) ListByEquipment(ctx context.Context, ownerID, equipmentID string) ([]dto.MaintenanceResponse, error) {
	if _, err := uc.equipment(ctx, ownerID, equipmentID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByEquipment(ctx, ownerID, equipmentID)
	if err != nil {
		return nil, domain.Storage("list maintenances", err)
	}
	out := make([]dto.MaintenanceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMaintenanceResponse(m))
	}
	return out, nil
}

// apply valida la entrada y la vuelca en m. Una orden concluida sin fecha de conclusión
// toma la fecha de fin o, si tampoco hay, la de hoy.
func (uc *UseCase) apply(ctx context.Context, m *entity.Maintenance, in dto.MaintenanceRequest, now time.Time) error {
	status := in.Status
	if status == "" {
		status = entity.MaintenancePending
	}
	if !entity.ValidMaintenanceStatus(status) {
		return domain.NewValidationError("status", "debe ser pending, in_progress, completed o cancelled")
	}
	if _, err := uc.equipment(ctx, m.OwnerID, in.EquipmentID); err != nil {
		return err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	opened := today
	if d := in.OpenedAt.TimePtr(); d != nil {
		opened = *d
	}
	ended := in.EndedAt.TimePtr()
	if ended != nil && ended.Before(opened) {
		return domain.NewValidationError("ended_at", "no puede ser anterior a la apertura")
	}
	completed := in.CompletedAt.TimePtr()
	if status == entity.MaintenanceCompleted && completed == nil {
		if ended != nil {
			c := *ended
			completed = &c
		} else {
			completed = &today
		}
	}

	m.EquipmentID = in.EquipmentID
	m.OpenedAt = opened
	m.EndedAt = ended
	m.CompletedAt = completed
	m.Technician = strings.TrimSpace(in.Technician)
	m.Problem = strings.TrimSpace(in.Problem)
	m.Notes = strings.TrimSpace(in.Notes)
	m.Status = status
	m.UpdatedAt = now
	return nil
}

func (uc *UseCase) equipment(ctx context.Context, ownerID, id string) (*entity.Equipment, error) {
	if id == "" {
		return nil, domain.NewValidationError("equipment_id", "es obligatorio")
	}
	eq, err := uc.equipRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.Storage("get equipment", err)
	}
	if eq == nil {
		return nil, domain.NotFound("equipment", id)
	}
	return eq, nil
}

func (uc *UseCase) reload(ctx context.Context, ownerID, id string) (*dto.MaintenanceResponse, error) {
	m, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.Storage("get maintenance", err)
	}
	if m == nil {
		return nil, domain.NotFound("maintenance", id)
	}
	out := dto.ToMaintenanceResponse(m)
	return &out, nil
}
