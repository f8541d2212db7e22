package equipment

import (
	"context"
	"strings"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/search"
)

// GetEquipment obtiene un equipo con su estado de garantía (y sus unidades si aplica).
func (uc *UseCase) GetEquipment(ctx context.Context, ownerID, id string) (*dto.EquipmentResponse, error) {
	eq, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToEquipmentResponse(eq, uc.now())
	return &out, nil
}

// ListEquipment lista los equipos del dueño, más recientes primero. Search filtra por nombre,
// serie, SKU, modelo o cliente sin distinguir mayúsculas ni acentos.
func (uc *UseCase) ListEquipment(ctx context.Context, ownerID string, req dto.EquipmentListRequest) (*dto.EquipmentListResponse, error) {
	req.DefaultPage()
	all, err := uc.equipRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Storage("list equipment", err)
	}
	m := search.NewMatcher(req.Search)
	filtered := make([]*entity.Equipment, 0, len(all))
	for _, e := range all {
		if m.Match(e.Name, e.Serial, e.SKU, e.Model, e.CustomerName) {
			filtered = append(filtered, e)
		}
	}

	now := uc.now()
	items := make([]dto.EquipmentResponse, 0, req.Limit)
	for i := req.Offset; i < len(filtered) && len(items) < req.Limit; i++ {
		items = append(items, dto.ToEquipmentResponse(filtered[i], now))
	}
	return &dto.EquipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: len(filtered)},
	}, nil
}

// LookupBySKU rastreo por QR: el contenido del código es el SKU.
func (uc *UseCase) LookupBySKU(ctx context.Context, ownerID, sku string) (*dto.EquipmentLookupResponse, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es obligatorio")
	}
	eq, err := uc.equipRepo.GetBySKU(ctx, ownerID, sku)
	if err != nil {
		return nil, domain.Storage("get equipment by sku", err)
	}
	if eq == nil {
		return nil, domain.NotFound("equipment", sku)
	}
	if err := uc.attachUnits(ctx, eq); err != nil {
		return nil, err
	}

	out := &dto.EquipmentLookupResponse{
		Equipment:    dto.ToEquipmentResponse(eq, uc.now()),
		Maintenances: []dto.MaintenanceResponse{},
	}
	if eq.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(ctx, ownerID, eq.CustomerID)
		if err != nil {
			return nil, domain.Storage("get customer", err)
		}
		if c != nil {
			cr := dto.ToCustomerResponse(c)
			out.Customer = &cr
		}
	}
	list, err := uc.maintRepo.ListByEquipment(ctx, ownerID, eq.ID)
	if err != nil {
		return nil, domain.Storage("list maintenances", err)
	}
	for _, m := range list {
		out.Maintenances = append(out.Maintenances, dto.ToMaintenanceResponse(m))
	}
	return out, nil
}

// ListUnits unidades de un equipo con garantía por unidad, cada una con su estado.
func (uc *UseCase) ListUnits(ctx context.Context, ownerID, id string) ([]dto.EquipmentUnitResponse, error) {
	eq, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.EquipmentUnitResponse, 0, len(eq.Units))
	for i := range eq.Units {
		out = append(out, dto.ToEquipmentUnitResponse(&eq.Units[i], now))
	}
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, ownerID, id string) (*entity.Equipment, error) {
	eq, err := uc.equipRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.Storage("get equipment", err)
	}
	if eq == nil {
		return nil, domain.NotFound("equipment", id)
	}
	if err := uc.attachUnits(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (uc *UseCase) attachUnits(ctx context.Context, eq *entity.Equipment) error {
	if !eq.PerUnit {
		return nil
	}
	units, err := uc.unitRepo.ListByEquipment(ctx, eq.ID)
	if err != nil {
		return domain.Storage("list equipment units", err)
	}
	eq.Units = units
	return nil
}
