// Package analytics contiene el caso de uso del tablero de indicadores (dashboard).
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/warranty"
)

const (
	dashboardRecent   = 3 // últimas órdenes de servicio
	dashboardUpcoming = 5 // próximas garantías a vencer
	dashboardMonths   = 6 // serie de órdenes concluidas
)

// DashboardUseCase arma el resumen del dueño a partir de los listados de equipos,
// órdenes de servicio y clientes.
type DashboardUseCase struct {
	equipRepo    repository.EquipmentRepository
	maintRepo    repository.MaintenanceRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	equipRepo repository.EquipmentRepository,
	maintRepo repository.MaintenanceRepository,
	customerRepo repository.CustomerRepository,
) *DashboardUseCase {
	return &DashboardUseCase{equipRepo: equipRepo, maintRepo: maintRepo, customerRepo: customerRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardDTO del dueño. Las tres lecturas corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardDTO, error) {
	now := uc.now()

	type equipResult struct {
		list []*entity.Equipment
		err  error
	}
	type maintResult struct {
		list []*entity.Maintenance
		err  error
	}
	type customerResult struct {
		list []*entity.Customer
		err  error
	}

	equipCh := make(chan equipResult, 1)
	maintCh := make(chan maintResult, 1)
	customerCh := make(chan customerResult, 1)

	go func() {
		list, err := uc.equipRepo.ListByOwner(ctx, ownerID)
		equipCh <- equipResult{list, err}
	}()
	go func() {
		list, err := uc.maintRepo.ListByOwner(ctx, ownerID)
		maintCh <- maintResult{list, err}
	}()
	go func() {
		list, err := uc.customerRepo.ListByOwner(ctx, ownerID)
		customerCh <- customerResult{list, err}
	}()

	equips := <-equipCh
	maints := <-maintCh
	customers := <-customerCh

	if equips.err != nil {
		return nil, fmt.Errorf("dashboard: equipos: %w", equips.err)
	}
	if maints.err != nil {
		return nil, fmt.Errorf("dashboard: mantenimientos: %w", maints.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}

	out := &dto.DashboardDTO{
		Customers:          len(customers.list),
		RecentMaintenances: []dto.MaintenanceResponse{},
		UpcomingWarranties: []dto.UpcomingWarrantyDTO{},
	}

	// ── Equipos y garantías ──
	var upcoming []*entity.Equipment
	for _, e := range equips.list {
		out.TotalEquipment += e.Quantity
		if e.WarrantyUntil == nil || e.WarrantyUntil.Before(now) {
			continue
		}
		out.UnderWarranty++
		if warranty.Evaluate(e.WarrantyUntil, now).Status == warranty.StatusExpiring {
			out.ExpiringSoon++
		}
		upcoming = append(upcoming, e)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].WarrantyUntil.Before(*upcoming[j].WarrantyUntil)
	})
	for i, e := range upcoming {
		if i == dashboardUpcoming {
			break
		}
		out.UpcomingWarranties = append(out.UpcomingWarranties, dto.UpcomingWarrantyDTO{
			EquipmentID:   e.ID,
			Name:          e.Name,
			SKU:           e.SKU,
			CustomerName:  e.CustomerName,
			WarrantyUntil: dto.NewDate(*e.WarrantyUntil),
			Warranty:      dto.ToWarrantyDTO(e.WarrantyUntil, now),
		})
	}

	// ── Órdenes de servicio ──
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	series := make([]dto.MonthlyCountDTO, dashboardMonths)
	seriesStart := monthStart.AddDate(0, -(dashboardMonths - 1), 0)
	for i := range series {
		m := seriesStart.AddDate(0, i, 0)
		series[i] = dto.MonthlyCountDTO{Month: m.Format("2006-01"), Label: monthLabel(m)}
	}

	for i, m := range maints.list {
		if i < dashboardRecent {
			out.RecentMaintenances = append(out.RecentMaintenances, dto.ToMaintenanceResponse(m))
		}
		if m.Open() {
			out.PendingMaintenances++
			continue
		}
		if m.Status != entity.MaintenanceCompleted {
			continue
		}
		done := m.CompletionDate()
		if done == nil || done.Before(seriesStart) {
			continue
		}
		key := done.In(now.Location()).Format("2006-01")
		for j := range series {
			if series[j].Month == key {
				series[j].Count++
			}
		}
		if !done.Before(monthStart) && done.Before(monthStart.AddDate(0, 1, 0)) {
			out.CompletedThisMonth++
		}
	}
	out.MonthlyCompleted = series
	return out, nil
}

// monthLabel abreviatura del mes, ej: "jun".
func monthLabel(t time.Time) string {
	months := [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
	return months[t.Month()-1]
}
