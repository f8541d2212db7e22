package memory

import (
	"context"
	"sort"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo órdenes de servicio en memoria.
type MaintenanceRepo struct {
	s  *Store
	st *state
}

func (r *MaintenanceRepo) Create(_ context.Context, m *entity.Maintenance) error {
	return r.s.view(r.st, func(st *state) error {
		if e, ok := st.equipments[m.EquipmentID]; !ok || e.OwnerID != m.OwnerID {
			return domain.NotFound("equipment", m.EquipmentID)
		}
		st.orderSeq[m.OwnerID]++
		m.OrderNumber = entity.FormatOrderNumber(st.orderSeq[m.OwnerID])
		st.maintenances[m.ID] = *m
		return nil
	})
}

func (r *MaintenanceRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Maintenance, error) {
	var out *entity.Maintenance
	err := r.s.view(r.st, func(st *state) error {
		out = readMaintenance(st, ownerID, id)
		return nil
	})
	return out, err
}

func (r *MaintenanceRepo) Update(_ context.Context, m *entity.Maintenance) error {
	return r.s.view(r.st, func(st *state) error {
		cur, ok := st.maintenances[m.ID]
		if !ok || cur.OwnerID != m.OwnerID {
			return domain.NotFound("maintenance", m.ID)
		}
		if e, ok := st.equipments[m.EquipmentID]; !ok || e.OwnerID != m.OwnerID {
			return domain.NotFound("equipment", m.EquipmentID)
		}
		cp := *m
		cp.OrderNumber = cur.OrderNumber
		cp.CreatedAt = cur.CreatedAt
		cp.EquipmentName, cp.EquipmentModel, cp.CustomerName = "", "", ""
		st.maintenances[m.ID] = cp
		return nil
	})
}

func (r *MaintenanceRepo) Delete(_ context.Context, ownerID, id string) error {
	return r.s.view(r.st, func(st *state) error {
		cur, ok := st.maintenances[id]
		if !ok || cur.OwnerID != ownerID {
			return domain.NotFound("maintenance", id)
		}
		delete(st.maintenances, id)
		return nil
	})
}

func (r *MaintenanceRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Maintenance, error) {
	return r.list(ownerID, func(*entity.Maintenance) bool { return true })
}

func (r *MaintenanceRepo) ListByEquipment(_ context.Context, ownerID, equipmentID string) ([]*entity.Maintenance, error) {
	return r.list(ownerID, func(m *entity.Maintenance) bool { return m.EquipmentID == equipmentID })
}

func (r *MaintenanceRepo) list(ownerID string, keep func(*entity.Maintenance) bool) ([]*entity.Maintenance, error) {
	var list []*entity.Maintenance
	err := r.s.view(r.st, func(st *state) error {
		for id := range st.maintenances {
			if m := readMaintenance(st, ownerID, id); m != nil && keep(m) {
				list = append(list, m)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OpenedAt.Equal(list[j].OpenedAt) {
			return list[i].OpenedAt.After(list[j].OpenedAt)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, err
}

func readMaintenance(st *state, ownerID, id string) *entity.Maintenance {
	m, ok := st.maintenances[id]
	if !ok || m.OwnerID != ownerID {
		return nil
	}
	if e, ok := st.equipments[m.EquipmentID]; ok {
		m.EquipmentName = e.Name
		m.EquipmentModel = e.Model
		if c, ok := st.customers[e.CustomerID]; ok {
			m.CustomerName = c.CompanyName
		}
	}
	return &m
}
