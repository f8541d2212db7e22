package memory

import (
	"context"
	"sort"
	"time"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var (
	_ repository.EquipmentRepository         = (*EquipmentRepo)(nil)
	_ repository.EquipmentUnitRepository     = (*UnitRepo)(nil)
	_ repository.EquipmentMovementRepository = (*MovementRepo)(nil)
)

// EquipmentRepo equipos en memoria.
type EquipmentRepo struct {
	s  *Store
	st *state
}

func (r *EquipmentRepo) Create(_ context.Context, e *entity.Equipment) error {
	return r.s.view(r.st, func(st *state) error {
		if err := r.s.fault(OpEquipmentCreate); err != nil {
			return err
		}
		if skuTaken(st, e.OwnerID, e.SKU, "") {
			return domain.ErrDuplicate
		}
		cp := *e
		cp.CustomerName, cp.Units = "", nil
		st.equipments[e.ID] = cp
		return nil
	})
}

func (r *EquipmentRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Equipment, error) {
	var out *entity.Equipment
	err := r.s.view(r.st, func(st *state) error {
		out = readEquipment(st, ownerID, id)
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una unidad de trabajo el lock del Store ya está tomado.
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Equipment, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *EquipmentRepo) GetBySKU(_ context.Context, ownerID, sku string) (*entity.Equipment, error) {
	var out *entity.Equipment
	err := r.s.view(r.st, func(st *state) error {
		for id, e := range st.equipments {
			if e.OwnerID == ownerID && e.SKU == sku {
				out = readEquipment(st, ownerID, id)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EquipmentRepo) Update(_ context.Context, e *entity.Equipment) error {
	return r.s.view(r.st, func(st *state) error {
		if err := r.s.fault(OpEquipmentUpdate); err != nil {
			return err
		}
		cur, ok := st.equipments[e.ID]
		if !ok || cur.OwnerID != e.OwnerID {
			return domain.NotFound("equipment", e.ID)
		}
		if skuTaken(st, e.OwnerID, e.SKU, e.ID) {
			return domain.ErrDuplicate
		}
		cur.Name = e.Name
		cur.Serial = e.Serial
		cur.SKU = e.SKU
		cur.CustomerID = e.CustomerID
		cur.Model = e.Model
		cur.Location = e.Location
		cur.WarrantyUntil = e.WarrantyUntil
		cur.Quantity = e.Quantity
		cur.UpdatedAt = e.UpdatedAt
		st.equipments[e.ID] = cur
		return nil
	})
}

// AdjustQuantity delta atómico: no escribe si la cantidad quedaría negativa.
func (r *EquipmentRepo) AdjustQuantity(_ context.Context, ownerID, id string, delta int, customerID string) (int, error) {
	var qty int
	err := r.s.view(r.st, func(st *state) error {
		if err := r.s.fault(OpEquipmentAdjust); err != nil {
			return err
		}
		cur, ok := st.equipments[id]
		if !ok || cur.OwnerID != ownerID {
			return domain.NotFound("equipment", id)
		}
		if cur.Quantity+delta < 0 {
			return &domain.InsufficientQuantityError{Available: cur.Quantity, Requested: -delta}
		}
		cur.Quantity += delta
		cur.CustomerID = customerID
		cur.UpdatedAt = time.Now()
		st.equipments[id] = cur
		qty = cur.Quantity
		return nil
	})
	return qty, err
}

// ListByOwner más recientes primero.
func (r *EquipmentRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Equipment, error) {
	var list []*entity.Equipment
	err := r.s.view(r.st, func(st *state) error {
		for id, e := range st.equipments {
			if e.OwnerID == ownerID {
				list = append(list, readEquipment(st, ownerID, id))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func readEquipment(st *state, ownerID, id string) *entity.Equipment {
	e, ok := st.equipments[id]
	if !ok || e.OwnerID != ownerID {
		return nil
	}
	if c, ok := st.customers[e.CustomerID]; ok {
		e.CustomerName = c.CompanyName
	}
	return &e
}

func skuTaken(st *state, ownerID, sku, exceptID string) bool {
	for id, e := range st.equipments {
		if id != exceptID && e.OwnerID == ownerID && e.SKU == sku {
			return true
		}
	}
	return false
}

// UnitRepo unidades de lotes rastreados por unidad.
type UnitRepo struct {
	s  *Store
	st *state
}

func (r *UnitRepo) Create(_ context.Context, u *entity.EquipmentUnit) error {
	return r.s.view(r.st, func(st *state) error {
		if err := r.s.fault(OpUnitCreate); err != nil {
			return err
		}
		if _, ok := st.equipments[u.EquipmentID]; !ok {
			return domain.NotFound("equipment", u.EquipmentID)
		}
		st.units[u.EquipmentID] = append(st.units[u.EquipmentID], *u)
		return nil
	})
}

func (r *UnitRepo) ListByEquipment(_ context.Context, equipmentID string) ([]entity.EquipmentUnit, error) {
	var out []entity.EquipmentUnit
	err := r.s.view(r.st, func(st *state) error {
		out = append(out, st.units[equipmentID]...)
		return nil
	})
	return out, err
}

// MovementRepo historial append-only.
type MovementRepo struct {
	s  *Store
	st *state
}

func (r *MovementRepo) Append(_ context.Context, m *entity.EquipmentMovement) error {
	return r.s.view(r.st, func(st *state) error {
		if err := r.s.fault(OpMovementAppend); err != nil {
			return err
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) ListByEquipment(_ context.Context, ownerID, equipmentID string) ([]*entity.EquipmentMovement, error) {
	var list []*entity.EquipmentMovement
	err := r.s.view(r.st, func(st *state) error {
		for i := range st.movements {
			m := st.movements[i]
			if m.OwnerID == ownerID && m.EquipmentID == equipmentID {
				list = append(list, &m)
			}
		}
		return nil
	})
	return list, err
}
