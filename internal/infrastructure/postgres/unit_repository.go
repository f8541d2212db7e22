package postgres

import (
	"context"
	"fmt"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var _ repository.EquipmentUnitRepository = (*UnitRepo)(nil)

// UnitRepo unidades de los lotes rastreados por unidad.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad.
func (r *UnitRepo) Create(ctx context.Context, u *entity.EquipmentUnit) error {
	query := `
		INSERT INTO equipment_units (id, equipment_id, serial, warranty_until, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, u.ID, u.EquipmentID, u.Serial, u.WarrantyUntil, u.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("equipment", u.EquipmentID)
		}
		return fmt.Errorf("insert equipment unit: %w", err)
	}
	return nil
}

// ListByEquipment en orden de alta.
func (r *UnitRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]entity.EquipmentUnit, error) {
	if !isUUID(equipmentID) {
		return nil, nil
	}
	query := `
		SELECT id, equipment_id, serial, warranty_until, created_at
		FROM equipment_units WHERE equipment_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("list equipment units: %w", err)
	}
	defer rows.Close()
	var list []entity.EquipmentUnit
	for rows.Next() {
		var u entity.EquipmentUnit
		if err := rows.Scan(&u.ID, &u.EquipmentID, &u.Serial, &u.WarrantyUntil, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
