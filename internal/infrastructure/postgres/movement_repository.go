package postgres

import (
	"context"
	"fmt"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var _ repository.EquipmentMovementRepository = (*MovementRepo)(nil)

// MovementRepo historial append-only de movimientos (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append agrega un movimiento al final del historial.
func (r *MovementRepo) Append(ctx context.Context, m *entity.EquipmentMovement) error {
	query := `
		INSERT INTO equipment_movements (id, owner_id, equipment_id, kind, customer_id, quantity, notes, date, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OwnerID, m.EquipmentID, m.Kind, m.CustomerID, m.Quantity, m.Notes, m.Date, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("equipment", m.EquipmentID)
		}
		return fmt.Errorf("append equipment movement: %w", err)
	}
	return nil
}

// ListByEquipment en orden de registro (seq), no por la fecha informada.
func (r *MovementRepo) ListByEquipment(ctx context.Context, ownerID, equipmentID string) ([]*entity.EquipmentMovement, error) {
	if !isUUID(equipmentID) {
		return nil, nil
	}
	query := `
		SELECT id, owner_id, equipment_id, kind, COALESCE(customer_id::text, ''), quantity, notes, date, created_at
		FROM equipment_movements
		WHERE owner_id = $1 AND equipment_id = $2
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, ownerID, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("list equipment movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.EquipmentMovement
	for rows.Next() {
		var m entity.EquipmentMovement
		if err := rows.Scan(
			&m.ID, &m.OwnerID, &m.EquipmentID, &m.Kind, &m.CustomerID, &m.Quantity, &m.Notes, &m.Date, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan equipment movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
