package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo órdenes de servicio sobre PostgreSQL.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

const maintenanceSelect = `
	SELECT m.id, m.owner_id, m.equipment_id, m.order_number, m.opened_at, m.ended_at, m.completed_at,
		m.technician, m.problem, m.notes, m.status, m.created_at, m.updated_at,
		e.name, e.model, COALESCE(c.company_name, '')
	FROM maintenances m
	JOIN equipments e ON e.id = m.equipment_id
	LEFT JOIN customers c ON c.id = e.customer_id`

// Create toma el siguiente número de la secuencia del dueño y persiste la orden en una sola sentencia.
func (r *MaintenanceRepo) Create(ctx context.Context, m *entity.Maintenance) error {
	query := `
		WITH seq AS (
			INSERT INTO owner_sequences (owner_id, maintenance_seq) VALUES ($2, 1)
			ON CONFLICT (owner_id) DO UPDATE SET maintenance_seq = owner_sequences.maintenance_seq + 1
			RETURNING maintenance_seq
		)
		INSERT INTO maintenances (id, owner_id, equipment_id, order_number, opened_at, ended_at, completed_at,
			technician, problem, notes, status, created_at, updated_at)
		SELECT $1, $2, $3, 'OS-' || lpad(seq.maintenance_seq::text, 6, '0'), $4, $5, $6, $7, $8, $9, $10, $11, $12
		FROM seq
		WHERE EXISTS (SELECT 1 FROM equipments e WHERE e.id = $3 AND e.owner_id = $2)
		RETURNING order_number`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.OwnerID, m.EquipmentID, m.OpenedAt, m.EndedAt, m.CompletedAt,
		m.Technician, m.Problem, m.Notes, m.Status, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.OrderNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isForeignKeyViolation(err) {
			return domain.NotFound("equipment", m.EquipmentID)
		}
		return fmt.Errorf("insert maintenance: %w", err)
	}
	return nil
}

// GetByID obtiene una orden del dueño. (nil, nil) si no existe.
func (r *MaintenanceRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Maintenance, error) {
	if !isUUID(id) {
		return nil, nil
	}
	m, err := scanMaintenance(r.q.QueryRow(ctx, maintenanceSelect+` WHERE m.owner_id = $1 AND m.id = $2`, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance: %w", err)
	}
	return m, nil
}

// Update sobrescribe la orden. order_number y created_at no cambian.
func (r *MaintenanceRepo) Update(ctx context.Context, m *entity.Maintenance) error {
	query := `
		UPDATE maintenances SET equipment_id = $3, opened_at = $4, ended_at = $5, completed_at = $6,
			technician = $7, problem = $8, notes = $9, status = $10, updated_at = $11
		WHERE owner_id = $1 AND id = $2
			AND EXISTS (SELECT 1 FROM equipments e WHERE e.id = $3 AND e.owner_id = $1)`
	tag, err := r.q.Exec(ctx, query,
		m.OwnerID, m.ID, m.EquipmentID, m.OpenedAt, m.EndedAt, m.CompletedAt,
		m.Technician, m.Problem, m.Notes, m.Status, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("maintenance", m.ID)
	}
	return nil
}

// Delete elimina la orden.
func (r *MaintenanceRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(id) {
		return domain.NotFound("maintenance", id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM maintenances WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("maintenance", id)
	}
	return nil
}

// ListByOwner más recientes primero.
func (r *MaintenanceRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Maintenance, error) {
	return r.list(ctx, maintenanceSelect+` WHERE m.owner_id = $1 ORDER BY m.opened_at DESC, m.created_at DESC`, ownerID)
}

// ListByEquipment historial de servicio del equipo, más reciente primero.
func (r *MaintenanceRepo) ListByEquipment(ctx context.Context, ownerID, equipmentID string) ([]*entity.Maintenance, error) {
	if !isUUID(equipmentID) {
		return nil, nil
	}
	return r.list(ctx, maintenanceSelect+` WHERE m.owner_id = $1 AND m.equipment_id = $2 ORDER BY m.opened_at DESC, m.created_at DESC`, ownerID, equipmentID)
}

func (r *MaintenanceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Maintenance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMaintenance(row pgx.Row) (*entity.Maintenance, error) {
	var m entity.Maintenance
	err := row.Scan(
		&m.ID, &m.OwnerID, &m.EquipmentID, &m.OrderNumber, &m.OpenedAt, &m.EndedAt, &m.CompletedAt,
		&m.Technician, &m.Problem, &m.Notes, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		&m.EquipmentName, &m.EquipmentModel, &m.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
