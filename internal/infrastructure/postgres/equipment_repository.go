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

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `
	e.id, e.owner_id, e.name, e.serial, e.sku, COALESCE(e.customer_id::text, ''), e.model, e.location,
	e.warranty_until, e.per_unit, e.quantity, e.created_at, e.updated_at, COALESCE(c.company_name, '')`

const equipmentFrom = `
	FROM equipments e
	LEFT JOIN customers c ON c.id = e.customer_id`

// Create persiste un nuevo equipo.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	query := `
		INSERT INTO equipments (id, owner_id, name, serial, sku, customer_id, model, location,
			warranty_until, per_unit, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OwnerID, e.Name, e.Serial, e.SKU, e.CustomerID, e.Model, e.Location,
		e.WarrantyUntil, e.PerUnit, e.Quantity, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("customer", e.CustomerID)
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo del dueño. (nil, nil) si no existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Equipment, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT`+equipmentColumns+equipmentFrom+` WHERE e.owner_id = $1 AND e.id = $2`, ownerID, id)
}

// GetForUpdate obtiene el equipo y bloquea su fila (SELECT FOR UPDATE OF e).
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Equipment, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT`+equipmentColumns+equipmentFrom+` WHERE e.owner_id = $1 AND e.id = $2 FOR UPDATE OF e`, ownerID, id)
}

// GetBySKU busca por SKU exacto dentro del dueño.
func (r *EquipmentRepo) GetBySKU(ctx context.Context, ownerID, sku string) (*entity.Equipment, error) {
	return r.getOne(ctx, `SELECT`+equipmentColumns+equipmentFrom+` WHERE e.owner_id = $1 AND e.sku = $2`, ownerID, sku)
}

// Update sobrescribe los campos editables. PerUnit no cambia después del alta.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	query := `
		UPDATE equipments SET name = $3, serial = $4, sku = $5, customer_id = NULLIF($6, '')::uuid,
			model = $7, location = $8, warranty_until = $9, quantity = $10, updated_at = $11
		WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		e.OwnerID, e.ID, e.Name, e.Serial, e.SKU, e.CustomerID,
		e.Model, e.Location, e.WarrantyUntil, e.Quantity, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("customer", e.CustomerID)
		}
		return fmt.Errorf("update equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("equipment", e.ID)
	}
	return nil
}

// AdjustQuantity delta atómico en el servidor: la guarda quantity + delta >= 0 va en el WHERE,
// así dos salidas concurrentes nunca dejan la cantidad negativa.
func (r *EquipmentRepo) AdjustQuantity(ctx context.Context, ownerID, id string, delta int, customerID string) (int, error) {
	if !isUUID(id) {
		return 0, domain.NotFound("equipment", id)
	}
	if customerID != "" && !isUUID(customerID) {
		return 0, domain.NotFound("customer", customerID)
	}
	query := `
		UPDATE equipments SET quantity = quantity + $3, customer_id = NULLIF($4, '')::uuid, updated_at = now()
		WHERE owner_id = $1 AND id = $2 AND quantity + $3 >= 0
		RETURNING quantity`
	var qty int
	err := r.q.QueryRow(ctx, query, ownerID, id, delta, customerID).Scan(&qty)
	if err == nil {
		return qty, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isForeignKeyViolation(err) {
			return 0, domain.NotFound("customer", customerID)
		}
		return 0, fmt.Errorf("adjust equipment quantity: %w", err)
	}

	// Sin filas: no existe o la cantidad no alcanza.
	var available int
	err = r.q.QueryRow(ctx, `SELECT quantity FROM equipments WHERE owner_id = $1 AND id = $2`, ownerID, id).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.NotFound("equipment", id)
	}
	if err != nil {
		return 0, fmt.Errorf("read equipment quantity: %w", err)
	}
	return 0, &domain.InsufficientQuantityError{Available: available, Requested: -delta}
}

// ListByOwner más recientes primero.
func (r *EquipmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Equipment, error) {
	query := `SELECT` + equipmentColumns + equipmentFrom + ` WHERE e.owner_id = $1 ORDER BY e.created_at DESC, e.id`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list equipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EquipmentRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return e, nil
}

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Name, &e.Serial, &e.SKU, &e.CustomerID, &e.Model, &e.Location,
		&e.WarrantyUntil, &e.PerUnit, &e.Quantity, &e.CreatedAt, &e.UpdatedAt, &e.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
