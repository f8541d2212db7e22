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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `
	SELECT c.id, c.owner_id, c.company_name, COALESCE(c.tax_id, ''), c.contact_name, c.email, c.phone, c.address,
		c.created_at, c.updated_at,
		(SELECT count(*) FROM equipments e WHERE e.customer_id = c.id)
	FROM customers c`

// Create persiste un nuevo cliente. Un tax id vacío se guarda como NULL (no participa del único).
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, owner_id, company_name, tax_id, contact_name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OwnerID, c.CompanyName, c.TaxID, c.ContactName, c.Email, c.Phone, c.Address,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del dueño. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Customer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE c.owner_id = $1 AND c.id = $2`, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByOwner ordenados por razón social.
func (r *CustomerRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, customerSelect+` WHERE c.owner_id = $1 ORDER BY lower(c.company_name), c.id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update sobrescribe los datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET company_name = $3, tax_id = NULLIF($4, ''), contact_name = $5, email = $6,
			phone = $7, address = $8, updated_at = $9
		WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.OwnerID, c.ID, c.CompanyName, c.TaxID, c.ContactName, c.Email, c.Phone, c.Address, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("customer", c.ID)
	}
	return nil
}

// Delete borra el cliente solo si no tiene equipos en su poder.
// El historial de movimientos conserva el id sin clave foránea.
func (r *CustomerRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(id) {
		return domain.NotFound("customer", id)
	}
	query := `
		DELETE FROM customers c
		WHERE c.owner_id = $1 AND c.id = $2
			AND NOT EXISTS (SELECT 1 FROM equipments e WHERE e.customer_id = c.id)`
	tag, err := r.q.Exec(ctx, query, ownerID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE owner_id = $1 AND id = $2)`, ownerID, id).Scan(&exists); err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if exists {
		return fmt.Errorf("cliente %s con equipos asignados: %w", id, domain.ErrConflict)
	}
	return domain.NotFound("customer", id)
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.CompanyName, &c.TaxID, &c.ContactName, &c.Email, &c.Phone, &c.Address,
		&c.CreatedAt, &c.UpdatedAt, &c.EquipmentCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
