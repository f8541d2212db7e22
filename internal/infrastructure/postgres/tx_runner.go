package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/equipment"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/inventory"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ equipment.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Transactional siempre true: el movimiento y el ajuste de cantidad confirman juntos o no confirman.
func (r *TxRunner) Transactional() bool { return true }

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	movRepo repository.EquipmentMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewEquipmentRepository(tx), NewMovementRepository(tx), NewCustomerRepository(tx))
	})
}

// RunRegistration transacción del alta de equipo: equipo + unidades.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	unitRepo repository.EquipmentUnitRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewEquipmentRepository(tx), NewUnitRepository(tx), NewCustomerRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
