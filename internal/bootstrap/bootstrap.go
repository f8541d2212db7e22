// Package bootstrap arma los casos de uso sobre el driver de almacenamiento configurado.
// Lo comparten cmd/api y cmd/seed.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/analytics"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/auth"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/customer"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/equipment"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/inventory"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/maintenance"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/ports"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/sku"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/excel"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/memory"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/metrics"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/pdf"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/postgres"
	apphttp "github.com/RaphaCalixto/garantia-tech-flow/internal/interfaces/http"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/jwt"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

// unitOfWork lo implementan *postgres.TxRunner y *memory.Store.
type unitOfWork interface {
	equipment.TxRunner
	inventory.TxRunner
}

// gateway repositorios de un driver.
type gateway struct {
	tx           unitOfWork
	equipments   repository.EquipmentRepository
	units        repository.EquipmentUnitRepository
	movements    repository.EquipmentMovementRepository
	customers    repository.CustomerRepository
	maintenances repository.MaintenanceRepository
	users        repository.UserRepository
}

// Container casos de uso listos para usar.
type Container struct {
	Auth        *auth.AuthUseCase
	Customers   *customer.UseCase
	Equipment   *equipment.UseCase
	Movements   *inventory.RegisterMovementUseCase
	Maintenance *maintenance.UseCase
	Dashboard   *analytics.DashboardUseCase
	Reports     *report.UseCase
	// Prometheus nil cuando METRICS_ENABLED=false.
	Prometheus *metrics.Prometheus

	tokens *jwt.Signer
	close  func()
}

// New abre el almacenamiento (y migra si corresponde) y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	gw, closeFn, err := openGateway(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var m ports.Metrics = ports.NopMetrics{}
	var prom *metrics.Prometheus
	if cfg.Metrics.Enabled {
		prom = metrics.NewPrometheus()
		m = prom
	}

	tokens := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)

	return &Container{
		Auth:      auth.NewAuthUseCase(gw.users, tokens),
		Customers: customer.NewUseCase(gw.customers),
		Equipment: equipment.NewUseCase(
			gw.tx, gw.equipments, gw.units, gw.customers, gw.maintenances,
			sku.NewAllocator(), m, log.Component("registro"),
		),
		Movements:   inventory.NewRegisterMovementUseCase(gw.tx, gw.equipments, gw.movements, m, log.Component("ledger")),
		Maintenance: maintenance.NewUseCase(gw.maintenances, gw.equipments),
		Dashboard:   analytics.NewDashboardUseCase(gw.equipments, gw.maintenances, gw.customers),
		Reports: report.NewUseCase(
			gw.equipments, gw.maintenances, gw.customers,
			pdf.NewMarotoRenderer(cfg.App.Name), excel.NewExcelizeRenderer(), m,
		),
		Prometheus: prom,
		tokens:     tokens,
		close:      closeFn,
	}, nil
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps() apphttp.RouterDeps {
	deps := apphttp.RouterDeps{
		AuthUC:           c.Auth,
		CustomerUC:       c.Customers,
		EquipmentUC:      c.Equipment,
		RegisterMovement: c.Movements,
		MaintenanceUC:    c.Maintenance,
		DashboardUC:      c.Dashboard,
		ReportUC:         c.Reports,
		Tokens:           c.tokens,
	}
	if c.Prometheus != nil {
		deps.Metrics = c.Prometheus.Handler()
	}
	return deps
}

// Close libera el pool de conexiones, si lo hay.
func (c *Container) Close() {
	if c.close != nil {
		c.close()
	}
}

func openGateway(ctx context.Context, cfg *config.Config, log *logger.Logger) (*gateway, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &gateway{
			tx:           store,
			equipments:   store.Equipments(),
			units:        store.Units(),
			movements:    store.Movements(),
			customers:    store.Customers(),
			maintenances: store.Maintenances(),
			users:        store.Users(),
		}, func() {}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &gateway{
			tx:           postgres.NewTxRunner(pool),
			equipments:   postgres.NewEquipmentRepository(pool),
			units:        postgres.NewUnitRepository(pool),
			movements:    postgres.NewMovementRepository(pool),
			customers:    postgres.NewCustomerRepository(pool),
			maintenances: postgres.NewMaintenanceRepository(pool),
			users:        postgres.NewUserRepository(pool),
		}, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
}
