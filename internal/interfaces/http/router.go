package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/analytics"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/auth"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/customer"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/equipment"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/inventory"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/maintenance"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CustomerUC       *customer.UseCase
	EquipmentUC      *equipment.UseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MaintenanceUC    *maintenance.UseCase
	DashboardUC      *analytics.DashboardUseCase
	ReportUC         *report.UseCase
	Tokens           TokenVerifier
	// Metrics handler Prometheus; nil deja /metrics sin registrar.
	Metrics nethttp.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Equipos, rastreo QR, etiquetas y movimientos
	equipments := protected.Group("/equipments")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, deps.MaintenanceUC, deps.ReportUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	equipments.Post("/", equipmentHandler.Create)
	equipments.Get("/", equipmentHandler.List)
	equipments.Get("/lookup", equipmentHandler.Lookup)
	equipments.Get("/:id", equipmentHandler.GetByID)
	equipments.Put("/:id", equipmentHandler.Update)
	equipments.Get("/:id/units", equipmentHandler.Units)
	equipments.Get("/:id/maintenances", equipmentHandler.Maintenances)
	equipments.Get("/:id/label.pdf", equipmentHandler.Label)
	equipments.Post("/:id/movements", inventoryHandler.RegisterMovement)
	equipments.Get("/:id/movements", inventoryHandler.ListMovements)

	maintenances := protected.Group("/maintenances")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	maintenances.Post("/", maintenanceHandler.Create)
	maintenances.Get("/", maintenanceHandler.List)
	maintenances.Put("/:id", maintenanceHandler.Update)
	maintenances.Delete("/:id", maintenanceHandler.Delete)

	protected.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)
	protected.Get("/reports/:kind", NewReportHandler(deps.ReportUC).Download)
}
