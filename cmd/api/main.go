// api servidor HTTP de garantías y mantenimiento.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/bootstrap"
	httpRouter "github.com/RaphaCalixto/garantia-tech-flow/internal/interfaces/http"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

const (
	swaggerFile     = "./docs/swagger.json"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api detenida con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run sirve hasta que ctx se cancela y luego apaga con timeout.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando")

	container, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("inicializar almacenamiento: %w", err)
	}
	defer container.Close()

	app := newApp(cfg, container, log)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(cfg.HTTP.Addr()) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func newApp(cfg *config.Config, container *bootstrap.Container, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// UI en /docs sólo si el documento está junto al binario.
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Garantia Tech Flow API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado")
	}

	httpRouter.Router(app, container.RouterDeps())
	return app
}
