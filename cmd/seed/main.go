// seed carga datos de demostración desde un CSV de equipos (exportado de la planilla anterior).
//
// Uso: go run ./cmd/seed --file equipos.csv --email demo@example.com --password demo123
// El usuario se registra si no existe. Por defecto el CSV se lee como ISO-8859-1.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/bootstrap"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

func main() {
	file := pflag.String("file", "equipos.csv", "CSV separado por ';'")
	email := pflag.String("email", "demo@example.com", "usuario dueño de los datos")
	password := pflag.String("password", "demo123", "contraseña del usuario")
	utf8 := pflag.Bool("utf8", false, "el CSV ya está en UTF-8")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readRows(f, !*utf8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inicializar almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	owner, err := ensureUser(ctx, c, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usuario: %v\n", err)
		os.Exit(1)
	}

	st, err := newImporter(c, owner).run(ctx, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Importado %s: %d clientes nuevos, %d equipos, %d unidades\n", *file, st.customers, st.equipments, st.units)
}

// ensureUser registra el usuario o, si ya existe, inicia sesión. Devuelve su id.
func ensureUser(ctx context.Context, c *bootstrap.Container, email, password string) (string, error) {
	u, err := c.Auth.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: password})
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		return "", err
	}
	existing, err := c.Auth.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return existing.ID, nil
}
