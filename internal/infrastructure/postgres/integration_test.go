package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/inventory"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/bootstrap"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

// Requiere una base real: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func newContainer(t *testing.T) (*bootstrap.Container, string) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	c, err := bootstrap.New(ctx, &config.Config{
		App:     config.AppConfig{Name: "garantia-it"},
		DB:      config.DBConfig{DatabaseURL: url, AutoMigrate: true},
		Storage: config.StorageConfig{Driver: config.StoragePostgres},
		JWT:     config.JWTConfig{Secret: "it", Expiration: 5},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	u, err := c.Auth.RegisterUser(ctx, dto.RegisterRequest{Email: uuid.NewString() + "@it.example.com", Password: "secreto1"})
	require.NoError(t, err)
	return c, u.ID
}

func TestIntegration_SalidasConcurrentesNoSobregiran(t *testing.T) {
	c, owner := newContainer(t)
	ctx := context.Background()

	cust, err := c.Customers.Create(ctx, owner, dto.CustomerRequest{CompanyName: "Hospital", TaxID: uuid.NewString()[:14]})
	require.NoError(t, err)
	eq, err := c.Equipment.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{Name: "Oxímetro", Quantity: 5})
	require.NoError(t, err)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Movements.RegisterMovement(ctx, inventory.MovementInput{
				OwnerID: owner, EquipmentID: eq.ID, Kind: "outgoing", Quantity: 1, CustomerID: cust.ID, Date: time.Now(),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientQuantity):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, rejected)

	got, err := c.Equipment.GetEquipment(ctx, owner, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, cust.ID, got.CustomerID)

	movs, err := c.Movements.ListMovements(ctx, owner, eq.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 5)
}

func TestIntegration_SKUYOrdenes(t *testing.T) {
	c, owner := newContainer(t)
	ctx := context.Background()

	_, err := c.Equipment.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{Name: "A", SKU: "IT-1"})
	require.NoError(t, err)
	_, err = c.Equipment.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{Name: "B", SKU: "IT-1"})
	var dup *domain.DuplicateSKUError
	require.ErrorAs(t, err, &dup)
	assert.False(t, dup.Generated)

	eq, err := c.Equipment.LookupBySKU(ctx, owner, "IT-1")
	require.NoError(t, err)

	first, err := c.Maintenance.Create(ctx, owner, dto.MaintenanceRequest{EquipmentID: eq.Equipment.ID, Problem: "ruido"})
	require.NoError(t, err)
	second, err := c.Maintenance.Create(ctx, owner, dto.MaintenanceRequest{EquipmentID: eq.Equipment.ID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "OS-000001", first.OrderNumber)
	assert.Equal(t, "OS-000002", second.OrderNumber)
	assert.NotNil(t, second.CompletedAt)
}

func TestIntegration_IDNoUUIDEsNotFound(t *testing.T) {
	c, owner := newContainer(t)
	ctx := context.Background()
	const bad = "not-a-uuid"

	_, err := c.Equipment.GetEquipment(ctx, owner, bad)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)

	_, err = c.Movements.RegisterMovement(ctx, inventory.MovementInput{
		OwnerID: owner, EquipmentID: bad, Kind: "incoming", Quantity: 1, Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.Customers.Get(ctx, owner, bad)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, c.Customers.Delete(ctx, owner, bad), domain.ErrNotFound)
	assert.ErrorIs(t, c.Maintenance.Delete(ctx, owner, bad), domain.ErrNotFound)

	eq, err := c.Equipment.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{Name: "Monitor", Quantity: 1, CustomerID: bad})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, eq)
}
