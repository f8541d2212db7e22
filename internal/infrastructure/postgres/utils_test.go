package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
)

func TestViolaciones(t *testing.T) {
	unique := fmt.Errorf("insert equipment: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
	assert.False(t, isUniqueViolation(nil))
}

func TestMigracionesEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@db:5432/garantia?sslmode=disable", MaxConns: 7, MinConns: 2})
	assert.NoError(t, err)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.ConnConfig.DialFunc)

	_, err = poolConfig(config.DBConfig{DatabaseURL: "::no es una url::"})
	assert.Error(t, err)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("5f0c6a2e-3c1b-4e0b-9d2a-1b2c3d4e5f60"))
	assert.False(t, isUUID("not-a-uuid"))
	assert.False(t, isUUID(""))
}
