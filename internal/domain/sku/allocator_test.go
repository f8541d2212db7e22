package sku_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/sku"
)

func TestAllocator_FormatoEQ(t *testing.T) {
	a := sku.NewAllocator()
	got := a.Next()
	assert.Regexp(t, sku.Pattern, got)
	assert.Regexp(t, `^EQ-[[:alnum:]]+-[[:alnum:]]+$`, got)
}

func TestAllocator_TimestampBase36(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	a := sku.NewAllocatorWith(func() time.Time { return fixed }, func(int) int { return 10 })

	// 1700000000000 en base 36 = LOYW3V28
	assert.Equal(t, "EQ-LOYW3V28-AAAA", a.Next())
}

func TestAllocator_MilDistintos(t *testing.T) {
	a := sku.NewAllocator()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s := a.Next()
		require.Regexp(t, sku.Pattern, s)
		seen[s] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestAllocator_MismoMilisegundoNoRepite(t *testing.T) {
	// Reloj detenido y aleatorio constante: solo el componente de tiempo puede diferenciar.
	fixed := time.UnixMilli(1_700_000_000_000)
	a := sku.NewAllocatorWith(func() time.Time { return fixed }, func(int) int { return 0 })

	first := a.Next()
	second := a.Next()
	assert.NotEqual(t, first, second)
}
