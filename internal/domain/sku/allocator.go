// Package sku genera identificadores legibles para equipos nuevos: EQ-<timestamp36>-<random4>.
package sku

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	prefix       = "EQ"
	suffixLength = 4
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Pattern formato de los SKU generados.
var Pattern = regexp.MustCompile(`^EQ-[0-9A-Z]+-[0-9A-Z]{4}$`)

// Allocator produce candidatos de SKU. La unicidad es orientativa: quien inserta debe tratar
// la violación de unicidad como reintentable (ver equipment.UseCase).
// Dentro de un mismo Allocator el componente de tiempo es estrictamente creciente.
type Allocator struct {
	mu   sync.Mutex
	now  func() time.Time
	intn func(n int) int
	last int64
}

// NewAllocator construye el asignador con reloj real y aleatoriedad de math/rand/v2.
func NewAllocator() *Allocator {
	return NewAllocatorWith(time.Now, rand.IntN)
}

// NewAllocatorWith permite inyectar reloj y fuente aleatoria (tests).
func NewAllocatorWith(now func() time.Time, intn func(n int) int) *Allocator {
	return &Allocator{now: now, intn: intn}
}

// Next devuelve un candidato nuevo.
func (a *Allocator) Next() string {
	a.mu.Lock()
	ms := a.now().UnixMilli()
	if ms <= a.last {
		ms = a.last + 1
	}
	a.last = ms
	var suffix strings.Builder
	for i := 0; i < suffixLength; i++ {
		suffix.WriteByte(alphabet[a.intn(len(alphabet))])
	}
	a.mu.Unlock()

	return prefix + "-" + strings.ToUpper(strconv.FormatInt(ms, 36)) + "-" + suffix.String()
}
