package equipment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/equipment"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/sku"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/memory"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

const owner = "owner-1"

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// scriptedSKUs devuelve los candidatos en orden y cuenta las llamadas.
type scriptedSKUs struct {
	next  []string
	calls int
}

func (s *scriptedSKUs) Next() string {
	s.calls++
	v := s.next[0]
	s.next = s.next[1:]
	return v
}

func newUseCase(store *memory.Store, skus equipment.SKUAllocator) *equipment.UseCase {
	return equipment.NewUseCase(
		store, store.Equipments(), store.Units(), store.Customers(), store.Maintenances(),
		skus, nil, logger.Nop(),
	).WithClock(func() time.Time { return now })
}

func seedEquipment(t *testing.T, store *memory.Store, id, code string) {
	t.Helper()
	require.NoError(t, store.Equipments().Create(context.Background(), &entity.Equipment{
		ID: id, OwnerID: owner, Name: "Existente", SKU: code, Quantity: 1, CreatedAt: now.Add(-time.Hour),
	}))
}

func countEquipments(t *testing.T, store *memory.Store) int {
	t.Helper()
	list, err := store.Equipments().ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	return len(list)
}

func date(y int, m time.Month, d int) *dto.Date {
	v := dto.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func TestCreateEquipment_GeneraSKU(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, sku.NewAllocator())
	ctx := context.Background()

	a, err := uc.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{Name: "X", Quantity: 1})
	require.NoError(t, err)
	b, err := uc.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{Name: "Y", SKU: "   ", Quantity: 1})
	require.NoError(t, err)

	assert.Regexp(t, `^EQ-[[:alnum:]]+-[[:alnum:]]+$`, a.SKU)
	assert.Regexp(t, sku.Pattern, b.SKU)
	assert.NotEqual(t, a.SKU, b.SKU)
	assert.Equal(t, 2, countEquipments(t, store))
}

func TestCreateEquipment_ReintentaUnaVezAnteChoque(t *testing.T) {
	store := memory.NewStore()
	seedEquipment(t, store, "old", "EQ-A-0001")
	skus := &scriptedSKUs{next: []string{"EQ-A-0001", "EQ-A-0002"}}
	uc := newUseCase(store, skus)

	out, err := uc.CreateEquipment(context.Background(), owner, dto.CreateEquipmentRequest{Name: "X"})

	require.NoError(t, err)
	assert.Equal(t, "EQ-A-0002", out.SKU)
	assert.Equal(t, 2, skus.calls)
	assert.Equal(t, 2, countEquipments(t, store))
}

func TestCreateEquipment_SegundoChoqueEsFatal(t *testing.T) {
	store := memory.NewStore()
	seedEquipment(t, store, "old-1", "EQ-A-0001")
	seedEquipment(t, store, "old-2", "EQ-A-0002")
	skus := &scriptedSKUs{next: []string{"EQ-A-0001", "EQ-A-0002", "EQ-A-0003"}}
	uc := newUseCase(store, skus)

	_, err := uc.CreateEquipment(context.Background(), owner, dto.CreateEquipmentRequest{Name: "X"})

	var dup *domain.DuplicateSKUError
	require.ErrorAs(t, err, &dup)
	assert.True(t, dup.Generated)
	assert.Equal(t, "EQ-A-0002", dup.SKU)
	assert.Equal(t, 2, skus.calls)
	assert.Equal(t, 2, countEquipments(t, store))
}

func TestCreateEquipment_SKUDeUsuarioSinReintento(t *testing.T) {
	store := memory.NewStore()
	seedEquipment(t, store, "old", "MEU-SKU")
	skus := &scriptedSKUs{next: []string{"EQ-A-0009"}}
	uc := newUseCase(store, skus)

	_, err := uc.CreateEquipment(context.Background(), owner, dto.CreateEquipmentRequest{Name: "X", SKU: "MEU-SKU"})

	var dup *domain.DuplicateSKUError
	require.ErrorAs(t, err, &dup)
	assert.False(t, dup.Generated)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Zero(t, skus.calls)
	assert.Equal(t, 1, countEquipments(t, store))
}

func TestCreateEquipment_MismoSKUOtroDueño(t *testing.T) {
	store := memory.NewStore()
	seedEquipment(t, store, "old", "COMPARTIDO")
	uc := newUseCase(store, sku.NewAllocator())

	_, err := uc.CreateEquipment(context.Background(), "owner-2", dto.CreateEquipmentRequest{Name: "X", SKU: "COMPARTIDO"})
	assert.NoError(t, err)
}

func TestCreateEquipment_Validaciones(t *testing.T) {
	cases := map[string]struct {
		in    dto.CreateEquipmentRequest
		field string
	}{
		"nombre vacío":       {dto.CreateEquipmentRequest{Name: "  "}, "name"},
		"cantidad negativa":  {dto.CreateEquipmentRequest{Name: "X", Quantity: -1}, "quantity"},
		"unidades sin flag":  {dto.CreateEquipmentRequest{Name: "X", Quantity: 1, Units: []dto.EquipmentUnitInput{{Serial: "A"}}}, "units"},
		"unidades de menos":  {dto.CreateEquipmentRequest{Name: "X", PerUnit: true, Quantity: 3, Units: []dto.EquipmentUnitInput{{Serial: "A"}}}, "units"},
		"unidades de más":    {dto.CreateEquipmentRequest{Name: "X", PerUnit: true, Quantity: 1, Units: []dto.EquipmentUnitInput{{}, {}}}, "units"},
		"garantía duplicada": {dto.CreateEquipmentRequest{Name: "X", PerUnit: true, Quantity: 1, WarrantyUntil: date(2025, 1, 1), Units: []dto.EquipmentUnitInput{{}}}, "warranty_until"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.NewStore()
			uc := newUseCase(store, sku.NewAllocator())

			_, err := uc.CreateEquipment(context.Background(), owner, tc.in)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Zero(t, countEquipments(t, store))
		})
	}
}

func TestCreateEquipment_PorUnidad(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, sku.NewAllocator())
	ctx := context.Background()

	out, err := uc.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{
		Name:     "Notebook",
		PerUnit:  true,
		Quantity: 3,
		Units: []dto.EquipmentUnitInput{
			{Serial: "S1", WarrantyUntil: date(2024, 5, 1)},
			{Serial: "S2", WarrantyUntil: date(2024, 6, 20)},
			{Serial: "S3"},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, out.WarrantyUntil)
	assert.Equal(t, "none", out.Warranty.Status)
	assert.Equal(t, 3, out.Quantity)
	require.Len(t, out.Units, 3)
	assert.Equal(t, "expired", out.Units[0].Warranty.Status)
	assert.Equal(t, "expiring", out.Units[1].Warranty.Status)
	assert.Equal(t, "none", out.Units[2].Warranty.Status)

	units, err := uc.ListUnits(ctx, owner, out.ID)
	require.NoError(t, err)
	assert.Len(t, units, 3)
	assert.Equal(t, "S1", units[0].Serial)
}

func TestCreateEquipment_FallaEnUnidadDeshaceTodo(t *testing.T) {
	store := memory.NewStore()
	store.FailNext(memory.OpUnitCreate, errors.New("disco lleno"))
	uc := newUseCase(store, sku.NewAllocator())

	_, err := uc.CreateEquipment(context.Background(), owner, dto.CreateEquipmentRequest{
		Name: "Lote", PerUnit: true, Quantity: 2, Units: []dto.EquipmentUnitInput{{}, {}},
	})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Zero(t, countEquipments(t, store))
}

func TestCreateEquipment_ClienteInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, sku.NewAllocator())

	_, err := uc.CreateEquipment(context.Background(), owner, dto.CreateEquipmentRequest{Name: "X", CustomerID: "c-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEquipment_SobrescribeCampos(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c1", OwnerID: owner, CompanyName: "ACME"}))
	seedEquipment(t, store, "eq-1", "EQ-OLD")
	require.NoError(t, store.Movements().Append(ctx, &entity.EquipmentMovement{ID: "m1", OwnerID: owner, EquipmentID: "eq-1", Kind: entity.MovementIncoming, Quantity: 1, Date: now}))
	uc := newUseCase(store, &scriptedSKUs{})

	out, err := uc.UpdateEquipment(ctx, owner, "eq-1", dto.UpdateEquipmentRequest{
		Name: "Nuevo", Serial: "SN", SKU: "EQ-NEW", CustomerID: "c1", Model: "M2", Location: "Depósito",
		WarrantyUntil: date(2026, 1, 1), Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", out.Name)
	assert.Equal(t, "EQ-NEW", out.SKU)
	assert.Equal(t, "ACME", out.CustomerName)
	assert.Equal(t, "valid", out.Warranty.Status)

	got, err := store.Equipments().GetByID(ctx, owner, "eq-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, "c1", got.CustomerID)
	assert.Equal(t, "Depósito", got.Location)

	hist, err := store.Movements().ListByEquipment(ctx, owner, "eq-1")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestUpdateEquipment_Errores(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	seedEquipment(t, store, "eq-1", "EQ-1")
	seedEquipment(t, store, "eq-2", "EQ-2")
	uc := newUseCase(store, &scriptedSKUs{})

	_, err := uc.UpdateEquipment(ctx, owner, "eq-1", dto.UpdateEquipmentRequest{Name: "X", SKU: "EQ-2"})
	var dup *domain.DuplicateSKUError
	require.ErrorAs(t, err, &dup)
	assert.False(t, dup.Generated)

	_, err = uc.UpdateEquipment(ctx, owner, "nope", dto.UpdateEquipmentRequest{Name: "X", SKU: "EQ-9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateEquipment(ctx, owner, "eq-1", dto.UpdateEquipmentRequest{Name: "X", SKU: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := store.Equipments().GetByID(ctx, owner, "eq-1")
	require.NoError(t, err)
	assert.Equal(t, "EQ-1", got.SKU)
}

func TestUpdateEquipment_PorUnidadConservaCantidad(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, sku.NewAllocator())
	ctx := context.Background()
	created, err := uc.CreateEquipment(ctx, owner, dto.CreateEquipmentRequest{
		Name: "Lote", PerUnit: true, Quantity: 2, Units: []dto.EquipmentUnitInput{{Serial: "A"}, {Serial: "B"}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateEquipment(ctx, owner, created.ID, dto.UpdateEquipmentRequest{Name: "Lote", SKU: created.SKU, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateEquipment(ctx, owner, created.ID, dto.UpdateEquipmentRequest{Name: "Lote", SKU: created.SKU, Quantity: 2, WarrantyUntil: date(2025, 1, 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateEquipment(ctx, owner, created.ID, dto.UpdateEquipmentRequest{Name: "Lote 2", SKU: created.SKU, Quantity: 2})
	require.NoError(t, err)
	assert.Len(t, out.Units, 2)
}
