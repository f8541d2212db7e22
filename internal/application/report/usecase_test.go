package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/ports"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/infrastructure/memory"
)

const owner = "owner-1"

var now = time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)

type recorder struct {
	tables []report.Table
	labels []report.Label
	err    error
}

func (r *recorder) RenderTable(_ context.Context, t report.Table) ([]byte, error) {
	r.tables = append(r.tables, t)
	return []byte("doc"), r.err
}

func (r *recorder) RenderLabel(_ context.Context, l report.Label) ([]byte, error) {
	r.labels = append(r.labels, l)
	return []byte("label"), r.err
}

type countingMetrics struct {
	ports.NopMetrics
	reports []string
}

func (m *countingMetrics) ReportGenerated(kind, format string) {
	m.reports = append(m.reports, kind+"/"+format)
}

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func setup(t *testing.T) (*report.UseCase, *recorder, *recorder, *countingMetrics, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	pdf, xlsx, metrics := &recorder{}, &recorder{}, &countingMetrics{}
	uc := report.NewUseCase(store.Equipments(), store.Maintenances(), store.Customers(), pdf, xlsx, metrics).
		WithClock(func() time.Time { return now })
	return uc, pdf, xlsx, metrics, store
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c1", OwnerID: owner, CompanyName: "Clínica Norte", TaxID: "12.345.678/0001-90"}))
	for _, e := range []*entity.Equipment{
		{ID: "e1", Name: "Monitor", SKU: "EQ-1", Quantity: 3, CustomerID: "c1", WarrantyUntil: at(2024, 7, 20), CreatedAt: now},
		{ID: "e2", Name: "Bomba", SKU: "EQ-2", Quantity: 1, WarrantyUntil: at(2024, 1, 1), CreatedAt: now.Add(-time.Hour)},
		{ID: "e3", Name: "Maca", SKU: "EQ-3", Quantity: 5, CreatedAt: now.Add(-2 * time.Hour)},
	} {
		e.OwnerID = owner
		require.NoError(t, store.Equipments().Create(ctx, e))
	}
	require.NoError(t, store.Maintenances().Create(ctx, &entity.Maintenance{
		ID: "m1", OwnerID: owner, EquipmentID: "e1", OpenedAt: *at(2024, 7, 1), Status: entity.MaintenanceInProgress, Technician: "Rui",
	}))
}

func TestGenerate_Equipos(t *testing.T) {
	uc, pdf, _, metrics, store := setup(t)
	seed(t, store)

	f, err := uc.Generate(context.Background(), owner, report.KindEquipments, report.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "equipments-2024-07-15.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, []byte("doc"), f.Data)

	require.Len(t, pdf.tables, 1)
	tbl := pdf.tables[0]
	assert.Equal(t, "Reporte de Equipos", tbl.Title)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"Monitor", "EQ-1", "-", "Clínica Norte", "-", "20/07/2024", "3"}, tbl.Rows[0])
	assert.Equal(t, "Sin garantía", tbl.Rows[2][5])
	assert.Equal(t, now, tbl.GeneratedAt)
	assert.Equal(t, []string{"equipments/pdf"}, metrics.reports)
}

func TestGenerate_GarantiasSoloConFecha(t *testing.T) {
	uc, _, xlsx, _, store := setup(t)
	seed(t, store)

	f, err := uc.Generate(context.Background(), owner, report.KindWarranties, report.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "warranties-2024-07-15.xlsx", f.Name)

	require.Len(t, xlsx.tables, 1)
	rows := xlsx.tables[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Por vencer", rows[0][4])
	assert.Equal(t, "Vencida", rows[1][4])
}

func TestGenerate_MantenimientosYClientes(t *testing.T) {
	uc, pdf, _, _, store := setup(t)
	seed(t, store)
	ctx := context.Background()

	_, err := uc.Generate(ctx, owner, report.KindMaintenances, "")
	require.NoError(t, err)
	_, err = uc.Generate(ctx, owner, report.KindCustomers, report.FormatPDF)
	require.NoError(t, err)

	require.Len(t, pdf.tables, 2)
	assert.Equal(t, []string{"OS-000001", "Monitor", "Clínica Norte", "01/07/2024", "En curso", "Rui", "-", "-", "-"}, pdf.tables[0].Rows[0])
	assert.Equal(t, "12.345.678/0001-90", pdf.tables[1].Rows[0][1])
}

func TestGenerate_SinDatos(t *testing.T) {
	uc, pdf, _, _, _ := setup(t)

	_, err := uc.Generate(context.Background(), owner, report.KindCustomers, report.FormatPDF)
	require.NoError(t, err)
	require.Len(t, pdf.tables, 1)
	assert.Empty(t, pdf.tables[0].Rows)
	assert.NotEmpty(t, pdf.tables[0].EmptyText)
}

func TestGenerate_Errores(t *testing.T) {
	uc, pdf, _, metrics, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Generate(ctx, owner, "stock", report.FormatPDF)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, owner, report.KindCustomers, "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	pdf.err = errors.New("fuente no disponible")
	_, err = uc.Generate(ctx, owner, report.KindCustomers, report.FormatPDF)
	assert.Error(t, err)
	assert.Empty(t, metrics.reports)
}

func TestLabel(t *testing.T) {
	uc, pdf, _, _, store := setup(t)
	seed(t, store)

	f, err := uc.Label(context.Background(), owner, "e1")
	require.NoError(t, err)
	assert.Equal(t, "label-EQ-1.pdf", f.Name)
	require.Len(t, pdf.labels, 1)
	assert.Equal(t, "EQ-1", pdf.labels[0].SKU)
	assert.Equal(t, "Clínica Norte", pdf.labels[0].Customer)
	assert.Equal(t, "Vence en 5 días", pdf.labels[0].Warranty)

	_, err = uc.Label(context.Background(), owner, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
