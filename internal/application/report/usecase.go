// Package report arma los reportes exportables (PDF y XLSX) y las etiquetas QR de los equipos.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/ports"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/entity"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/repository"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/warranty"
)

// Kind tipo de reporte.
type Kind string

const (
	KindEquipments   Kind = "equipments"
	KindMaintenances Kind = "maintenances"
	KindCustomers    Kind = "customers"
	KindWarranties   Kind = "warranties"
)

// Format formato de exportación.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateLayout = "02/01/2006"
	emptyText  = "Sin datos para exportar."
	missing    = "-"
)

// File documento generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UseCase genera reportes y etiquetas del dueño.
type UseCase struct {
	equipRepo    repository.EquipmentRepository
	maintRepo    repository.MaintenanceRepository
	customerRepo repository.CustomerRepository
	pdf          PDFRenderer
	xlsx         XLSXRenderer
	metrics      ports.Metrics
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	equipRepo repository.EquipmentRepository,
	maintRepo repository.MaintenanceRepository,
	customerRepo repository.CustomerRepository,
	pdf PDFRenderer,
	xlsx XLSXRenderer,
	metrics ports.Metrics,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{
		equipRepo:    equipRepo,
		maintRepo:    maintRepo,
		customerRepo: customerRepo,
		pdf:          pdf,
		xlsx:         xlsx,
		metrics:      metrics,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Generate construye el reporte kind en el formato pedido.
// Nombre de archivo: <kind>-<AAAA-MM-DD>.<ext>.
func (uc *UseCase) Generate(ctx context.Context, ownerID string, kind Kind, format Format) (*File, error) {
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatXLSX {
		return nil, domain.NewValidationError("format", "debe ser pdf o xlsx")
	}

	now := uc.now()
	var (
		t   Table
		err error
	)
	switch kind {
	case KindEquipments:
		t, err = uc.equipmentsTable(ctx, ownerID)
	case KindMaintenances:
		t, err = uc.maintenancesTable(ctx, ownerID)
	case KindCustomers:
		t, err = uc.customersTable(ctx, ownerID)
	case KindWarranties:
		t, err = uc.warrantiesTable(ctx, ownerID, now)
	default:
		return nil, domain.NewValidationError("kind", "debe ser equipments, maintenances, customers o warranties")
	}
	if err != nil {
		return nil, domain.Storage("report "+string(kind), err)
	}
	t.GeneratedAt = now
	t.EmptyText = emptyText

	file := &File{Name: fmt.Sprintf("%s-%s.%s", kind, now.Format("2006-01-02"), format)}
	if format == FormatPDF {
		file.ContentType = contentTypePDF
		file.Data, err = uc.pdf.RenderTable(ctx, t)
	} else {
		file.ContentType = contentTypeXLSX
		file.Data, err = uc.xlsx.RenderTable(ctx, t)
	}
	if err != nil {
		return nil, fmt.Errorf("report: generar %s: %w", format, err)
	}
	uc.metrics.ReportGenerated(string(kind), string(format))
	return file, nil
}

// Label genera la etiqueta PDF con el QR del SKU del equipo.
func (uc *UseCase) Label(ctx context.Context, ownerID, equipmentID string) (*File, error) {
	e, err := uc.equipRepo.GetByID(ctx, ownerID, equipmentID)
	if err != nil {
		return nil, domain.Storage("get equipment", err)
	}
	if e == nil {
		return nil, domain.NotFound("equipment", equipmentID)
	}
	data, err := uc.pdf.RenderLabel(ctx, Label{
		SKU:      e.SKU,
		Name:     e.Name,
		Model:    e.Model,
		Serial:   e.Serial,
		Customer: e.CustomerName,
		Warranty: warranty.Evaluate(e.WarrantyUntil, uc.now()).Label(),
	})
	if err != nil {
		return nil, fmt.Errorf("report: generar etiqueta: %w", err)
	}
	uc.metrics.ReportGenerated("label", string(FormatPDF))
	return &File{Name: "label-" + e.SKU + ".pdf", ContentType: contentTypePDF, Data: data}, nil
}

// ── Tablas ──

func (uc *UseCase) equipmentsTable(ctx context.Context, ownerID string) (Table, error) {
	list, err := uc.equipRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title: "Reporte de Equipos",
		Columns: []Column{
			{Header: "Nombre", Width: 2},
			{Header: "SKU", Width: 2},
			{Header: "Modelo", Width: 2},
			{Header: "Cliente", Width: 2},
			{Header: "Ubicación", Width: 2},
			{Header: "Garantía", Width: 2},
			{Header: "Cantidad", XLSXOnly: true},
		},
	}
	for _, e := range list {
		w := "Sin garantía"
		if e.WarrantyUntil != nil {
			w = e.WarrantyUntil.Format(dateLayout)
		}
		t.Rows = append(t.Rows, []string{
			orDash(e.Name), orDash(e.SKU), orDash(e.Model), orDash(e.CustomerName), orDash(e.Location), w,
			fmt.Sprint(e.Quantity),
		})
	}
	return t, nil
}

func (uc *UseCase) maintenancesTable(ctx context.Context, ownerID string) (Table, error) {
	list, err := uc.maintRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title: "Reporte de Mantenimientos",
		Columns: []Column{
			{Header: "OS", Width: 2},
			{Header: "Equipo", Width: 2},
			{Header: "Cliente", Width: 2},
			{Header: "Apertura", Width: 2},
			{Header: "Estado", Width: 2},
			{Header: "Técnico", Width: 2},
			{Header: "Término", XLSXOnly: true},
			{Header: "Problema", XLSXOnly: true},
			{Header: "Observaciones", XLSXOnly: true},
		},
	}
	for _, m := range list {
		ended := missing
		if m.EndedAt != nil {
			ended = m.EndedAt.Format(dateLayout)
		}
		t.Rows = append(t.Rows, []string{
			orDash(m.OrderNumber), orDash(m.EquipmentName), orDash(m.CustomerName),
			m.OpenedAt.Format(dateLayout), statusLabel(m.Status), orDash(m.Technician),
			ended, orDash(m.Problem), orDash(m.Notes),
		})
	}
	return t, nil
}

func (uc *UseCase) customersTable(ctx context.Context, ownerID string) (Table, error) {
	list, err := uc.customerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title: "Reporte de Clientes",
		Columns: []Column{
			{Header: "Empresa", Width: 2},
			{Header: "CNPJ", Width: 2},
			{Header: "Contacto", Width: 2},
			{Header: "Email", Width: 2},
			{Header: "Teléfono", Width: 2},
			{Header: "Dirección", Width: 2},
		},
	}
	for _, c := range list {
		t.Rows = append(t.Rows, []string{
			orDash(c.CompanyName), orDash(c.TaxID), orDash(c.ContactName),
			orDash(c.Email), orDash(c.Phone), orDash(c.Address),
		})
	}
	return t, nil
}

// warrantiesTable solo incluye equipos con fecha de garantía.
func (uc *UseCase) warrantiesTable(ctx context.Context, ownerID string, now time.Time) (Table, error) {
	list, err := uc.equipRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title: "Reporte de Garantías",
		Columns: []Column{
			{Header: "Equipo", Width: 3},
			{Header: "SKU", Width: 3},
			{Header: "Cliente", Width: 2},
			{Header: "Fecha garantía", Width: 2},
			{Header: "Estado", Width: 2},
		},
	}
	for _, e := range list {
		if e.WarrantyUntil == nil {
			continue
		}
		t.Rows = append(t.Rows, []string{
			orDash(e.Name), orDash(e.SKU), orDash(e.CustomerName),
			e.WarrantyUntil.Format(dateLayout),
			warranty.Evaluate(e.WarrantyUntil, now).ReportLabel(),
		})
	}
	return t, nil
}

func statusLabel(s string) string {
	switch s {
	case entity.MaintenanceCompleted:
		return "Finalizado"
	case entity.MaintenancePending:
		return "Pendiente"
	case entity.MaintenanceInProgress:
		return "En curso"
	default:
		return "Cancelada"
	}
}

func orDash(s string) string {
	if s == "" {
		return missing
	}
	return s
}
