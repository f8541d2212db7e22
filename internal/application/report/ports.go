package report

import (
	"context"
	"time"
)

// Column columna de un reporte tabular. Width es el ancho en la grilla de 12 del PDF;
// las columnas XLSXOnly solo aparecen en la planilla.
type Column struct {
	Header   string
	Width    int
	XLSXOnly bool
}

// Table documento tabular independiente del formato.
type Table struct {
	Title       string
	Columns     []Column
	Rows        [][]string
	GeneratedAt time.Time
	EmptyText   string // se imprime cuando Rows está vacío
}

// Label etiqueta imprimible de un equipo con el QR de su SKU.
type Label struct {
	SKU      string
	Name     string
	Model    string
	Serial   string
	Customer string
	Warranty string
}

// PDFRenderer puerto de salida hacia el generador PDF (maroto).
type PDFRenderer interface {
	RenderTable(ctx context.Context, t Table) ([]byte, error)
	RenderLabel(ctx context.Context, l Label) ([]byte, error)
}

// XLSXRenderer puerto de salida hacia el generador de planillas (excelize).
type XLSXRenderer interface {
	RenderTable(ctx context.Context, t Table) ([]byte, error)
}
