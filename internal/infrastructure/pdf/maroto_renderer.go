// Package pdf implementa report.PDFRenderer con Maroto v2: reportes tabulares y etiquetas QR.
//
// Layout del reporte (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO                               Generado el: fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CABECERA: columnas con fondo azul                          │
//	│  FILAS (o leyenda "sin datos")                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
)

// ── Paleta de colores ──

var (
	colorPrimary = &props.Color{Red: 59, Green: 130, Blue: 246}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 241, Green: 245, Blue: 249}
)

const gridSize = 12

var _ report.PDFRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa report.PDFRenderer.
type MarotoRenderer struct {
	author string
}

// NewMarotoRenderer construye el generador. author va en los metadatos del PDF.
func NewMarotoRenderer(author string) *MarotoRenderer { return &MarotoRenderer{author: author} }

// RenderTable genera el reporte tabular. Las columnas XLSXOnly se omiten.
func (g *MarotoRenderer) RenderTable(_ context.Context, t report.Table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols, idx := pdfColumns(t.Columns)
	if len(t.Rows) == 0 {
		m.AddRows(row.New(12).Add(col.New(gridSize).Add(
			text.New(t.EmptyText, props.Text{Size: 10, Top: 4, Color: colorGray}),
		)))
	} else {
		m.AddRows(tableHeaderRow(cols))
		m.AddRows(tableBodyRows(cols, idx, t.Rows)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderLabel genera una etiqueta de 100x60 mm: QR del SKU a la izquierda y datos a la derecha.
func (g *MarotoRenderer) RenderLabel(_ context.Context, l report.Label) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(100, 60).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Etiqueta "+l.SKU, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(44).Add(
		col.New(5).Add(code.NewQr(l.SKU, props.Rect{Percent: 95, Center: true})),
		col.New(7).Add(
			text.New(l.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Left: 2, Color: colorPrimary}),
			text.New("Modelo: "+nonEmpty(l.Model, "-"), props.Text{Top: 10, Left: 2}),
			text.New("Serie: "+nonEmpty(l.Serial, "-"), props.Text{Top: 15, Left: 2}),
			text.New("Cliente: "+nonEmpty(l.Customer, "-"), props.Text{Top: 20, Left: 2}),
			text.New(l.Warranty, props.Text{Style: fontstyle.Bold, Top: 27, Left: 2, Color: colorGray}),
		),
	))
	m.AddRows(row.New(8).Add(col.New(gridSize).Add(
		text.New(l.SKU, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ──

func titleRow(t report.Table) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(t.Title, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado el: "+t.GeneratedAt.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 5, Color: colorGray,
		})),
	)
}

func tableHeaderRow(cols []report.Column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.Width).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableBodyRows(cols []report.Column, idx []int, rows [][]string) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for n, values := range rows {
		r := row.New(7)
		for i, c := range cols {
			v := ""
			if idx[i] < len(values) {
				v = values[idx[i]]
			}
			r.Add(col.New(c.Width).Add(text.New(v, props.Text{Size: 8, Top: 1.5, Left: 1, Right: 1})))
		}
		if n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// ── helpers ──

// pdfColumns columnas visibles en PDF y su índice dentro de cada fila.
// Un ancho 0 reparte lo que sobra de la grilla.
func pdfColumns(all []report.Column) ([]report.Column, []int) {
	var (
		cols []report.Column
		idx  []int
	)
	used, flexible := 0, 0
	for i, c := range all {
		if c.XLSXOnly {
			continue
		}
		cols = append(cols, c)
		idx = append(idx, i)
		used += c.Width
		if c.Width == 0 {
			flexible++
		}
	}
	if flexible > 0 {
		share := max((gridSize-used)/flexible, 1)
		for i := range cols {
			if cols[i].Width == 0 {
				cols[i].Width = share
			}
		}
	}
	return cols, idx
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
