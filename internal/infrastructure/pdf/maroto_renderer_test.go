package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
)

func TestRenderTable(t *testing.T) {
	g := NewMarotoRenderer("Garantia Tech Flow")
	tbl := report.Table{
		Title:       "Reporte de Clientes",
		Columns:     []report.Column{{Header: "Empresa", Width: 6}, {Header: "CNPJ", Width: 6}, {Header: "Notas", XLSXOnly: true}},
		Rows:        [][]string{{"Clínica Norte", "12.345.678/0001-90", "x"}, {"Hospital Vida", "-", "y"}},
		GeneratedAt: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		EmptyText:   "Sin datos",
	}

	doc, err := g.RenderTable(context.Background(), tbl)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	tbl.Rows = nil
	empty, err := g.RenderTable(context.Background(), tbl)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}

func TestRenderLabel(t *testing.T) {
	doc, err := NewMarotoRenderer("").RenderLabel(context.Background(), report.Label{
		SKU: "EQ-LOYW3V28-AAAA", Name: "Monitor", Warranty: "Garantía vigente",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestPDFColumns(t *testing.T) {
	cols, idx := pdfColumns([]report.Column{
		{Header: "A", Width: 4},
		{Header: "B", XLSXOnly: true},
		{Header: "C"},
		{Header: "D"},
	})
	require.Len(t, cols, 3)
	assert.Equal(t, []int{0, 2, 3}, idx)
	assert.Equal(t, 4, cols[1].Width)
	assert.Equal(t, 4, cols[2].Width)
}
