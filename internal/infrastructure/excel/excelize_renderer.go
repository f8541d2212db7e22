// Package excel implementa report.XLSXRenderer con excelize: una hoja con cabecera y una fila por registro.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/report"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "Reporte"

var _ report.XLSXRenderer = (*ExcelizeRenderer)(nil)

// ExcelizeRenderer implementa report.XLSXRenderer.
type ExcelizeRenderer struct{}

// NewExcelizeRenderer construye el generador.
func NewExcelizeRenderer() *ExcelizeRenderer { return &ExcelizeRenderer{} }

// RenderTable vuelca la tabla completa (incluidas las columnas XLSXOnly) y devuelve los bytes del .xlsx.
func (r *ExcelizeRenderer) RenderTable(_ context.Context, t report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: t.Title, Creator: "Garantia Tech Flow"}); err != nil {
		return nil, fmt.Errorf("excel: propiedades: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"3B82F6"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, c := range t.Columns {
		if err := setCell(f, i+1, 1, c.Header); err != nil {
			return nil, err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, name, name, 20); err != nil {
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
			return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
		}
	}

	if len(t.Rows) == 0 {
		if err := setCell(f, 1, 2, t.EmptyText); err != nil {
			return nil, err
		}
	}
	for n, values := range t.Rows {
		for i, v := range values {
			if err := setCell(f, i+1, n+2, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, v string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("excel: celda %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("excel: escribir %s: %w", cell, err)
	}
	return nil
}
