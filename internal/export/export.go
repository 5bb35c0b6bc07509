// Package export renders a costed recipe as an XLSX workbook.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/costeo/internal/costing"
)

const sheetName = "Costos"

// CostSheet writes one row per ingredient line followed by the totals.
func CostSheet(title string, quantity float64, res costing.Result) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Producto", title},
		{"Cantidad", quantity},
		{},
		{"Materia prima", "Gramos", "Precio por kg", "Costo"},
	}
	for _, line := range res.Lines {
		name := line.MaterialName
		if name == "" {
			name = "(sin seleccionar)"
		}
		rows = append(rows, []interface{}{name, line.Grams, line.PricePerKg, costing.Round2(line.Cost)})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Costo total materia prima", costing.Round2(res.Totals.RawMaterialCost)},
		[]interface{}{"Total con ganancia", costing.Round2(res.Totals.WithMargin)},
		[]interface{}{"Precio por unidad", costing.Round2(res.Totals.PricePerUnit)},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
