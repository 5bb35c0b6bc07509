package export

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/costeo/internal/costing"
)

func TestCostSheetWritesLinesAndTotals(t *testing.T) {
	res := costing.Result{
		Lines: []costing.Line{
			{IngredientID: "l1", MaterialID: "flour", MaterialName: "Harina", PricePerKg: 100, Grams: 250, Cost: 25},
			{IngredientID: "l2", Grams: 10},
		},
		Totals: costing.Totals{RawMaterialCost: 25, WithMargin: 71.42857142857143, PricePerUnit: 35.714285714285715},
	}

	buf, err := CostSheet("Pan", 2, res)
	if err != nil {
		t.Fatalf("CostSheet: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	expect := map[string]string{
		"A1":  "Producto",
		"B1":  "Pan",
		"A5":  "Harina",
		"D5":  "25",
		"A6":  "(sin seleccionar)",
		"A8":  "Costo total materia prima",
		"B9":  "71.43",
		"B10": "35.71",
	}
	for cell, want := range expect {
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("%s = %q, want %q (rows=%v)", cell, got, want, rows)
		}
	}
}
