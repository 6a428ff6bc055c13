package scrape

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"finfetch/internal"
)

// ExportTableToXLSX writes a scraped table to an xlsx workbook: the
// title and column headers on row 1, then one sheet row per table row.
// Missing cells stay blank.
func ExportTableToXLSX(table *internal.FinalTable, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}

	set(1, 1, table.Title)
	for i, header := range table.ColumnHeaders {
		set(i+2, 1, header)
	}

	for r, row := range table.Rows {
		set(1, r+2, row.Label)
		for c, cell := range row.Cells {
			switch {
			case cell.Value != nil:
				set(c+2, r+2, *cell.Value)
			case cell.Missing:
				// blank
			default:
				set(c+2, r+2, cell.Text)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
