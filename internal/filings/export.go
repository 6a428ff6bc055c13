package filings

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"finfetch/internal"
)

// ExportRecordsToXLSX writes a filing list to an xlsx workbook, one
// record per row under a fixed header.
func ExportRecordsToXLSX(records []internal.FilingRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"identifier", "filing_date", "form_type", "name", "url", "accession_number"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, record := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, record.Identifier)
		set(2, record.FilingDate.Format("2006-01-02"))
		set(3, record.FormType)
		set(4, record.Name)
		set(5, record.URL)
		set(6, record.AccessionNumber)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
