package scrape

import (
	"fmt"
	"strings"

	"finfetch/internal"
)

// assemble merges the classified rows back into one labeled table.
// Section and data rows stay in their original document order; column
// headers come from the captured header rows:
//
//	2 header rows: the first is the grouping caption and folds into the
//	  title, the second holds the per-column headers
//	1 header row: that row minus its first cell (the implicit row-label
//	  column header, folded into the title)
//	0 or 3+ header rows: unrecognized layout, hard failure
func assemble(rows []internal.ClassifiedRow) (*internal.FinalTable, error) {
	headers := headerRows(rows)
	if len(headers) == 0 || len(headers) > 2 {
		return nil, &Error{
			Kind:   FailureHeaderLayout,
			Detail: fmt.Sprintf("%d header rows captured, want 1 or 2", len(headers)),
			Row:    -1,
			Rows:   rows,
		}
	}

	body := make([]internal.TableRow, 0, len(rows))
	valueCols := 0
	for _, row := range rows {
		switch row.Kind {
		case internal.RowHeader:
			continue
		case internal.RowSection:
			body = append(body, sectionRow(row))
		case internal.RowData:
			tableRow, err := dataRow(row, rows)
			if err != nil {
				return nil, err
			}
			body = append(body, tableRow)
			if n := len(row.Cells) - 1; n > valueCols {
				valueCols = n
			}
		}
	}

	var columns []string
	if len(headers) == 2 {
		columns = headers[1]
		// Some layouts repeat the row-label column header in the second
		// header row; fold it off so columns align with value cells.
		if len(columns) == valueCols+1 {
			columns = columns[1:]
		}
	} else {
		columns = headers[0]
		if len(columns) > 0 {
			columns = columns[1:]
		}
	}

	return &internal.FinalTable{
		Title:         strings.Join(headers[0], " - "),
		ColumnHeaders: columns,
		Rows:          body,
	}, nil
}

func sectionRow(row internal.ClassifiedRow) internal.TableRow {
	out := internal.TableRow{Kind: internal.RowSection}
	if len(row.Cells) == 0 {
		return out
	}
	out.Label = row.Cells[0]
	out.Cells = make([]internal.Cell, 0, len(row.Cells)-1)
	for _, text := range row.Cells[1:] {
		out.Cells = append(out.Cells, internal.Cell{Text: text})
	}
	return out
}

func dataRow(row internal.ClassifiedRow, all []internal.ClassifiedRow) (internal.TableRow, error) {
	out := internal.TableRow{Kind: internal.RowData}
	if len(row.Cells) == 0 {
		return out, nil
	}
	out.Label = row.Cells[0]
	out.Cells = make([]internal.Cell, 0, len(row.Cells)-1)
	for _, raw := range row.Cells[1:] {
		cell, err := normalizeCell(raw)
		if err != nil {
			return internal.TableRow{}, &Error{
				Kind:   FailureNumericCoercion,
				Detail: "cell is not numeric, missing or accounting-formatted",
				Row:    row.Pos,
				Cell:   raw,
				Rows:   all,
				Err:    err,
			}
		}
		out.Cells = append(out.Cells, cell)
	}
	return out, nil
}
