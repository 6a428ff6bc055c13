package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"finfetch/internal"
	"finfetch/internal/util"
)

// classifyRows walks the first table of a statement document and tags
// every row by its cell markup:
//
//	any th cell                -> header row (ordered th texts)
//	no th, any strong-styled   -> section row (ordered td texts)
//	neither                    -> data row (ordered td texts)
//
// A row carrying both th and strong markers matches no recognized
// shape and fails the whole operation.
func classifyRows(doc *goquery.Document) ([]internal.ClassifiedRow, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, newError(FailureRowClassification, "document has no table element")
	}

	var rows []internal.ClassifiedRow
	var failure *Error
	table.Find("tr").EachWithBreak(func(pos int, row *goquery.Selection) bool {
		headerCells := row.Find("th")
		emphasized := row.Find("strong")

		switch {
		case headerCells.Length() > 0 && emphasized.Length() > 0:
			failure = &Error{
				Kind:   FailureRowClassification,
				Detail: "row carries both header and section markers",
				Row:    pos,
			}
			return false
		case headerCells.Length() > 0:
			rows = append(rows, internal.ClassifiedRow{Pos: pos, Kind: internal.RowHeader, Cells: cellTexts(headerCells)})
		case emphasized.Length() > 0:
			rows = append(rows, internal.ClassifiedRow{Pos: pos, Kind: internal.RowSection, Cells: cellTexts(row.Find("td"))})
		default:
			rows = append(rows, internal.ClassifiedRow{Pos: pos, Kind: internal.RowData, Cells: cellTexts(row.Find("td"))})
		}
		return true
	})
	if failure != nil {
		return nil, failure
	}

	return rows, nil
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, util.CleanCell(cell.Text()))
	})
	return out
}

// headerRows filters the ordered row set down to the header-row texts,
// preserving document order.
func headerRows(rows []internal.ClassifiedRow) [][]string {
	var out [][]string
	for _, row := range rows {
		if row.Kind == internal.RowHeader {
			out = append(out, row.Cells)
		}
	}
	return out
}
