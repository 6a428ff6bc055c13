package internal

import "time"

// RowKind tags a statement-table row by the markup shape it was
// classified from. Every row carries exactly one kind.
type RowKind string

const (
	RowHeader  RowKind = "header"
	RowSection RowKind = "section"
	RowData    RowKind = "data"
)

// FilingRecord is one entry of a company's filing list.
type FilingRecord struct {
	Identifier      string
	Name            string
	FormType        string
	FilingDate      time.Time
	URL             string
	AccessionNumber string
}

// TableIndexEntry maps a table's display name to its document URL
// within one financial statement.
type TableIndexEntry struct {
	Name string
	URL  string
}

// ClassifiedRow is one table row with its original document position.
// Keeping all rows in a single position-ordered sequence is what makes
// the final table come out in document order.
type ClassifiedRow struct {
	Pos   int
	Kind  RowKind
	Cells []string
}

// Cell is one normalized table cell. Data-row value cells carry either
// a float or the explicit missing marker; section-row cells keep their
// raw text and are never coerced.
type Cell struct {
	Value   *float64
	Missing bool
	Text    string
}

type TableRow struct {
	Label string
	Kind  RowKind
	Cells []Cell
}

// FinalTable is the scraped statement table: labeled rows in original
// document order under the statement's column headers. Built once per
// scrape, never mutated after return.
type FinalTable struct {
	Title         string
	ColumnHeaders []string
	Rows          []TableRow
}

func (t *FinalTable) RowLabels() []string {
	labels := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		labels = append(labels, row.Label)
	}
	return labels
}

// Cell returns the cell under columnHeader for the first row labeled
// rowLabel. The second return is false when either key is absent.
func (t *FinalTable) Cell(rowLabel, columnHeader string) (Cell, bool) {
	col := -1
	for i, h := range t.ColumnHeaders {
		if h == columnHeader {
			col = i
			break
		}
	}
	if col < 0 {
		return Cell{}, false
	}
	for _, row := range t.Rows {
		if row.Label != rowLabel {
			continue
		}
		if col < len(row.Cells) {
			return row.Cells[col], true
		}
		return Cell{}, false
	}
	return Cell{}, false
}
