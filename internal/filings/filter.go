package filings

import (
	"sort"
	"time"

	"finfetch/internal"
)

// FilterOptions narrows a filing list. Nil bounds are open; an empty
// Forms slice keeps every form type.
type FilterOptions struct {
	Start *time.Time
	End   *time.Time
	Forms []string
}

// Filter keeps the records whose filing date falls inside the inclusive
// [Start, End] window and whose form type is among Forms.
func Filter(records []internal.FilingRecord, opts FilterOptions) []internal.FilingRecord {
	out := make([]internal.FilingRecord, 0, len(records))
	for _, record := range records {
		if opts.Start != nil && record.FilingDate.Before(*opts.Start) {
			continue
		}
		if opts.End != nil && record.FilingDate.After(*opts.End) {
			continue
		}
		if len(opts.Forms) > 0 && !containsForm(opts.Forms, record.FormType) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Latest returns the n most recently filed records, newest first.
// n <= 0 returns everything, still sorted.
func Latest(records []internal.FilingRecord, n int) []internal.FilingRecord {
	out := make([]internal.FilingRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FilingDate.After(out[j].FilingDate)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func containsForm(forms []string, form string) bool {
	for _, f := range forms {
		if f == form {
			return true
		}
	}
	return false
}
