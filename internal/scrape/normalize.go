package scrape

import (
	"strconv"
	"strings"

	"finfetch/internal"
)

// Accounting notation: $ and , are noise, a leading ( marks a negative
// value and its companion ) is stripped like any other noise character.
var cellReplacer = strings.NewReplacer("$", "", ",", "", ")", "", "(", "-")

// normalizeCell reduces one data-row value cell to a float or the
// explicit missing marker. Row labels (column 0) never pass through
// here.
func normalizeCell(raw string) (internal.Cell, error) {
	stripped := strings.TrimSpace(cellReplacer.Replace(raw))
	if stripped == "" {
		return internal.Cell{Missing: true}, nil
	}
	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return internal.Cell{}, err
	}
	return internal.Cell{Value: &value}, nil
}
