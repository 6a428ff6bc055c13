package scrape

import (
	"errors"
	"fmt"

	"finfetch/internal"
)

// FailureKind identifies which pipeline stage rejected the document.
type FailureKind string

const (
	FailureFetch             FailureKind = "fetch"
	FailureIndexParse        FailureKind = "index_parse"
	FailureLookupNotFound    FailureKind = "lookup_not_found"
	FailureRowClassification FailureKind = "row_classification"
	FailureHeaderLayout      FailureKind = "header_layout"
	FailureNumericCoercion   FailureKind = "numeric_coercion"
)

// Error is the scrape pipeline's failure value. The pipeline fails fast
// and whole: no partial FinalTable is ever returned. Rows carries the
// last successfully classified row set for diagnostic inspection and is
// nil when the failure happened before classification completed.
type Error struct {
	Kind   FailureKind
	Detail string
	Row    int    // original document row position, -1 when not row-scoped
	Cell   string // offending cell text, "" when not cell-scoped
	Rows   []internal.ClassifiedRow
	Err    error
}

func newError(kind FailureKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Row: -1}
}

func (e *Error) Error() string {
	msg := "scrape: " + string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(" (row %d)", e.Row)
	}
	if e.Cell != "" {
		msg += fmt.Sprintf(" cell %q", e.Cell)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the failure kind of err when it wraps a scrape Error.
func KindOf(err error) (FailureKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
