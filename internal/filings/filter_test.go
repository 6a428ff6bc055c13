package filings

import (
	"testing"
	"time"

	"finfetch/internal"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func sampleRecords(t *testing.T) []internal.FilingRecord {
	t.Helper()
	return []internal.FilingRecord{
		{Name: "old annual", FormType: "10-K", FilingDate: mustDate(t, "2020-01-15")},
		{Name: "quarterly", FormType: "10-Q", FilingDate: mustDate(t, "2021-06-01")},
		{Name: "current report", FormType: "8-K", FilingDate: mustDate(t, "2021-09-10")},
		{Name: "annual", FormType: "10-K", FilingDate: mustDate(t, "2021-10-29")},
	}
}

func TestFilterDateWindowIsInclusive(t *testing.T) {
	records := sampleRecords(t)
	start := mustDate(t, "2021-06-01")
	end := mustDate(t, "2021-10-29")

	got := Filter(records, FilterOptions{Start: &start, End: &end})
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].Name != "quarterly" || got[2].Name != "annual" {
		t.Fatalf("boundary records missing: %v", got)
	}
}

func TestFilterForms(t *testing.T) {
	got := Filter(sampleRecords(t), FilterOptions{Forms: []string{"10-K"}})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.FormType != "10-K" {
			t.Fatalf("unexpected form %q", r.FormType)
		}
	}
}

func TestFilterNoOptionsKeepsAll(t *testing.T) {
	records := sampleRecords(t)
	if got := Filter(records, FilterOptions{}); len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
}

func TestLatest(t *testing.T) {
	records := sampleRecords(t)

	got := Latest(records, 2)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Name != "annual" || got[1].Name != "current report" {
		t.Fatalf("got %v %v", got[0].Name, got[1].Name)
	}

	// The input order must survive.
	if records[0].Name != "old annual" {
		t.Fatal("input slice was reordered")
	}

	if got := Latest(records, 0); len(got) != len(records) {
		t.Fatalf("n<=0 should keep all, got %d", len(got))
	}
}
