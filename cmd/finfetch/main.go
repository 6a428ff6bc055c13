package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"finfetch/internal"
	"finfetch/internal/config"
	"finfetch/internal/filings"
	"finfetch/internal/scrape"
)

func main() {
	configureLogging()

	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := os.Args[1]
	switch cmd {
	case "filings:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		identifiers := fs.String("identifiers", "", "comma-separated company identifiers, e.g. AAPL,MSFT")
		start := fs.String("start", "", "earliest filing date, YYYY-MM-DD")
		end := fs.String("end", "", "latest filing date, YYYY-MM-DD")
		forms := fs.String("forms", "", "comma-separated form types, e.g. 10-K,10-Q")
		out := fs.String("out", "", "optional output xlsx path")
		_ = fs.Parse(os.Args[2:])

		records := fetchFilings(ctx, cfg, *identifiers, *start, *end, *forms)
		finishFilings(records, *out)
	case "filings:latest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		identifiers := fs.String("identifiers", "", "comma-separated company identifiers")
		n := fs.Int("n", 1, "number of most recent filings")
		forms := fs.String("forms", "", "comma-separated form types")
		out := fs.String("out", "", "optional output xlsx path")
		_ = fs.Parse(os.Args[2:])

		records := fetchFilings(ctx, cfg, *identifiers, "", "", *forms)
		finishFilings(filings.Latest(records, *n), *out)
	case "tables:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		statementURL := fs.String("url", "", "financial statement url")
		_ = fs.Parse(os.Args[2:])
		requireFlag("--url", *statementURL)
		must(cfg.Require("IDENTITY_EMAIL", cfg.IdentityEmail))

		entries, err := scrape.NewScraper(cfg).ListTables(ctx, *statementURL)
		must(err)
		for _, entry := range entries {
			fmt.Printf("%s\t%s\n", entry.Name, entry.URL)
		}
	case "tables:url":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		statementURL := fs.String("url", "", "financial statement url")
		name := fs.String("name", "", "exact table name")
		_ = fs.Parse(os.Args[2:])
		requireFlag("--url", *statementURL)
		requireFlag("--name", *name)
		must(cfg.Require("IDENTITY_EMAIL", cfg.IdentityEmail))

		tableURL, err := scrape.NewScraper(cfg).TableURL(ctx, *statementURL, *name)
		must(err)
		fmt.Println(tableURL)
	case "table:scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		statementURL := fs.String("url", "", "financial statement url")
		name := fs.String("name", "", "exact table name")
		out := fs.String("out", "", "optional output xlsx path")
		_ = fs.Parse(os.Args[2:])
		requireFlag("--url", *statementURL)
		requireFlag("--name", *name)
		must(cfg.Require("IDENTITY_EMAIL", cfg.IdentityEmail))

		table, err := scrape.NewScraper(cfg).ScrapeTable(ctx, *statementURL, *name)
		must(err)
		if strings.TrimSpace(*out) != "" {
			must(scrape.ExportTableToXLSX(table, *out))
			fmt.Printf("exported %d rows to %s\n", len(table.Rows), *out)
			return
		}
		printTable(table)
	default:
		usage()
		os.Exit(1)
	}
}

func fetchFilings(ctx context.Context, cfg config.Config, identifiers, start, end, forms string) []internal.FilingRecord {
	ids := splitList(identifiers)
	if len(ids) == 0 {
		must(fmt.Errorf("--identifiers is required"))
	}
	must(cfg.Require("FILINGS_API_KEY", cfg.FilingsAPIKey))

	records, err := filings.NewClient(cfg).FilingsForAll(ctx, ids)
	must(err)

	opts := filings.FilterOptions{Forms: splitList(forms)}
	opts.Start = parseDateFlag("--start", start)
	opts.End = parseDateFlag("--end", end)
	return filings.Filter(records, opts)
}

func finishFilings(records []internal.FilingRecord, out string) {
	if strings.TrimSpace(out) != "" {
		must(filings.ExportRecordsToXLSX(records, out))
		fmt.Printf("exported %d filings to %s\n", len(records), out)
		return
	}
	for _, record := range records {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
			record.Identifier, record.FilingDate.Format("2006-01-02"), record.FormType, record.Name, record.URL)
	}
}

func printTable(table *internal.FinalTable) {
	fmt.Println(table.Title)
	fmt.Printf("\t%s\n", strings.Join(table.ColumnHeaders, "\t"))
	for _, row := range table.Rows {
		parts := make([]string, 0, len(row.Cells)+1)
		parts = append(parts, row.Label)
		for _, cell := range row.Cells {
			switch {
			case cell.Value != nil:
				parts = append(parts, fmt.Sprintf("%g", *cell.Value))
			case cell.Missing:
				parts = append(parts, "")
			default:
				parts = append(parts, cell.Text)
			}
		}
		fmt.Println(strings.Join(parts, "\t"))
	}
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDateFlag(name, value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		must(fmt.Errorf("%s must be YYYY-MM-DD: %w", name, err))
	}
	return &parsed
}

func requireFlag(name, value string) {
	if strings.TrimSpace(value) == "" {
		must(fmt.Errorf("%s is required", name))
	}
}

func usage() {
	fmt.Println("usage: finfetch <command>")
	fmt.Println("commands:")
	fmt.Println("  filings:list   --identifiers=AAPL,MSFT [--start=2020-01-01] [--end=2021-12-09] [--forms=10-K,10-Q] [--out=filings.xlsx]")
	fmt.Println("  filings:latest --identifiers=AAPL [--n=2] [--forms=10-K] [--out=filings.xlsx]")
	fmt.Println("  tables:list    --url=<statement url>")
	fmt.Println("  tables:url     --url=<statement url> --name=\"CONSOLIDATED BALANCE SHEETS\"")
	fmt.Println("  table:scrape   --url=<statement url> --name=\"...\" [--out=table.xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
