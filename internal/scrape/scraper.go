package scrape

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"finfetch/internal"
	"finfetch/internal/config"
)

// Scraper fetches statement documents from the filing host and turns a
// named sub-table into a FinalTable. Every call is independent and
// synchronous; nothing is cached between calls.
type Scraper struct {
	identity   string
	httpClient *http.Client
}

func NewScraper(cfg config.Config) *Scraper {
	return &Scraper{
		identity:   cfg.IdentityEmail,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
	}
}

// TableNames lists the display names of every table in the statement,
// in index order.
func (s *Scraper) TableNames(ctx context.Context, statementURL string) ([]string, error) {
	entries, err := s.ListTables(ctx, statementURL)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// TableURL resolves an exact table name to its document URL. Duplicate
// names resolve to the first entry in document order. A missing name is
// a lookup failure, never a fetch failure.
func (s *Scraper) TableURL(ctx context.Context, statementURL, name string) (string, error) {
	entries, err := s.ListTables(ctx, statementURL)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Name == name {
			return e.URL, nil
		}
	}
	return "", newError(FailureLookupNotFound, fmt.Sprintf("no table named %q", name))
}

// ScrapeTable runs the full pipeline for one named table: resolve its
// document, classify the rows, coerce the data cells and reassemble
// everything in document order.
func (s *Scraper) ScrapeTable(ctx context.Context, statementURL, name string) (*internal.FinalTable, error) {
	tableURL, err := s.TableURL(ctx, statementURL, name)
	if err != nil {
		return nil, err
	}
	log.Info().Str("table", name).Str("url", tableURL).Msg("resolved table document")

	body, err := s.fetch(ctx, tableURL)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("bytes", len(body)).Msg("fetched table document")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: FailureRowClassification, Detail: "parse table document", Row: -1, Err: err}
	}

	rows, err := classifyRows(doc)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rows", len(rows)).Msg("classified table rows")

	table, err := assemble(rows)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("title", table.Title).Int("rows", len(table.Rows)).Msg("assembled table")

	return table, nil
}

// fetch performs one blocking GET with the polite-access header set the
// statement host expects. Transport errors and non-2xx statuses come
// back as fetch failures unchanged.
func (s *Scraper) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{Kind: FailureFetch, Detail: "invalid document url: " + rawURL, Row: -1, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: FailureFetch, Detail: "build request", Row: -1, Err: err}
	}
	req.Header.Set("User-Agent", s.identity)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Host = u.Host

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: FailureFetch, Detail: "get " + rawURL, Row: -1, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(FailureFetch, fmt.Sprintf("status %d for %s", resp.StatusCode, rawURL))
	}

	// Accept-Encoding was set by hand, so decoding is on us.
	reader := io.Reader(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &Error{Kind: FailureFetch, Detail: "gzip body", Row: -1, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &Error{Kind: FailureFetch, Detail: "read body", Row: -1, Err: err}
	}
	return body, nil
}
