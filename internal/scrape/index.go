package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finfetch/internal"
	"finfetch/internal/util"
)

// Every statement directory carries a FilingSummary.xml sibling listing
// each table's display name and document filename.
const indexFileName = "FilingSummary.xml"

// ListTables fetches the statement's filing summary and returns every
// table it lists as (name, url), in index order. The trailing index
// entry is bookkeeping metadata rather than a table and is always
// dropped.
func (s *Scraper) ListTables(ctx context.Context, statementURL string) ([]internal.TableIndexEntry, error) {
	indexURL, err := siblingURL(statementURL, indexFileName)
	if err != nil {
		return nil, &Error{Kind: FailureFetch, Detail: "resolve index url", Row: -1, Err: err}
	}

	body, err := s.fetch(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: FailureIndexParse, Detail: "parse filing summary", Row: -1, Err: err}
	}

	reports := doc.Find("myreports")
	if reports.Length() == 0 {
		return nil, newError(FailureIndexParse, "myreports element not found in "+indexURL)
	}

	items := reports.Find("report")
	n := items.Length()
	if n == 0 {
		return nil, newError(FailureIndexParse, "filing summary lists no reports")
	}

	entries := make([]internal.TableIndexEntry, 0, n-1)
	var parseErr error
	items.Slice(0, n-1).EachWithBreak(func(_ int, report *goquery.Selection) bool {
		name := util.CleanCell(report.Find("shortname").First().Text())
		file := strings.TrimSpace(report.Find("htmlfilename").First().Text())
		tableURL, err := siblingURL(statementURL, file)
		if err != nil {
			parseErr = err
			return false
		}
		entries = append(entries, internal.TableIndexEntry{Name: name, URL: tableURL})
		return true
	})
	if parseErr != nil {
		return nil, &Error{Kind: FailureIndexParse, Detail: "resolve table url", Row: -1, Err: parseErr}
	}

	return entries, nil
}

// siblingURL swaps the last path segment of a statement URL for another
// filename in the same filing directory.
func siblingURL(statementURL, fileName string) (string, error) {
	u, err := url.Parse(statementURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("statement url is not absolute: %s", statementURL)
	}
	i := strings.LastIndex(u.Path, "/")
	if i < 0 {
		return "", fmt.Errorf("statement url has no path: %s", statementURL)
	}
	u.Path = u.Path[:i+1] + fileName
	return u.String(), nil
}
