package filings

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"finfetch/internal/config"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(fn roundTripFunc) *Client {
	c := NewClient(config.Config{
		FilingsAPIBaseURL: "https://filings.test/v1",
		FilingsAPIKey:     "test-key",
		FilingsRateRPS:    1000,
		HTTPTimeoutMs:     5000,
	})
	c.httpClient = &http.Client{Transport: fn}
	return c
}

const filingsJSON = `{
  "data": {
    "attributes": {
      "result": [
        {
          "name": "Annual Report",
          "url": "https://www.sec.gov/Archives/edgar/data/320193/000032019321000105/aapl-20210925.htm",
          "formType": "10-K",
          "filingDate": "2021-10-29T00:00:00",
          "accessionNumber": "0000320193-21-000105"
        },
        {
          "name": "Broken Entry",
          "url": "https://www.sec.gov/Archives/edgar/data/320193/bad.htm",
          "formType": "8-K",
          "filingDate": "soon"
        }
      ]
    }
  }
}`

func TestFilings(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/company/AAPL/filings" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Fatal("subscription key header not set")
		}
		return jsonResponse(http.StatusOK, filingsJSON), nil
	})

	records, err := c.Filings(context.Background(), "aapl")
	if err != nil {
		t.Fatal(err)
	}
	// The malformed second entry is skipped.
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	got := records[0]
	if got.Identifier != "AAPL" || got.FormType != "10-K" {
		t.Fatalf("got %+v", got)
	}
	if got.FilingDate.Format("2006-01-02") != "2021-10-29" {
		t.Fatalf("filing date %v", got.FilingDate)
	}
}

func TestFilingsRetriesServerErrors(t *testing.T) {
	attempts := 0
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return jsonResponse(http.StatusServiceUnavailable, "busy"), nil
		}
		return jsonResponse(http.StatusOK, filingsJSON), nil
	})

	if _, err := c.Filings(context.Background(), "AAPL"); err != nil {
		t.Fatal(err)
	}
	if attempts != 2 {
		t.Fatalf("got %d attempts, want 2", attempts)
	}
}

func TestFilingsClientErrorIsFinal(t *testing.T) {
	attempts := 0
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusUnauthorized, "bad key"), nil
	})

	if _, err := c.Filings(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("got %d attempts, want 1", attempts)
	}
}

func TestFilingsRequiresAPIKey(t *testing.T) {
	c := NewClient(config.Config{FilingsAPIBaseURL: "https://filings.test/v1", FilingsRateRPS: 1000, HTTPTimeoutMs: 5000})
	if _, err := c.Filings(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestFilingsForAllAbortsOnFailure(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Path, "MSFT") {
			return jsonResponse(http.StatusNotFound, "unknown company"), nil
		}
		return jsonResponse(http.StatusOK, filingsJSON), nil
	})

	_, err := c.FilingsForAll(context.Background(), []string{"AAPL", "MSFT"})
	if err == nil || !strings.Contains(err.Error(), "MSFT") {
		t.Fatalf("got %v", err)
	}
}
