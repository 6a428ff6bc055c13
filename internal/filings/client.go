package filings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"finfetch/internal"
	"finfetch/internal/config"
)

// Client talks to the filings API, which returns the full filing list
// of a company in one response (no pagination).
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

type apiResponse struct {
	Data struct {
		Attributes struct {
			Result []filingPayload `json:"result"`
		} `json:"attributes"`
	} `json:"data"`
}

type filingPayload struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	FormType        string `json:"formType"`
	FilingDate      string `json:"filingDate"`
	AccessionNumber string `json:"accessionNumber"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FilingsRateRPS),
	}
}

// Filings fetches the filing list for one company identifier.
func (c *Client) Filings(ctx context.Context, identifier string) ([]internal.FilingRecord, error) {
	identifier = strings.ToUpper(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, errors.New("empty company identifier")
	}

	body, err := c.fetchJSON(ctx, "company/"+url.PathEscape(identifier)+"/filings")
	if err != nil {
		return nil, err
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode filings response: %w", err)
	}

	records := make([]internal.FilingRecord, 0, len(payload.Data.Attributes.Result))
	for _, raw := range payload.Data.Attributes.Result {
		record, err := toFilingRecord(identifier, raw)
		if err != nil {
			log.Debug().Err(err).Str("identifier", identifier).Str("name", raw.Name).Msg("skipping malformed filing entry")
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// FilingsForAll concatenates the filing lists of several identifiers,
// in input order. Any per-identifier failure aborts the whole call.
func (c *Client) FilingsForAll(ctx context.Context, identifiers []string) ([]internal.FilingRecord, error) {
	all := make([]internal.FilingRecord, 0)
	for _, identifier := range identifiers {
		records, err := c.Filings(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("filings for %s: %w", identifier, err)
		}
		log.Info().Str("identifier", identifier).Int("filings", len(records)).Msg("fetched filing list")
		all = append(all, records...)
	}
	return all, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.FilingsAPIKey) == "" {
		return nil, errors.New("missing FILINGS_API_KEY")
	}

	baseURL := strings.TrimRight(c.cfg.FilingsAPIBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.FilingsAPIKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("filings api status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("filings api error: status=%d body=%s", resp.StatusCode, string(body))
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("filings request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func toFilingRecord(identifier string, raw filingPayload) (internal.FilingRecord, error) {
	if len(raw.FilingDate) < 10 {
		return internal.FilingRecord{}, fmt.Errorf("short filing date %q", raw.FilingDate)
	}
	date, err := time.Parse("2006-01-02", raw.FilingDate[:10])
	if err != nil {
		return internal.FilingRecord{}, fmt.Errorf("parse filing date %q: %w", raw.FilingDate, err)
	}
	if strings.TrimSpace(raw.URL) == "" {
		return internal.FilingRecord{}, errors.New("empty filing url")
	}

	return internal.FilingRecord{
		Identifier:      identifier,
		Name:            strings.TrimSpace(raw.Name),
		FormType:        strings.TrimSpace(raw.FormType),
		FilingDate:      date,
		URL:             raw.URL,
		AccessionNumber: strings.TrimSpace(raw.AccessionNumber),
	}, nil
}
