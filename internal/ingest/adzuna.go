package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AdzunaClient fetches jobs from Adzuna's public search API.
type AdzunaClient struct {
	appID      string
	appKey     string
	baseURL    string
	httpClient *http.Client

	// sleep is swappable so tests don't wait out real backoffs.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewAdzunaClient builds a client for one country's job index.
func NewAdzunaClient(appID, appKey, countryCode string) *AdzunaClient {
	return &AdzunaClient{
		appID:   appID,
		appKey:  appKey,
		baseURL: fmt.Sprintf("https://api.adzuna.com/v1/api/jobs/%s/search", countryCode),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sleep: sleepCtx,
	}
}

func (c *AdzunaClient) Name() string { return "adzuna" }

type adzunaResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		Description string `json:"description"`
		RedirectURL string `json:"redirect_url"`
	} `json:"results"`
}

// Fetch pages through search results, retrying rate-limited or failing pages
// with exponential backoff. A page that exhausts its retries is skipped.
func (c *AdzunaClient) Fetch(ctx context.Context, q Query) ([]Posting, error) {
	var all []Posting
	for page := 1; page <= q.Pages; page++ {
		postings, err := c.fetchPage(ctx, q, page)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			continue // max retries reached, skip this page
		}
		all = append(all, postings...)
	}
	return all, nil
}

func (c *AdzunaClient) fetchPage(ctx context.Context, q Query, page int) ([]Posting, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, Backoff(attempt-1)); err != nil {
				return nil, err
			}
		}
		postings, err := c.doPage(ctx, q, page)
		if err == nil {
			return postings, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *AdzunaClient) doPage(ctx context.Context, q Query, page int) ([]Posting, error) {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", strconv.Itoa(q.PerPage))
	if q.What != "" {
		params.Set("what", q.What)
	}
	if q.Where != "" {
		params.Set("where", q.Where)
	}

	reqURL := fmt.Sprintf("%s/%d?%s", c.baseURL, page, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RetryableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna status %d: %s", resp.StatusCode, body)
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	postings := make([]Posting, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		postings = append(postings, Posting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			URL:         r.RedirectURL,
			Source:      "adzuna",
		})
	}
	return postings, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
