package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// JoobleClient fetches jobs from Jooble's public API. Jooble pages by
// offset in the request body rather than by URL path.
type JoobleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	sleep func(ctx context.Context, d time.Duration) error
}

func NewJoobleClient(apiKey string) *JoobleClient {
	return &JoobleClient{
		apiKey:  apiKey,
		baseURL: "https://jooble.org/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sleep: sleepCtx,
	}
}

func (c *JoobleClient) Name() string { return "jooble" }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

type joobleResponse struct {
	Jobs []struct {
		Title    string `json:"title"`
		Company  string `json:"company"`
		Location string `json:"location"`
		Snippet  string `json:"snippet"`
		Link     string `json:"link"`
	} `json:"jobs"`
}

// Fetch pulls q.Pages batches of q.PerPage postings, advancing the offset
// each batch. Retry semantics match the Adzuna client.
func (c *JoobleClient) Fetch(ctx context.Context, q Query) ([]Posting, error) {
	var all []Posting
	offset := 0
	for page := 0; page < q.Pages; page++ {
		postings, err := c.fetchOffset(ctx, q, offset)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			offset += q.PerPage
			continue
		}
		all = append(all, postings...)
		offset += q.PerPage
	}
	return all, nil
}

func (c *JoobleClient) fetchOffset(ctx context.Context, q Query, offset int) ([]Posting, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, Backoff(attempt-1)); err != nil {
				return nil, err
			}
		}
		postings, err := c.doFetch(ctx, q, offset)
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

func (c *JoobleClient) doFetch(ctx context.Context, q Query, offset int) ([]Posting, error) {
	body, err := json.Marshal(joobleRequest{
		Keywords: q.What,
		Location: q.Where,
		Page:     offset,
		Limit:    q.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RetryableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jooble status %d: %s", resp.StatusCode, respBody)
	}

	var apiResp joobleResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	postings := make([]Posting, 0, len(apiResp.Jobs))
	for _, j := range apiResp.Jobs {
		postings = append(postings, Posting{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Description: j.Snippet,
			URL:         j.Link,
			Source:      "jooble",
		})
	}
	return postings, nil
}
