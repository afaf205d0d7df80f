// Package ingest pulls job postings from public job-board APIs and
// normalizes them into a common schema. Fetchers page through results and
// back off on rate limits; a failed page is skipped after the retry budget
// is spent rather than aborting the whole pull.
package ingest

import "context"

// Posting is the common job-posting schema shared by all sources.
type Posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`

	// Optional fields some sources populate.
	SalaryRange string `json:"salary_range,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

// Query describes one fetch: free-text keywords, a location, and paging.
type Query struct {
	What    string // Keywords, e.g. "data engineer".
	Where   string // Location, e.g. "New York".
	Pages   int
	PerPage int
}

// Source fetches postings from one job board.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]Posting, error)
}
