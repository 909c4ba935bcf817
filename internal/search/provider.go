// Package search implements the keyword news-search providers: the Naver
// OpenAPI client and a Google News RSS alternative.
package search

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Item is one raw search result as returned by a provider, before any
// deduplication or watermark filtering.
type Item struct {
	Title        string
	Link         string
	OriginalLink string
	Description  string
	PubDate      time.Time
}

// Provider queries a news search API for one keyword. start is the 1-based
// index of the first result, display the requested page size. A short page
// (fewer than display items) signals end-of-results.
type Provider interface {
	Search(ctx context.Context, keyword string, start, display int) ([]Item, error)
}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response from a search API. Fetching treats
// it as fatal for the whole run.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search api status %d: %s", e.StatusCode, e.Body)
}
