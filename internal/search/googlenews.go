package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/purell"
	"github.com/mmcdole/gofeed"
)

const googleNewsURL = "https://news.google.com/rss/search"

// GoogleNewsProvider searches news through the Google News RSS endpoint.
// It drops the API-key requirement at the cost of paging support: the feed
// is a single page, so any start beyond the first request yields an empty
// slice and the paging loop terminates after one round trip.
type GoogleNewsProvider struct {
	feedURL  string
	language string
	client   HTTPClient
	parser   *gofeed.Parser
}

// NewGoogleNewsProvider creates a provider for the given interface
// language, e.g. "ko" or "en-US". An empty language defaults to "en-US".
func NewGoogleNewsProvider(language string, client HTTPClient) *GoogleNewsProvider {
	if language == "" {
		language = "en-US"
	}
	return &GoogleNewsProvider{
		feedURL:  googleNewsURL,
		language: language,
		client:   client,
		parser:   gofeed.NewParser(),
	}
}

// Search fetches the keyword's feed and returns up to display items.
func (p *GoogleNewsProvider) Search(ctx context.Context, keyword string, start, display int) ([]Item, error) {
	if start > 1 {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL(keyword), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	feed, err := p.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, display)
	for _, entry := range feed.Items {
		if len(items) >= display {
			break
		}
		if entry.PublishedParsed == nil {
			continue
		}
		items = append(items, Item{
			Title:        entry.Title,
			Link:         normalizeLink(entry.Link),
			OriginalLink: normalizeLink(entry.Link),
			Description:  entry.Description,
			PubDate:      *entry.PublishedParsed,
		})
	}
	return items, nil
}

func (p *GoogleNewsProvider) searchURL(keyword string) string {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("hl", p.language)
	return p.feedURL + "?" + params.Encode()
}

// normalizeLink canonicalizes feed links so that the same article hashes to
// the same ID across fetches.
func normalizeLink(link string) string {
	normalized, err := purell.NormalizeURLString(link, purell.FlagsSafe)
	if err != nil {
		return link
	}
	return normalized
}
