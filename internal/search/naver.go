package search

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

const naverAPIURL = "https://openapi.naver.com/v1/search/news.json"

// Naver pub dates look like "Mon, 02 Jan 2006 15:04:05 +0900".
const naverTimeLayout = time.RFC1123Z

// NaverProvider queries the Naver OpenAPI news search, sorted by date.
type NaverProvider struct {
	apiURL       string
	clientID     string
	clientSecret string
	client       HTTPClient
}

// NewNaverProvider creates a provider using the given API credentials.
func NewNaverProvider(clientID, clientSecret string, client HTTPClient) *NaverProvider {
	return &NaverProvider{
		apiURL:       naverAPIURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
	}
}

type naverResponse struct {
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// Search fetches one page of date-sorted results for the keyword.
func (p *NaverProvider) Search(ctx context.Context, keyword string, start, display int) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL(keyword, start, display), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", p.clientID)
	req.Header.Set("X-Naver-Client-Secret", p.clientSecret)

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

	var parsed naverResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, raw := range parsed.Items {
		pubDate, err := time.Parse(naverTimeLayout, raw.PubDate)
		if err != nil {
			return nil, fmt.Errorf("parse pub date %q: %w", raw.PubDate, err)
		}
		items = append(items, Item{
			Title:        raw.Title,
			Link:         raw.Link,
			OriginalLink: raw.OriginalLink,
			Description:  raw.Description,
			PubDate:      pubDate,
		})
	}
	return items, nil
}

func (p *NaverProvider) searchURL(keyword string, start, display int) string {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("start", strconv.Itoa(start))
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "date")
	return p.apiURL + "?" + params.Encode()
}
