// Package fetch drives the search provider across all configured keywords
// and collects the articles admitted by the delivery watermark.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsbot/internal/news"
	"newsbot/internal/search"
	"newsbot/internal/source"
)

const (
	defaultPageSize = 50
	defaultMaxItems = 100
)

// Options alter a single fetch pass.
type Options struct {
	// Display overrides the per-keyword page size and disables paging.
	// The first-run preview uses Display=1.
	Display int
	// IgnorePubDate skips the watermark timestamp check. Already-seen hash
	// IDs are still excluded.
	IgnorePubDate bool
	// SortDesc returns the collected articles newest-first.
	SortDesc bool
}

// Fetcher queries the provider per keyword, builds article records, and
// accumulates those the watermark admits. One Fetcher serves one run.
type Fetcher struct {
	provider  search.Provider
	resolver  *source.Resolver
	watermark *news.Watermark
	items     *news.Collection
	pageSize  int
	maxItems  int
	log       *slog.Logger
}

// New creates a Fetcher for a single run.
func New(provider search.Provider, resolver *source.Resolver, watermark *news.Watermark, log *slog.Logger) *Fetcher {
	return &Fetcher{
		provider:  provider,
		resolver:  resolver,
		watermark: watermark,
		items:     news.NewCollection(),
		pageSize:  defaultPageSize,
		maxItems:  defaultMaxItems,
		log:       log,
	}
}

// SetLimits overrides the page size and the per-keyword item cap.
func (f *Fetcher) SetLimits(pageSize, maxItems int) {
	if pageSize > 0 {
		f.pageSize = pageSize
	}
	if maxItems > 0 {
		f.maxItems = maxItems
	}
}

// FetchAll queries every keyword in order and returns the admitted articles
// sorted by publish timestamp. Any provider failure aborts the whole fetch:
// silently skipping a keyword would let the watermark advance past articles
// that were never seen.
func (f *Fetcher) FetchAll(ctx context.Context, keywords []string, opts Options) ([]*news.Article, error) {
	for _, keyword := range keywords {
		if err := f.fetchKeyword(ctx, keyword, opts); err != nil {
			return nil, fmt.Errorf("fetch keyword %q: %w", keyword, err)
		}
	}
	return f.items.Items(opts.SortDesc), nil
}

func (f *Fetcher) fetchKeyword(ctx context.Context, keyword string, opts Options) error {
	display := f.pageSize
	if opts.Display > 0 {
		display = opts.Display
	}

	start := 1
	fetched := 0
	for {
		page, err := f.provider.Search(ctx, keyword, start, display)
		if err != nil {
			return err
		}

		admitted := 0
		for _, item := range page {
			article := f.buildArticle(item, keyword)
			if f.watermark.Contains(article.HashID()) {
				continue
			}
			if !opts.IgnorePubDate && !f.watermark.Admit(article) {
				continue
			}
			f.items.Add(article)
			admitted++
		}
		fetched += len(page)

		f.log.Debug("fetched page", "keyword", keyword, "start", start, "items", len(page), "admitted", admitted)

		// A short page means the results are exhausted. An explicit Display
		// override is a single-page preview request.
		if len(page) < display || opts.Display > 0 || fetched >= f.maxItems {
			return nil
		}
		start += display
	}
}

func (f *Fetcher) buildArticle(item search.Item, keyword string) *news.Article {
	sourceLink := item.OriginalLink
	if sourceLink == "" {
		sourceLink = item.Link
	}
	return news.NewArticle(
		search.CleanText(item.Title),
		item.Link,
		f.resolver.Resolve(sourceLink),
		search.CleanText(item.Description),
		item.PubDate,
		keyword,
	)
}

// Items returns the admitted articles sorted by publish timestamp.
func (f *Fetcher) Items(desc bool) []*news.Article {
	return f.items.Items(desc)
}

// HashIDs returns the hash IDs of all admitted articles.
func (f *Fetcher) HashIDs() []string {
	return f.items.HashIDs()
}

// LatestPubDate returns the most recent publish timestamp among admitted
// articles; ok is false when nothing was admitted.
func (f *Fetcher) LatestPubDate() (time.Time, bool) {
	return f.items.LatestPubDate()
}

// Size returns the number of admitted articles.
func (f *Fetcher) Size() int {
	return f.items.Size()
}
