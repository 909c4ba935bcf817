// Package news defines the domain types for article deduplication and
// incremental delivery: articles, the hash-keyed collection, and the
// persisted delivery watermark.
package news

import (
	"hash/fnv"
	"io"
	"strings"
	"time"
)

const (
	hashAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	hashIDLength = 11

	timeLayout = "2006-01-02 15:04:05"
)

// Article represents one fetched news article together with the search
// keywords that matched it.
type Article struct {
	Title       string
	Link        string
	Source      string
	Description string
	PubDate     time.Time

	keywords []string
	hashID   string
}

// NewArticle creates an Article matched by a single initial keyword.
func NewArticle(title, link, source, description string, pubDate time.Time, keyword string) *Article {
	return &Article{
		Title:       title,
		Link:        link,
		Source:      source,
		Description: description,
		PubDate:     pubDate,
		keywords:    []string{keyword},
		hashID:      HashID(link),
	}
}

// HashID returns the article's dedup key, derived from its link.
func (a *Article) HashID() string {
	return a.hashID
}

// Keywords returns the matched keywords in first-seen order.
func (a *Article) Keywords() []string {
	out := make([]string, len(a.keywords))
	copy(out, a.keywords)
	return out
}

// AddKeywords appends keywords, preserving first-seen order.
// Keyword text is operator-controlled, so no de-duplication is applied.
func (a *Article) AddKeywords(keywords []string) {
	a.keywords = append(a.keywords, keywords...)
}

// EligibleAfter reports whether the article was published at or after the
// watermark timestamp. A non-zero grace duration is subtracted from the
// watermark first, to absorb clock skew between the search provider and
// the local clock.
func (a *Article) EligibleAfter(watermark time.Time, grace time.Duration) bool {
	return !a.PubDate.Before(watermark.Add(-grace))
}

// PubDateText returns the publish timestamp formatted for display and
// archiving.
func (a *Article) PubDateText() string {
	return a.PubDate.Format(timeLayout)
}

// ArchiveRow returns the article projected into an archive row:
// published, title, source, link, description, joined keywords.
func (a *Article) ArchiveRow() []string {
	return []string{
		a.PubDateText(),
		a.Title,
		a.Source,
		a.Link,
		a.Description,
		strings.Join(a.keywords, ", "),
	}
}

// HashID computes the deterministic fingerprint for a link: a 64-bit
// FNV-1a hash expanded into a fixed-length base62 string. Two equal links
// always yield equal IDs across runs and processes.
func HashID(link string) string {
	h := fnv.New64a()
	_, _ = io.WriteString(h, link)
	residual := h.Sum64()

	buf := make([]byte, hashIDLength)
	for i := range buf {
		buf[i] = hashAlphabet[residual%uint64(len(hashAlphabet))]
		residual /= uint64(len(hashAlphabet))
	}
	return string(buf)
}
