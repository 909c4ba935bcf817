// Package source resolves an article's canonical URL to a display source
// name via binary search over a sorted domain table.
package source

import (
	"sort"
	"strings"
)

// Unknown is returned when no domain can be extracted from a link.
const Unknown = "(unknown)"

// Stripped case-insensitively from the front of a link before matching.
// Order matters: the protocol goes first, then known subdomain prefixes.
var strippedPrefixes = []string{
	"https://", "http://", "//",
	"www.", "news.", "view.", "post.", "photo.", "photos.", "blog.",
}

// Entry maps a domain prefix (optionally with a subpath) to a display name.
// The table may contain both a bare domain and a longer path-scoped variant;
// the longest matching prefix wins.
type Entry struct {
	Prefix string
	Name   string
}

// Resolver performs read-only source-name lookups over a static table.
type Resolver struct {
	entries []Entry
}

// NewResolver builds a resolver from the given table. Entries are sorted
// lexicographically ascending on prefix once here; lookups rely on that
// order and never re-check it.
func NewResolver(entries []Entry) *Resolver {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Prefix < sorted[j].Prefix })
	return &Resolver{entries: sorted}
}

// NewResolverFromMap builds a resolver from a prefix → name mapping.
func NewResolverFromMap(table map[string]string) *Resolver {
	entries := make([]Entry, 0, len(table))
	for prefix, name := range table {
		entries = append(entries, Entry{Prefix: prefix, Name: name})
	}
	return NewResolver(entries)
}

// Resolve returns the display name for the link's source. When the table
// has no match the bare domain is returned; when no domain can be
// extracted, Unknown.
func (r *Resolver) Resolve(originalLink string) string {
	address := normalizeAddress(originalLink)
	domain := extractDomain(address)
	if domain == "" {
		return Unknown
	}

	if i := r.findIndex(address); i >= 0 {
		return r.entries[i].Name
	}
	return domain
}

// findIndex binary-searches for any table entry that prefixes the address,
// then greedily advances to later entries that still prefix it, so the most
// specific (longest) table entry wins.
func (r *Resolver) findIndex(address string) int {
	lo, hi := 0, len(r.entries)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		prefix := r.entries[mid].Prefix

		if strings.HasPrefix(address, prefix) {
			for mid+1 < len(r.entries) && strings.HasPrefix(address, r.entries[mid+1].Prefix) {
				mid++
			}
			return mid
		}
		if address < prefix {
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return -1
}

func normalizeAddress(link string) string {
	address := strings.ToLower(link)
	for _, prefix := range strippedPrefixes {
		address = strings.TrimPrefix(address, prefix)
	}
	return address
}

// extractDomain takes the leading token of a normalized address, up to the
// first ':', '/', newline, '?' or '='.
func extractDomain(address string) string {
	if i := strings.IndexAny(address, ":/\n?="); i >= 0 {
		return address[:i]
	}
	return address
}
