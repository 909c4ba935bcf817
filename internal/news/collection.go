package news

import (
	"sort"
	"time"
)

// Collection accumulates articles keyed by hash ID. Adding an article whose
// hash ID is already present merges its keywords into the existing record
// instead of overwriting it.
type Collection struct {
	items map[string]*Article
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]*Article)}
}

// Add inserts an article, or merges its keywords into the existing record
// when the hash ID is already present. The earlier record's content and
// timestamp are kept.
func (c *Collection) Add(a *Article) {
	if existing, ok := c.items[a.HashID()]; ok {
		existing.AddKeywords(a.Keywords())
		return
	}
	c.items[a.HashID()] = a
}

// AddAll applies Add for each article in input order.
func (c *Collection) AddAll(articles []*Article) {
	for _, a := range articles {
		c.Add(a)
	}
}

// Items returns all articles sorted by publish timestamp, ascending by
// default or descending when desc is true. An empty collection yields an
// empty slice.
func (c *Collection) Items(desc bool) []*Article {
	out := make([]*Article, 0, len(c.items))
	for _, a := range c.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].PubDate.Before(out[j].PubDate)
	})
	return out
}

// HashIDs returns a snapshot of all keys. Ordering is not guaranteed.
func (c *Collection) HashIDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	return ids
}

// Size returns the number of stored articles.
func (c *Collection) Size() int {
	return len(c.items)
}

// LatestPubDate returns the most recent publish timestamp across all
// stored articles. ok is false when the collection is empty.
func (c *Collection) LatestPubDate() (latest time.Time, ok bool) {
	for _, a := range c.items {
		if a.PubDate.After(latest) {
			latest = a.PubDate
		}
	}
	return latest, len(c.items) > 0
}

// Clear removes all stored articles.
func (c *Collection) Clear() {
	c.items = make(map[string]*Article)
}
