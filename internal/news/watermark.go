package news

import "time"

// MaxTrackedHashIDs caps the persisted hash-ID set on the union branch of
// watermark advancement. Oldest entries are trimmed first. The reset branch
// bounds the set on its own, but identical publish timestamps across many
// runs would otherwise grow it without limit.
const MaxTrackedHashIDs = 2000

// Watermark is the persisted cross-run delivery boundary: the hash IDs
// delivered as of the last successful run plus the last delivered publish
// timestamp. An article is eligible only if its hash ID is unknown and its
// publish timestamp is at or after the boundary.
type Watermark struct {
	ids     []string
	seen    map[string]struct{}
	pubDate time.Time
	grace   time.Duration
}

// NewWatermark builds a watermark from persisted state. On a first run,
// callers pass an empty ID list and the current time.
func NewWatermark(hashIDs []string, lastPubDate time.Time) *Watermark {
	w := &Watermark{
		ids:     make([]string, 0, len(hashIDs)),
		seen:    make(map[string]struct{}, len(hashIDs)),
		pubDate: lastPubDate,
	}
	for _, id := range hashIDs {
		if _, dup := w.seen[id]; dup {
			continue
		}
		w.ids = append(w.ids, id)
		w.seen[id] = struct{}{}
	}
	return w
}

// WithGrace returns the watermark with a clock-skew grace window applied to
// the timestamp comparison in Admit.
func (w *Watermark) WithGrace(grace time.Duration) *Watermark {
	w.grace = grace
	return w
}

// Contains reports whether the hash ID was already delivered.
func (w *Watermark) Contains(hashID string) bool {
	_, ok := w.seen[hashID]
	return ok
}

// LastPubDate returns the boundary timestamp.
func (w *Watermark) LastPubDate() time.Time {
	return w.pubDate
}

// HashIDs returns the tracked hash IDs in insertion order.
func (w *Watermark) HashIDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

// Admit reports whether an article is new: its hash ID is untracked and its
// publish timestamp is at or after the boundary.
func (w *Watermark) Admit(a *Article) bool {
	return !w.Contains(a.HashID()) && a.EligibleAfter(w.pubDate, w.grace)
}

// Advance computes the next watermark from a run's actually-delivered set.
// latestOK is false when the run delivered nothing with a usable timestamp.
//
// When the delivered latest timestamp strictly advances past the current
// boundary, the hash set is reset to just the delivered IDs: older IDs are
// unreachable once the boundary moves beyond them. Otherwise the sets are
// unioned (capped at MaxTrackedHashIDs) so that runs landing within the
// same timestamp granularity cannot redeliver.
func (w *Watermark) Advance(deliveredIDs []string, latest time.Time, latestOK bool) *Watermark {
	if len(deliveredIDs) > 0 && latestOK && latest.After(w.pubDate) {
		return NewWatermark(deliveredIDs, latest)
	}

	merged := make([]string, 0, len(w.ids)+len(deliveredIDs))
	merged = append(merged, w.ids...)
	merged = append(merged, deliveredIDs...)
	if len(merged) > MaxTrackedHashIDs {
		merged = merged[len(merged)-MaxTrackedHashIDs:]
	}

	pubDate := w.pubDate
	if latestOK && latest.After(pubDate) {
		pubDate = latest
	}
	return NewWatermark(merged, pubDate)
}
