// Package archive pushes delivered articles into the news archive and
// tracks what was actually stored.
package archive

import (
	"context"
	"fmt"
	"time"

	"newsbot/internal/news"
	"newsbot/internal/storage"
)

// Service appends articles to the archive. One Service serves one run; its
// tracked set feeds watermark advancement in archiving-only mode.
type Service struct {
	store    storage.NewsArchive
	enabled  bool
	archived *news.Collection
}

// NewService creates an archiving service. A disabled service rejects
// ArchiveArticles calls.
func NewService(store storage.NewsArchive, enabled bool) *Service {
	return &Service{
		store:    store,
		enabled:  enabled,
		archived: news.NewCollection(),
	}
}

// Enabled reports whether archiving is configured for this run.
func (s *Service) Enabled() bool {
	return s.enabled
}

// ArchiveArticles stores the articles in the given order; callers pass
// them newest-first for display. The whole batch is stored atomically, so
// the tracked set matches the archive exactly even on failure.
func (s *Service) ArchiveArticles(ctx context.Context, articles []*news.Article) error {
	if !s.enabled {
		return fmt.Errorf("archiving is not configured")
	}

	rows := make([]storage.ArchiveRow, 0, len(articles))
	for _, a := range articles {
		fields := a.ArchiveRow()
		rows = append(rows, storage.ArchiveRow{
			PubDateText: fields[0],
			Title:       fields[1],
			Source:      fields[2],
			Link:        fields[3],
			Description: fields[4],
			Keywords:    fields[5],
		})
	}

	if err := s.store.InsertArchiveRows(ctx, rows); err != nil {
		return fmt.Errorf("insert archive rows: %w", err)
	}
	s.archived.AddAll(articles)
	return nil
}

// Items returns the archived articles sorted by publish timestamp.
func (s *Service) Items(desc bool) []*news.Article {
	return s.archived.Items(desc)
}

// HashIDs returns the hash IDs of all archived articles.
func (s *Service) HashIDs() []string {
	return s.archived.HashIDs()
}

// LatestPubDate returns the most recent publish timestamp among archived
// articles; ok is false when nothing was archived.
func (s *Service) LatestPubDate() (time.Time, bool) {
	return s.archived.LatestPubDate()
}

// Size returns the number of archived articles.
func (s *Service) Size() int {
	return s.archived.Size()
}
