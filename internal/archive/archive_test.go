package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"newsbot/internal/news"
	"newsbot/internal/storage"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeArchive struct {
	rows []storage.ArchiveRow
	err  error
}

func (a *fakeArchive) InsertArchiveRows(_ context.Context, rows []storage.ArchiveRow) error {
	if a.err != nil {
		return a.err
	}
	a.rows = append(a.rows, rows...)
	return nil
}

func (a *fakeArchive) RecentArchiveRows(_ context.Context, limit int) ([]storage.ArchiveRow, error) {
	if limit > len(a.rows) {
		limit = len(a.rows)
	}
	return a.rows[:limit], nil
}

func article(link string, offset time.Duration) *news.Article {
	return news.NewArticle("title "+link, link, "Example", "desc", testTime.Add(offset), "kw")
}

func TestArchiveArticles(t *testing.T) {
	store := &fakeArchive{}
	s := NewService(store, true)

	articles := []*news.Article{
		article("https://example.com/new", time.Hour),
		article("https://example.com/old", 0),
	}
	if err := s.ArchiveArticles(context.Background(), articles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.rows) != 2 {
		t.Fatalf("stored %d rows, want 2", len(store.rows))
	}
	// Input order (newest-first) is preserved in the archive.
	wantLinks := []string{"https://example.com/new", "https://example.com/old"}
	gotLinks := []string{store.rows[0].Link, store.rows[1].Link}
	if diff := cmp.Diff(wantLinks, gotLinks); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}

	if s.Size() != 2 {
		t.Errorf("tracked size = %d, want 2", s.Size())
	}
	latest, ok := s.LatestPubDate()
	if !ok || !latest.Equal(testTime.Add(time.Hour)) {
		t.Errorf("latest = (%v, %v)", latest, ok)
	}
}

func TestArchiveArticlesFailureTracksNothing(t *testing.T) {
	store := &fakeArchive{err: errors.New("disk full")}
	s := NewService(store, true)

	err := s.ArchiveArticles(context.Background(), []*news.Article{article("https://example.com/1", 0)})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if s.Size() != 0 {
		t.Errorf("tracked size = %d, want 0 after failed insert", s.Size())
	}
}

func TestArchiveDisabled(t *testing.T) {
	s := NewService(&fakeArchive{}, false)

	if s.Enabled() {
		t.Error("disabled service reported enabled")
	}
	if err := s.ArchiveArticles(context.Background(), nil); err == nil {
		t.Error("disabled service accepted articles")
	}
}
