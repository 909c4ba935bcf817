package search

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGoogleNewsSearch(t *testing.T) {
	body := loadFixture(t, "testdata/googlenews.xml")
	transport := &mockTransport{body: body, statusCode: 200}
	p := NewGoogleNewsProvider("en-US", transport)

	items, err := p.Search(context.Background(), "semiconductor", 1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The undated entry is skipped.
	if diff := cmp.Diff(2, len(items)); diff != "" {
		t.Fatalf("item count mismatch (-want +got):\n%s", diff)
	}
	if items[0].Title != "Chipmakers rally on rate cut hopes" {
		t.Errorf("title = %q", items[0].Title)
	}

	query := transport.lastReq.URL.Query()
	if got := query.Get("q"); got != "semiconductor" {
		t.Errorf("query param q = %q", got)
	}
	if got := query.Get("hl"); got != "en-US" {
		t.Errorf("query param hl = %q", got)
	}
}

func TestGoogleNewsSearchNormalizesLinks(t *testing.T) {
	body := loadFixture(t, "testdata/googlenews.xml")
	p := NewGoogleNewsProvider("en-US", &mockTransport{body: body, statusCode: 200})

	items, err := p.Search(context.Background(), "semiconductor", 1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := items[1].Link; got != "https://example.com/exports/growth" {
		t.Errorf("normalized link = %q", got)
	}
}

func TestGoogleNewsSearchPastFirstPage(t *testing.T) {
	p := NewGoogleNewsProvider("en-US", &mockTransport{body: "", statusCode: 200})

	items, err := p.Search(context.Background(), "semiconductor", 51, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items past first page = %d, want 0", len(items))
	}
}

func TestGoogleNewsSearchRespectsDisplay(t *testing.T) {
	body := loadFixture(t, "testdata/googlenews.xml")
	p := NewGoogleNewsProvider("en-US", &mockTransport{body: body, statusCode: 200})

	items, err := p.Search(context.Background(), "semiconductor", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
}
