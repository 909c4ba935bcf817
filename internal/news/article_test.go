package news

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHashIDStability(t *testing.T) {
	links := []string{
		"https://n.news.naver.com/mnews/article/001/0014567890",
		"https://www.hani.co.kr/arti/economy/economy_general/1122334.html",
		"https://biz.chosun.com/it-science/ict/2024/05/01/ABCDEFG/",
		"http://example.com/a?b=c&d=e",
	}

	for _, link := range links {
		first := HashID(link)
		second := HashID(link)
		if first != second {
			t.Errorf("HashID(%q) not stable: %q vs %q", link, first, second)
		}
		if len(first) != hashIDLength {
			t.Errorf("HashID(%q) length = %d, want %d", link, len(first), hashIDLength)
		}
	}
}

func TestHashIDCollisions(t *testing.T) {
	// Birthday-bound sanity check over a realistic URL shape, not a
	// uniqueness proof.
	seen := make(map[string]string, 20000)
	for i := 0; i < 20000; i++ {
		link := fmt.Sprintf("https://n.news.naver.com/mnews/article/%03d/%010d", i%900, i)
		id := HashID(link)
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision: %q and %q both hash to %q", prev, link, id)
		}
		seen[id] = link
	}
}

func TestArticleHashIDMatchesLink(t *testing.T) {
	link := "https://n.news.naver.com/mnews/article/001/0014567890"
	a := NewArticle("title one", link, "Some Paper", "desc", time.Now(), "economy")
	b := NewArticle("different title", link, "Some Paper", "other desc", time.Now(), "politics")

	if a.HashID() != b.HashID() {
		t.Errorf("equal links produced different hash IDs: %q vs %q", a.HashID(), b.HashID())
	}
	if a.HashID() != HashID(link) {
		t.Errorf("Article.HashID() = %q, want HashID(link) = %q", a.HashID(), HashID(link))
	}
}

func TestAddKeywordsPreservesOrder(t *testing.T) {
	a := NewArticle("t", "https://example.com/1", "s", "d", time.Now(), "alpha")
	a.AddKeywords([]string{"beta", "gamma"})
	a.AddKeywords([]string{"alpha"})

	want := []string{"alpha", "beta", "gamma", "alpha"}
	if diff := cmp.Diff(want, a.Keywords()); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestEligibleAfter(t *testing.T) {
	mark := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pubDate time.Time
		grace   time.Duration
		want    bool
	}{
		{name: "after watermark", pubDate: mark.Add(time.Minute), want: true},
		{name: "exactly at watermark", pubDate: mark, want: true},
		{name: "before watermark", pubDate: mark.Add(-time.Second), want: false},
		{name: "before watermark within grace", pubDate: mark.Add(-time.Second), grace: 5 * time.Second, want: true},
		{name: "before watermark beyond grace", pubDate: mark.Add(-time.Minute), grace: 5 * time.Second, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArticle("t", "https://example.com/1", "s", "d", tt.pubDate, "kw")
			if got := a.EligibleAfter(mark, tt.grace); got != tt.want {
				t.Errorf("EligibleAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArchiveRow(t *testing.T) {
	pub := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	a := NewArticle("Rate decision ahead", "https://example.com/rates", "Example Daily",
		"The central bank meets this week.", pub, "rates")
	a.AddKeywords([]string{"economy"})

	want := []string{
		"2024-05-01 09:30:00",
		"Rate decision ahead",
		"Example Daily",
		"https://example.com/rates",
		"The central bank meets this week.",
		"rates, economy",
	}
	if diff := cmp.Diff(want, a.ArchiveRow()); diff != "" {
		t.Errorf("archive row mismatch (-want +got):\n%s", diff)
	}
}
