package search

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText strips HTML markup from API snippet text and unescapes the
// remaining entities. Naver wraps keyword matches in <b> tags and escapes
// quotes, so titles and descriptions both pass through here before display.
func CleanText(text string) string {
	if !strings.ContainsAny(text, "<&`") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err == nil {
		text = doc.Text()
	}

	text = html.UnescapeString(text)
	return strings.ReplaceAll(text, "`", "'")
}
