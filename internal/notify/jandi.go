package notify

import (
	"fmt"
	"strings"

	"newsbot/internal/news"
)

// jandiCard renders an article as a JANDI incoming-webhook body.
func jandiCard(a *news.Article) any {
	body := fmt.Sprintf("[%s](%s)\n%s | %s\n\n%s\n\nKeywords: %s",
		a.Title, a.Link, a.Source, a.PubDateText(), a.Description, strings.Join(a.Keywords(), ", "))
	return map[string]any{"body": body}
}

func jandiMessage(message string) any {
	return map[string]any{"body": message}
}
