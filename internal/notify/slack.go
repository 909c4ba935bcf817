package notify

import (
	"fmt"
	"strings"

	"newsbot/internal/news"
)

// slackCard renders an article as a Slack Block Kit message.
func slackCard(a *news.Article) any {
	return map[string]any{
		"text": fmt.Sprintf("[%s] %s", a.Source, a.Title),
		"blocks": []any{
			map[string]any{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*%s*", a.Title),
				},
			},
			map[string]any{
				"type": "context",
				"elements": []any{
					map[string]any{
						"type": "mrkdwn",
						"text": fmt.Sprintf("*%s* | %s", a.Source, a.PubDateText()),
					},
				},
			},
			map[string]any{
				"type": "section",
				"text": map[string]any{
					"type": "plain_text",
					"text": a.Description,
				},
			},
			map[string]any{
				"type": "context",
				"elements": []any{
					map[string]any{
						"type": "mrkdwn",
						"text": fmt.Sprintf("*Keywords:* %s", strings.Join(a.Keywords(), ", ")),
					},
				},
			},
			map[string]any{
				"type":     "actions",
				"block_id": "go_to_url",
				"elements": []any{
					map[string]any{
						"type": "button",
						"text": map[string]any{
							"type": "plain_text",
							"text": "Read article",
						},
						"url": a.Link,
					},
				},
			},
			map[string]any{"type": "divider"},
		},
	}
}

func slackMessage(message string) any {
	return map[string]any{"text": message}
}
