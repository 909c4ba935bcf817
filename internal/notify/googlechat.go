package notify

import (
	"fmt"
	"strings"

	"newsbot/internal/news"
)

// googleChatCard renders an article as a Google Chat card message.
func googleChatCard(a *news.Article) any {
	return map[string]any{
		"fallbackText": fmt.Sprintf("[%s] %s", a.Source, a.Title),
		"cards": []any{
			map[string]any{
				"header": map[string]any{
					"title":    a.Title,
					"subtitle": fmt.Sprintf("%s | %s", a.Source, a.PubDateText()),
				},
				"sections": []any{
					map[string]any{
						"widgets": []any{
							map[string]any{
								"textParagraph": map[string]any{
									"text": a.Description,
								},
							},
							map[string]any{
								"textParagraph": map[string]any{
									"text": fmt.Sprintf("Keywords: %s", strings.Join(a.Keywords(), ", ")),
								},
							},
							map[string]any{
								"buttons": []any{
									map[string]any{
										"textButton": map[string]any{
											"text": "Read article",
											"onClick": map[string]any{
												"openLink": map[string]any{
													"url": a.Link,
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func googleChatMessage(message string) any {
	return map[string]any{"text": message}
}
