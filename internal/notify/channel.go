// Package notify delivers articles and status messages to chat channels:
// JSON-webhook platforms (Slack, JANDI, Google Chat) and the Telegram bot
// API. Rendering is selected through an explicit per-platform table built
// at startup.
package notify

import (
	"context"
	"fmt"
	"net/http"

	"newsbot/internal/news"
)

// Platform identifies a supported chat platform.
type Platform string

// Supported webhook platforms.
const (
	PlatformSlack      Platform = "slack"
	PlatformJandi      Platform = "jandi"
	PlatformGoogleChat Platform = "google_chat"
)

// Channel is the capability to push one article or one plain status
// message to a chat destination.
type Channel interface {
	Name() string
	SendArticle(ctx context.Context, article *news.Article) error
	SendMessage(ctx context.Context, message string) error
}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// renderer builds a platform's payloads: an article card and a plain
// message.
type renderer struct {
	card    func(*news.Article) any
	message func(string) any
	headers map[string]string
}

var renderers = map[Platform]renderer{
	PlatformSlack: {
		card:    slackCard,
		message: slackMessage,
	},
	PlatformJandi: {
		card:    jandiCard,
		message: jandiMessage,
		headers: map[string]string{"Accept": "application/vnd.tosslab.jandi-v2+json"},
	},
	PlatformGoogleChat: {
		card:    googleChatCard,
		message: googleChatMessage,
	},
}

// ParsePlatform maps a config string to a webhook platform.
func ParsePlatform(name string) (Platform, error) {
	p := Platform(name)
	if _, ok := renderers[p]; !ok {
		return "", fmt.Errorf("unsupported platform %q", name)
	}
	return p, nil
}
