package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"newsbot/internal/news"
)

// WebhookChannel posts rendered payloads to a platform's incoming-webhook
// URL.
type WebhookChannel struct {
	platform Platform
	url      string
	render   renderer
	client   HTTPClient
}

// NewWebhookChannel creates a channel for one of the supported webhook
// platforms.
func NewWebhookChannel(platform Platform, url string, client HTTPClient) (*WebhookChannel, error) {
	render, ok := renderers[platform]
	if !ok {
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}
	return &WebhookChannel{
		platform: platform,
		url:      url,
		render:   render,
		client:   client,
	}, nil
}

// Name returns the platform name.
func (c *WebhookChannel) Name() string {
	return string(c.platform)
}

// SendArticle posts the platform's article card.
func (c *WebhookChannel) SendArticle(ctx context.Context, article *news.Article) error {
	return c.post(ctx, c.render.card(article))
}

// SendMessage posts the platform's plain-message payload.
func (c *WebhookChannel) SendMessage(ctx context.Context, message string) error {
	return c.post(ctx, c.render.message(message))
}

func (c *WebhookChannel) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for name, value := range c.render.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
