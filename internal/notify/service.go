package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsbot/internal/news"
)

// Pause between consecutive outbound calls, to stay under the chat
// platforms' per-caller rate limits.
const sendPacing = 50 * time.Millisecond

// Service fans articles out to every configured channel and tracks what
// was actually delivered. One Service serves one run.
type Service struct {
	channels  []Channel
	delivered *news.Collection
	pacing    time.Duration
	log       *slog.Logger
}

// NewService creates a messaging service over the given channels.
func NewService(channels []Channel, log *slog.Logger) *Service {
	return &Service{
		channels:  channels,
		delivered: news.NewCollection(),
		pacing:    sendPacing,
		log:       log,
	}
}

// Configured reports whether at least one channel is set up.
func (s *Service) Configured() bool {
	return len(s.channels) > 0
}

// SendArticles pushes articles to every channel, oldest-first. An article
// counts as delivered only after every channel accepted it. The first
// failure stops the loop and is returned; everything already delivered
// stays recorded, which is what keeps watermark advancement safe under
// partial failure.
func (s *Service) SendArticles(ctx context.Context, articles []*news.Article) error {
	for i, article := range articles {
		for _, channel := range s.channels {
			if err := channel.SendArticle(ctx, article); err != nil {
				return fmt.Errorf("send to %s: %w", channel.Name(), err)
			}
		}
		s.delivered.Add(article)

		if i < len(articles)-1 {
			if err := s.pause(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// SendMessage pushes a status message to every channel. Failures are
// logged per channel but do not interrupt the remaining channels.
func (s *Service) SendMessage(ctx context.Context, message string) {
	for _, channel := range s.channels {
		if err := channel.SendMessage(ctx, message); err != nil {
			s.log.Error("send message", "channel", channel.Name(), "error", err)
		}
	}
}

func (s *Service) pause(ctx context.Context) error {
	timer := time.NewTimer(s.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SetPacing overrides the inter-send pause (useful for testing).
func (s *Service) SetPacing(d time.Duration) {
	s.pacing = d
}

// Items returns the delivered articles sorted by publish timestamp.
func (s *Service) Items(desc bool) []*news.Article {
	return s.delivered.Items(desc)
}

// HashIDs returns the hash IDs of all delivered articles.
func (s *Service) HashIDs() []string {
	return s.delivered.HashIDs()
}

// LatestPubDate returns the most recent publish timestamp among delivered
// articles; ok is false when nothing was delivered.
func (s *Service) LatestPubDate() (time.Time, bool) {
	return s.delivered.LatestPubDate()
}

// Size returns the number of delivered articles.
func (s *Service) Size() int {
	return s.delivered.Size()
}
