// Package runner drives one polling cycle end to end: load persisted
// state, fetch fresh articles, deliver them, archive them, and advance
// the delivery watermark.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"newsbot/internal/archive"
	"newsbot/internal/config"
	"newsbot/internal/fetch"
	"newsbot/internal/news"
	"newsbot/internal/notify"
	"newsbot/internal/search"
	"newsbot/internal/source"
	"newsbot/internal/storage"
)

// Property names under which run state is persisted between cycles.
const (
	propKeywords    = "searchKeywords"
	propHashIDs     = "lastDeliveredNewsHashIds"
	propPubDate     = "lastDeliveredNewsPubDate"
	propInitialized = "initializationCompleted"
)

const messagePrefix = "[NewsBot]"

// Controller owns the long-lived collaborators and executes runs.
// Per-run services are built fresh each cycle so their delivered and
// archived sets never leak across cycles.
type Controller struct {
	cfg      *config.Config
	props    storage.PropertyStore
	provider search.Provider
	resolver *source.Resolver
	channels []notify.Channel
	archives storage.NewsArchive
	log      *slog.Logger
}

func New(cfg *config.Config, props storage.PropertyStore, provider search.Provider,
	resolver *source.Resolver, channels []notify.Channel, archives storage.NewsArchive,
	log *slog.Logger) *Controller {
	return &Controller{
		cfg:      cfg,
		props:    props,
		provider: provider,
		resolver: resolver,
		channels: channels,
		archives: archives,
		log:      log,
	}
}

// runState is the persisted state loaded at the start of a cycle.
type runState struct {
	keywords    []string
	hashIDs     []string
	pubDate     time.Time
	initialized bool
}

// Run executes one polling cycle. A FetchError leaves all persisted
// state untouched; delivery and archive failures are contained and the
// watermark advances only over what actually reached a sink.
func (c *Controller) Run(ctx context.Context) error {
	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	notifier := notify.NewService(c.channels, c.log)
	archiver := archive.NewService(c.archives, c.cfg.Archive.Enabled)

	watermark := news.NewWatermark(st.hashIDs, st.pubDate).
		WithGrace(time.Duration(c.cfg.GraceSeconds) * time.Second)
	fetcher := fetch.New(c.provider, c.resolver, watermark, c.log)
	fetcher.SetLimits(c.cfg.PageSize, c.cfg.MaxItemsPerKeyword)

	if !st.initialized {
		if err := c.firstRun(ctx, fetcher, notifier); err != nil {
			return &InitializationError{Err: err}
		}
		return nil
	}

	if !equalKeywordSets(st.keywords, c.cfg.Keywords) {
		c.log.Info("search keywords changed",
			"old", st.keywords, "new", c.cfg.Keywords)
		if notifier.Configured() {
			notifier.SendMessage(ctx, keywordChangeMessage(c.cfg.Keywords))
		}
		if err := c.saveKeywords(ctx); err != nil {
			return err
		}
	}

	articles, err := fetcher.FetchAll(ctx, c.cfg.Keywords, fetch.Options{})
	if err != nil {
		return &FetchError{Err: err}
	}

	if c.cfg.Debug {
		c.logArticles(articles)
		return nil
	}

	if len(articles) == 0 {
		c.log.Info("no new articles", "keywords", c.cfg.Keywords)
		return nil
	}

	if notifier.Configured() {
		if err := notifier.SendArticles(ctx, articles); err != nil {
			c.log.Error("sending articles failed", "error", err,
				"delivered", notifier.Size(), "fetched", len(articles))
		}
	}

	if archiver.Enabled() {
		toArchive := notifier.Items(true)
		if c.cfg.ArchivingOnly() {
			toArchive = fetcher.Items(true)
		}
		if err := archiver.ArchiveArticles(ctx, toArchive); err != nil {
			c.log.Error("archiving articles failed", "error", err)
		}
	}

	if err := c.advanceWatermark(ctx, watermark, notifier, archiver); err != nil {
		return err
	}

	c.log.Info("run complete",
		"fetched", len(articles),
		"delivered", notifier.Size(),
		"archived", archiver.Size())
	return nil
}

// firstRun delivers a one-article-per-keyword sample, announces the bot,
// and seeds the persisted state so the next cycle runs incrementally.
func (c *Controller) firstRun(ctx context.Context, fetcher *fetch.Fetcher, notifier *notify.Service) error {
	c.log.Info("first run, fetching sample articles", "keywords", c.cfg.Keywords)

	articles, err := fetcher.FetchAll(ctx, c.cfg.Keywords, fetch.Options{
		Display:       1,
		IgnorePubDate: true,
	})
	if err != nil {
		return &FetchError{Err: err}
	}

	if notifier.Configured() {
		notifier.SendMessage(ctx, welcomeMessage(c.cfg.Keywords))
		if len(articles) > 0 {
			if err := notifier.SendArticles(ctx, articles); err != nil {
				c.log.Error("sending sample articles failed", "error", err)
			}
		}
	}

	latest, ok := fetcher.LatestPubDate()
	if !ok {
		latest = time.Now()
	}
	if err := c.saveKeywords(ctx); err != nil {
		return err
	}
	if err := c.saveWatermark(ctx, fetcher.HashIDs(), latest); err != nil {
		return err
	}
	if err := c.setProperty(ctx, propInitialized, "true"); err != nil {
		return err
	}

	c.log.Info("first run complete", "sampled", len(articles))
	return nil
}

// advanceWatermark persists the new watermark derived from the
// authoritative sink: the archive when it is the only sink, the
// messaging service otherwise.
func (c *Controller) advanceWatermark(ctx context.Context, prev *news.Watermark,
	notifier *notify.Service, archiver *archive.Service) error {
	var (
		delivered []string
		latest    time.Time
		ok        bool
	)
	if c.cfg.ArchivingOnly() {
		delivered = archiver.HashIDs()
		latest, ok = archiver.LatestPubDate()
	} else {
		delivered = notifier.HashIDs()
		latest, ok = notifier.LatestPubDate()
	}

	next := prev.Advance(delivered, latest, ok)
	return c.saveWatermark(ctx, next.HashIDs(), next.LastPubDate())
}

func (c *Controller) loadState(ctx context.Context) (*runState, error) {
	st := &runState{}

	if raw, ok, err := c.getProperty(ctx, propKeywords); err != nil {
		return nil, err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &st.keywords); err != nil {
			return nil, &PropertyError{Name: propKeywords, Op: "decode", Err: err}
		}
	}

	if raw, ok, err := c.getProperty(ctx, propHashIDs); err != nil {
		return nil, err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &st.hashIDs); err != nil {
			return nil, &PropertyError{Name: propHashIDs, Op: "decode", Err: err}
		}
	}

	// An absent timestamp means nothing was ever delivered; starting from
	// now keeps a wiped store from redelivering the whole backlog.
	st.pubDate = time.Now()
	if raw, ok, err := c.getProperty(ctx, propPubDate); err != nil {
		return nil, err
	} else if ok {
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &PropertyError{Name: propPubDate, Op: "decode", Err: err}
		}
		st.pubDate = time.UnixMilli(millis)
	}

	if raw, ok, err := c.getProperty(ctx, propInitialized); err != nil {
		return nil, err
	} else if ok {
		st.initialized = raw == "true"
	}

	return st, nil
}

func (c *Controller) saveKeywords(ctx context.Context) error {
	encoded, err := json.Marshal(c.cfg.Keywords)
	if err != nil {
		return &PropertyError{Name: propKeywords, Op: "encode", Err: err}
	}
	return c.setProperty(ctx, propKeywords, string(encoded))
}

func (c *Controller) saveWatermark(ctx context.Context, hashIDs []string, pubDate time.Time) error {
	encoded, err := json.Marshal(hashIDs)
	if err != nil {
		return &PropertyError{Name: propHashIDs, Op: "encode", Err: err}
	}
	if err := c.setProperty(ctx, propHashIDs, string(encoded)); err != nil {
		return err
	}
	return c.setProperty(ctx, propPubDate, strconv.FormatInt(pubDate.UnixMilli(), 10))
}

func (c *Controller) getProperty(ctx context.Context, name string) (string, bool, error) {
	value, ok, err := c.props.GetProperty(ctx, name)
	if err != nil {
		return "", false, &PropertyError{Name: name, Op: "load", Err: err}
	}
	return value, ok, nil
}

func (c *Controller) setProperty(ctx context.Context, name, value string) error {
	if err := c.props.SetProperty(ctx, name, value); err != nil {
		return &PropertyError{Name: name, Op: "save", Err: err}
	}
	return nil
}

func (c *Controller) logArticles(articles []*news.Article) {
	c.log.Info("debug run, nothing delivered or persisted", "fetched", len(articles))
	for _, a := range articles {
		c.log.Info("fetched article",
			"title", a.Title,
			"source", a.Source,
			"link", a.Link,
			"pub_date", a.PubDateText(),
			"keywords", a.Keywords())
	}
}

func equalKeywordSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func welcomeMessage(keywords []string) string {
	return fmt.Sprintf("%s Setup complete. Now watching news for: %s. A sample article per keyword follows; fresh articles arrive from the next cycle on.",
		messagePrefix, strings.Join(keywords, ", "))
}

func keywordChangeMessage(keywords []string) string {
	return fmt.Sprintf("%s Search keywords updated. Now watching news for: %s.",
		messagePrefix, strings.Join(keywords, ", "))
}
