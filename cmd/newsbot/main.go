package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"newsbot/internal/config"
	"newsbot/internal/notify"
	"newsbot/internal/runner"
	"newsbot/internal/scheduler"
	"newsbot/internal/search"
	"newsbot/internal/source"
	"newsbot/internal/storage"
)

func main() {
	configPath := flag.String("config", envOrDefault("NEWSBOT_CONFIG", "./config.yaml"), "path to config file")
	once := flag.Bool("once", false, "run a single polling cycle and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	channels, err := buildChannels(cfg)
	if err != nil {
		log.Error("create notification channels", "error", err)
		os.Exit(1)
	}

	ctrl := runner.New(cfg, store, buildProvider(cfg), buildResolver(cfg), channels, store, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once {
		if err := ctrl.Run(ctx); err != nil {
			log.Error("polling cycle failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sched := scheduler.New(ctrl, log)
	sched.SetTickInterval(time.Duration(cfg.IntervalMinutes) * time.Minute)

	log.Info("starting news bot",
		"keywords", cfg.Keywords,
		"provider", cfg.Provider,
		"interval_minutes", cfg.IntervalMinutes)

	sched.Run(ctx)

	log.Info("news bot stopped")
}

func buildProvider(cfg *config.Config) search.Provider {
	if cfg.Provider == config.ProviderGoogleNews {
		return search.NewGoogleNewsProvider(cfg.Language, http.DefaultClient)
	}
	return search.NewNaverProvider(cfg.Naver.ClientID, cfg.Naver.ClientSecret, http.DefaultClient)
}

func buildResolver(cfg *config.Config) *source.Resolver {
	entries := source.DefaultTable()
	for prefix, name := range cfg.Sources {
		entries = append(entries, source.Entry{Prefix: prefix, Name: name})
	}
	return source.NewResolver(entries)
}

func buildChannels(cfg *config.Config) ([]notify.Channel, error) {
	var channels []notify.Channel

	for _, hook := range []struct {
		platform notify.Platform
		cfg      config.Webhook
	}{
		{notify.PlatformSlack, cfg.Webhooks.Slack},
		{notify.PlatformJandi, cfg.Webhooks.Jandi},
		{notify.PlatformGoogleChat, cfg.Webhooks.GoogleChat},
	} {
		if !hook.cfg.Enabled {
			continue
		}
		ch, err := notify.NewWebhookChannel(hook.platform, hook.cfg.URL, http.DefaultClient)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	if cfg.Telegram.Enabled {
		ch, err := notify.NewTelegramChannel(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	return channels, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
