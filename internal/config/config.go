// Package config loads and validates the bot configuration from a YAML
// file with environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in the config file.
const (
	ProviderNaver      = "naver"
	ProviderGoogleNews = "google_news"
)

const maxKeywords = 5

// ValidationError reports a malformed or missing setting. It is fatal
// before any network call; nothing is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Config holds the full bot configuration.
type Config struct {
	Debug           bool     `yaml:"debug"`
	Keywords        []string `yaml:"keywords"`
	IntervalMinutes int      `yaml:"interval_minutes"`
	DatabasePath    string   `yaml:"database_path"`
	LogLevel        string   `yaml:"log_level"`

	Provider           string `yaml:"provider"`
	Language           string `yaml:"language"`
	PageSize           int    `yaml:"page_size"`
	MaxItemsPerKeyword int    `yaml:"max_items_per_keyword"`
	GraceSeconds       int    `yaml:"grace_seconds"`

	Naver    Naver             `yaml:"naver"`
	Webhooks Webhooks          `yaml:"webhooks"`
	Telegram Telegram          `yaml:"telegram"`
	Archive  Archive           `yaml:"archive"`
	Sources  map[string]string `yaml:"sources"`
}

// Naver holds the OpenAPI credentials.
type Naver struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Webhook configures one incoming-webhook destination.
type Webhook struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// Webhooks enumerates the supported webhook platforms explicitly.
type Webhooks struct {
	Slack      Webhook `yaml:"slack"`
	Jandi      Webhook `yaml:"jandi"`
	GoogleChat Webhook `yaml:"google_chat"`
}

// Telegram configures the bot-API channel.
type Telegram struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// Archive configures the news archive.
type Archive struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads the YAML file at path, applies environment overrides, fills
// defaults, and validates.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NAVER_CLIENT_ID"); v != "" {
		c.Naver.ClientID = v
	}
	if v := os.Getenv("NAVER_CLIENT_SECRET"); v != "" {
		c.Naver.ClientSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
}

func (c *Config) applyDefaults() {
	if c.IntervalMinutes == 0 {
		c.IntervalMinutes = 1
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./data/newsbot.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Provider == "" {
		c.Provider = ProviderNaver
	}
	if c.PageSize == 0 {
		c.PageSize = 50
	}
	if c.MaxItemsPerKeyword == 0 {
		c.MaxItemsPerKeyword = 100
	}
}

// Validate checks the configuration before any network call is made.
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return &ValidationError{Field: "keywords", Reason: "at least one search keyword is required"}
	}
	if len(c.Keywords) > maxKeywords {
		return &ValidationError{Field: "keywords", Reason: fmt.Sprintf("at most %d search keywords are allowed", maxKeywords)}
	}
	for i, keyword := range c.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return &ValidationError{Field: "keywords", Reason: fmt.Sprintf("keyword %d is blank", i+1)}
		}
	}

	switch c.Provider {
	case ProviderNaver:
		if strings.TrimSpace(c.Naver.ClientID) == "" {
			return &ValidationError{Field: "naver.client_id", Reason: "required for the naver provider"}
		}
		if strings.TrimSpace(c.Naver.ClientSecret) == "" {
			return &ValidationError{Field: "naver.client_secret", Reason: "required for the naver provider"}
		}
	case ProviderGoogleNews:
		// No credentials needed.
	default:
		return &ValidationError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", c.Provider)}
	}

	for _, hook := range []struct {
		name string
		cfg  Webhook
	}{
		{"webhooks.slack", c.Webhooks.Slack},
		{"webhooks.jandi", c.Webhooks.Jandi},
		{"webhooks.google_chat", c.Webhooks.GoogleChat},
	} {
		if hook.cfg.Enabled && strings.TrimSpace(hook.cfg.URL) == "" {
			return &ValidationError{Field: hook.name + ".url", Reason: "required when the webhook is enabled"}
		}
	}

	if c.Telegram.Enabled {
		if strings.TrimSpace(c.Telegram.BotToken) == "" {
			return &ValidationError{Field: "telegram.bot_token", Reason: "required when telegram is enabled"}
		}
		if c.Telegram.ChatID == 0 {
			return &ValidationError{Field: "telegram.chat_id", Reason: "required when telegram is enabled"}
		}
	}

	if !c.NotificationConfigured() && !c.Archive.Enabled {
		return &ValidationError{Field: "webhooks", Reason: "at least one notification channel or the archive must be enabled"}
	}

	if c.IntervalMinutes < 1 {
		return &ValidationError{Field: "interval_minutes", Reason: "must be at least 1"}
	}
	return nil
}

// NotificationConfigured reports whether any chat destination is enabled.
func (c *Config) NotificationConfigured() bool {
	return c.Webhooks.Slack.Enabled ||
		c.Webhooks.Jandi.Enabled ||
		c.Webhooks.GoogleChat.Enabled ||
		c.Telegram.Enabled
}

// ArchivingOnly reports whether the archive is the sole configured sink,
// which changes the authoritative delivered-set for watermark advancement.
func (c *Config) ArchivingOnly() bool {
	return c.Archive.Enabled && !c.NotificationConfigured()
}
