package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
keywords: ["인공지능", "반도체"]
naver:
  client_id: id
  client_secret: secret
webhooks:
  slack:
    enabled: true
    url: https://hooks.slack.com/services/T/B/X
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff([]string{"인공지능", "반도체"}, cfg.Keywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
	if cfg.IntervalMinutes != 1 {
		t.Errorf("IntervalMinutes = %d, want 1", cfg.IntervalMinutes)
	}
	if cfg.Provider != ProviderNaver {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderNaver)
	}
	if cfg.PageSize != 50 || cfg.MaxItemsPerKeyword != 100 {
		t.Errorf("paging defaults = (%d, %d), want (50, 100)", cfg.PageSize, cfg.MaxItemsPerKeyword)
	}
	if cfg.ArchivingOnly() {
		t.Error("ArchivingOnly() = true with a slack webhook enabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NAVER_CLIENT_ID", "env-id")
	t.Setenv("NAVER_CLIENT_SECRET", "env-secret")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(writeConfig(t, `
keywords: [news]
telegram:
  enabled: true
  bot_token: token
  chat_id: 7
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Naver.ClientID != "env-id" || cfg.Naver.ClientSecret != "env-secret" {
		t.Errorf("naver credentials = (%q, %q), want env values", cfg.Naver.ClientID, cfg.Naver.ClientSecret)
	}
	if cfg.Telegram.ChatID != 42 {
		t.Errorf("Telegram.ChatID = %d, want 42", cfg.Telegram.ChatID)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Keywords:        []string{"news"},
			IntervalMinutes: 1,
			Provider:        ProviderNaver,
			Naver:           Naver{ClientID: "id", ClientSecret: "secret"},
			Webhooks:        Webhooks{Slack: Webhook{Enabled: true, URL: "https://example.com"}},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:      "no keywords",
			mutate:    func(c *Config) { c.Keywords = nil },
			wantField: "keywords",
		},
		{
			name: "too many keywords",
			mutate: func(c *Config) {
				c.Keywords = []string{"a", "b", "c", "d", "e", "f"}
			},
			wantField: "keywords",
		},
		{
			name:      "blank keyword",
			mutate:    func(c *Config) { c.Keywords = []string{"a", "  "} },
			wantField: "keywords",
		},
		{
			name:      "missing naver secret",
			mutate:    func(c *Config) { c.Naver.ClientSecret = "" },
			wantField: "naver.client_secret",
		},
		{
			name:      "unknown provider",
			mutate:    func(c *Config) { c.Provider = "bing" },
			wantField: "provider",
		},
		{
			name: "google news needs no credentials",
			mutate: func(c *Config) {
				c.Provider = ProviderGoogleNews
				c.Naver = Naver{}
			},
		},
		{
			name:      "enabled webhook without url",
			mutate:    func(c *Config) { c.Webhooks.Slack.URL = "" },
			wantField: "webhooks.slack.url",
		},
		{
			name: "telegram without token",
			mutate: func(c *Config) {
				c.Telegram = Telegram{Enabled: true, ChatID: 1}
			},
			wantField: "telegram.bot_token",
		},
		{
			name: "no sink enabled",
			mutate: func(c *Config) {
				c.Webhooks.Slack.Enabled = false
			},
			wantField: "webhooks",
		},
		{
			name: "archive alone is a valid sink",
			mutate: func(c *Config) {
				c.Webhooks.Slack.Enabled = false
				c.Archive.Enabled = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestArchivingOnly(t *testing.T) {
	cfg := &Config{Archive: Archive{Enabled: true}}
	if !cfg.ArchivingOnly() {
		t.Error("ArchivingOnly() = false with archive as the only sink")
	}
	cfg.Telegram.Enabled = true
	if cfg.ArchivingOnly() {
		t.Error("ArchivingOnly() = true with telegram enabled")
	}
}
