package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coredatabase "github.com/eaulabs/confessbot/core/database"
	corelogger "github.com/eaulabs/confessbot/core/logger"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// BoardConfig describes the public confession board: where confessions are
// published and how the submission/comment policies behave.
type BoardConfig struct {
	// ChannelID is the numeric id of the public channel posts go to.
	ChannelID int64 `yaml:"channel_id" envconfig:"BOARD_CHANNEL_ID"`
	// Name is the display name used in post titles, e.g. "EAU Confession".
	Name string `yaml:"name" envconfig:"BOARD_NAME"`
	// ChannelLink is the public t.me link offered by the Browse menu button.
	ChannelLink string `yaml:"channel_link" envconfig:"BOARD_CHANNEL_LINK"`

	ConfessionCooldownSeconds int `yaml:"confession_cooldown_seconds" envconfig:"BOARD_CONFESSION_COOLDOWN_SECONDS"`
	CommentCooldownSeconds    int `yaml:"comment_cooldown_seconds" envconfig:"BOARD_COMMENT_COOLDOWN_SECONDS"`

	// Blocklist terms are matched as case-insensitive substrings.
	Blocklist []string `yaml:"blocklist" envconfig:"BOARD_BLOCKLIST"`
	// Avatars is the palette a comment's display glyph is drawn from.
	Avatars []string `yaml:"avatars" envconfig:"BOARD_AVATARS"`

	PageSize int `yaml:"page_size" envconfig:"BOARD_PAGE_SIZE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// RateLimitConfig holds settings for the transport-level flood limiter.
// This is distinct from the board cooldowns: it throttles raw update
// processing, not accepted submissions.
type RateLimitConfig struct {
	IntervalMS int `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	// ExcludeUpdates lists update kinds that bypass limiting:
	// "message" and "callback" are recognised.
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the application configuration.
type Config struct {
	Telegram  TelegramConfig      `yaml:"telegram"`
	Webhook   WebhookConfig       `yaml:"webhook"`
	Board     BoardConfig         `yaml:"board"`
	Database  coredatabase.Config `yaml:"database"`
	Logging   corelogger.Config   `yaml:"logging"`
	RateLimit RateLimitConfig     `yaml:"rate_limit"`
}

const (
	defaultConfessionCooldown = 30
	defaultCommentCooldown    = 10
	defaultPageSize           = 4
)

var defaultAvatars = []string{
	"🗿", "👤", "👽", "🤖", "👻", "🦊", "🐼", "🐵", "🐥", "🦄", "😺", "😎", "🫥", "🪄", "🧋",
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if err := normalizeBoard(&cfg.Board); err != nil {
		return err
	}

	if cfg.RateLimit.IntervalMS < 0 {
		return fmt.Errorf("rate_limit.interval_ms must be >= 0")
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		switch key {
		case "message", "callback":
		default:
			return fmt.Errorf("invalid rate_limit.exclude_updates entry %q; allowed: message, callback", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}

func normalizeBoard(b *BoardConfig) error {
	if b.ChannelID == 0 {
		return fmt.Errorf("board.channel_id is required")
	}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return fmt.Errorf("board.name is required")
	}
	b.ChannelLink = strings.TrimSpace(b.ChannelLink)
	if b.ChannelLink == "" {
		return fmt.Errorf("board.channel_link is required")
	}
	if b.ConfessionCooldownSeconds == 0 {
		b.ConfessionCooldownSeconds = defaultConfessionCooldown
	}
	if b.ConfessionCooldownSeconds < 0 {
		return fmt.Errorf("board.confession_cooldown_seconds must be >= 0")
	}
	if b.CommentCooldownSeconds == 0 {
		b.CommentCooldownSeconds = defaultCommentCooldown
	}
	if b.CommentCooldownSeconds < 0 {
		return fmt.Errorf("board.comment_cooldown_seconds must be >= 0")
	}
	if b.PageSize == 0 {
		b.PageSize = defaultPageSize
	}
	if b.PageSize < 1 {
		return fmt.Errorf("board.page_size must be >= 1")
	}
	if len(b.Avatars) == 0 {
		b.Avatars = append([]string(nil), defaultAvatars...)
	}

	terms := make([]string, 0, len(b.Blocklist))
	for _, t := range b.Blocklist {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	b.Blocklist = terms
	return nil
}
