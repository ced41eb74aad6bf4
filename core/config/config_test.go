package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Board: BoardConfig{
			ChannelID:   -1001234567890,
			Name:        "EAU Confession",
			ChannelLink: "https://t.me/eauvents",
		},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Board.ConfessionCooldownSeconds != defaultConfessionCooldown {
		t.Fatalf("confession cooldown = %d, want %d", cfg.Board.ConfessionCooldownSeconds, defaultConfessionCooldown)
	}
	if cfg.Board.PageSize != defaultPageSize {
		t.Fatalf("page_size = %d, want %d", cfg.Board.PageSize, defaultPageSize)
	}
	if len(cfg.Board.Avatars) == 0 {
		t.Fatal("avatars default not applied")
	}
}

func TestNormalizeRequiresChannelLink(t *testing.T) {
	cfg := validConfig()
	cfg.Board.ChannelLink = "   "
	err := Normalize(cfg)
	if err == nil {
		t.Fatal("Normalize accepted a blank board.channel_link")
	}
	if !strings.Contains(err.Error(), "channel_link") {
		t.Fatalf("error %q does not name channel_link", err)
	}
}

func TestNormalizeTrimsChannelLink(t *testing.T) {
	cfg := validConfig()
	cfg.Board.ChannelLink = " https://t.me/eauvents "
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Board.ChannelLink != "https://t.me/eauvents" {
		t.Fatalf("channel_link = %q, want trimmed", cfg.Board.ChannelLink)
	}
}

func TestNormalizeRejectsUnknownExcludeUpdate(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("Normalize accepted an unknown exclude_updates entry")
	}
}
