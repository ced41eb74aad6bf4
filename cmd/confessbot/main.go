package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eaulabs/confessbot/core/config"
	"github.com/eaulabs/confessbot/core/logger"
	tg "github.com/eaulabs/confessbot/core/telegram"
	"github.com/eaulabs/confessbot/internal/bot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "confessbot:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	app, err := bot.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			fmt.Fprintln(os.Stderr, "confessbot: logger shutdown:", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tg.RunTelegram(ctx, app.TelegramRunOptions()); err != nil {
		logger.L.Error("bot stopped",
			slog.String("event", "shutdown"),
			slog.String("err", err.Error()),
		)
		return err
	}

	logger.L.Info("bot stopped", slog.String("event", "shutdown"))
	return nil
}
