package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreconfig "github.com/eaulabs/confessbot/core/config"
	coredatabase "github.com/eaulabs/confessbot/core/database"
	"github.com/eaulabs/confessbot/core/logger"
	tg "github.com/eaulabs/confessbot/core/telegram"
	"github.com/eaulabs/confessbot/core/telegram/commands"
	tghelpers "github.com/eaulabs/confessbot/core/telegram/helpers"
	"github.com/eaulabs/confessbot/core/telegram/router"
	"github.com/eaulabs/confessbot/core/telegram/state"
	"github.com/eaulabs/confessbot/internal/board"
	"github.com/eaulabs/confessbot/internal/cooldown"
	"github.com/eaulabs/confessbot/internal/moderation"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"
)

// App bundles the wired application: storage, domain services, and the
// Telegram surface ready to run.
type App struct {
	cfg       *coreconfig.Config
	db        *sqlx.DB
	publisher *channelPublisher
	handlers  *handlers
	registry  *tg.Registry
}

// NewApp loads storage, runs migrations, and wires the confession board
// services to their Telegram handlers.
func NewApp(cfg *coreconfig.Config) (*App, error) {
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}

	if err := coredatabase.RunMigrations(cfg.Database); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	db, err := coredatabase.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connect: %w", err)
	}

	store := board.NewStore(db)
	filter := moderation.NewFilter(cfg.Board.Blocklist)
	blocklist, truncated := logger.SummarizeStrings(cfg.Board.Blocklist, 8)
	logger.L.Info("moderation filter loaded",
		slog.String("event", "startup"),
		slog.Int("terms", len(cfg.Board.Blocklist)),
		slog.String("blocklist", blocklist),
		slog.Bool("truncated", truncated),
	)
	limiter := cooldown.New(map[cooldown.Action]time.Duration{
		cooldown.ActionConfess: time.Duration(cfg.Board.ConfessionCooldownSeconds) * time.Second,
		cooldown.ActionComment: time.Duration(cfg.Board.CommentCooldownSeconds) * time.Second,
	})

	publisher := newChannelPublisher(cfg.Board.ChannelID)

	h := &handlers{
		board:       cfg.Board,
		confessions: board.NewConfessionService(store, publisher, filter, limiter, cfg.Board.Name),
		comments:    board.NewCommentService(store, publisher, filter, limiter, cfg.Board.Avatars),
		pages:       board.NewPageRenderer(store, cfg.Board.Name, cfg.Board.PageSize),
		fsm:         state.NewMemoryManager(),
		publisher:   publisher,
	}
	state.RegisterHandler(stateAwaitingComment, h.receiveComment)

	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.start,
		Description: "Open the menu",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.help,
		Description: "How to use the bot",
	})
	reg.RegisterCommand("/stop", commands.Command{
		Handler:     h.stop,
		Description: "Cancel the current action",
		Aliases:     []string{"cancel"},
	})
	reg.SetTextFallback(h.onText)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active."})
	})
	if err := reg.RegisterCallback(cbPage, h.onPageCallback); err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		db:        db,
		publisher: publisher,
		handlers:  h,
		registry:  reg,
	}, nil
}

// TelegramRunOptions assembles the routes and lifecycle hooks for RunTelegram.
func (a *App) TelegramRunOptions() tg.RunOptions {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.TextRoutes(a.handlers.fsm, a.registry, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))

	onLimited := func(c tele.Context) error {
		return tghelpers.SendText(c, "Too many requests, slow down.")
	}

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg, onLimited),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.publisher.Bind(rt.Bot)
			logger.TG.Info("bot ready",
				slog.String("event", "startup"),
				slog.String("username", a.publisher.Username()),
				slog.Int64("channel_id", a.cfg.Board.ChannelID),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			return a.Close()
		},
	}
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
