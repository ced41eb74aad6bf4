package router

import (
	"log/slog"

	"github.com/eaulabs/confessbot/core/logger"
	tg "github.com/eaulabs/confessbot/core/telegram"
	"github.com/eaulabs/confessbot/core/telegram/middleware"
)

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
