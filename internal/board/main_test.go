package board

import (
	"os"
	"testing"

	"github.com/eaulabs/confessbot/core/logger"
)

// The services log through package-level loggers (logger.SVCConfessions,
// logger.SVCComments) that are only wired by InitLogger; initialize them
// once so tests don't dereference a nil *slog.Logger.
func TestMain(m *testing.M) {
	if err := logger.InitLogger(&logger.Config{Level: "error"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
