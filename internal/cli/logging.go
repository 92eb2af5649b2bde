// Logger construction for the satchel CLI.
package cli

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/origin-mobile/satchel/internal/logging"
)

// newLogger builds a colorized stderr logger. The --verbose flag forces
// debug level; otherwise the config.yaml log_level applies.
func newLogger(configLevel string) logging.Logger {
	level := parseLevel(configLevel)
	if flags.verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	return logging.NewSlogLogger(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
