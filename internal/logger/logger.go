package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bgunnarsson/psql/internal/config"
)

// Setup installs the default slog logger: a text handler on the console
// output and, when configured, a second one appending to a file.
func Setup(cfg config.LoggerConfigs) error {
	var handlers []slog.Handler

	var console io.Writer = os.Stderr
	if cfg.ConsoleOutput == "stdout" {
		console = os.Stdout
	}
	handlers = append(handlers, slog.NewTextHandler(console, &slog.HandlerOptions{
		Level: ParseLevel(cfg.ConsoleLevel),
	}))

	if cfg.FileOutput != "" {
		logFile, err := os.OpenFile(cfg.FileOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}

		handlers = append(handlers, slog.NewTextHandler(logFile, &slog.HandlerOptions{
			Level:     ParseLevel(cfg.FileLevel),
			AddSource: true,
		}))
	}

	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))

	return nil
}

// ParseLevel defaults to info for empty or unknown names.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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
