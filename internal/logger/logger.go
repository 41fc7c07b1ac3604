package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the process-wide logger. Init must be called before use.
var Log *slog.Logger

// Init configures slog for the current environment: human-readable text at
// Debug level in development, JSON at Info level otherwise. When a Sentry DSN
// is provided, Error-level records are also forwarded to Sentry.
func Init(isDev bool, sentryDSN string) {
	stdout := &slog.HandlerOptions{Level: slog.LevelInfo}
	var base slog.Handler
	if isDev {
		stdout.Level = slog.LevelDebug
		base = slog.NewTextHandler(os.Stdout, stdout)
	} else {
		base = slog.NewJSONHandler(os.Stdout, stdout)
	}

	handlers := []slog.Handler{base}
	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
			slog.Warn("sentry init failed, continuing without it", "error", err)
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	handler := base
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Flush drains buffered Sentry events. Call on shutdown.
func Flush() {
	sentry.Flush(2 * time.Second)
}
