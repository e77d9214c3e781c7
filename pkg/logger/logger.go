package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config selects the output format, level and optional Sentry forwarding.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// SentryMinLevel selects which records reach Sentry: "warn" or "error".
	SentryMinLevel string `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`

	// Output defaults to os.Stdout.
	Output io.Writer `env:"-"`
}

// New creates a logger from cfg, decorated with the given context extractors.
// Without a Sentry DSN, or if Sentry fails to initialize, it logs to the
// output only.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var base slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		base = slog.NewTextHandler(out, opts)
	} else {
		base = slog.NewJSONHandler(out, opts)
	}

	if cfg.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(base, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if ParseLevel(cfg.SentryMinLevel) >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(newMultiHandler(base, sentryHandler), extractors...))
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
