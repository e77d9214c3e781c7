// Package logger builds the framework's structured loggers on log/slog.
//
// A logger is created from a Config (level, json/text format and an
// optional Sentry DSN) plus any number of context extractors. Extractors
// run on every record and add request-scoped attributes such as the
// request ID:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "user created", slog.String("user_id", id))
//
// When SentryDSN is set, warnings and errors are also forwarded to Sentry
// (errors become issues). If Sentry cannot be initialized the logger falls
// back to the configured output only.
package logger
