package middlewares

import (
	"log/slog"
	"time"

	"github.com/zenithgo/zenith/internal"
)

// Logger returns middleware that writes one access log record per request.
// Status and size are only known when the chain wrote the response itself;
// errors rendered later by the App's error handler are logged there.
func Logger(log *slog.Logger) internal.Middleware {
	return internal.MiddlewareFunc(func(req *internal.Request, res *internal.Response, next internal.Next) bool {
		start := time.Now()
		ok := next()

		attrs := []slog.Attr{
			slog.String("method", req.Method()),
			slog.String("uri", req.URI()),
			slog.Duration("duration", time.Since(start)),
			slog.Bool("completed", ok),
		}
		level := slog.LevelInfo
		if res.Written() {
			attrs = append(attrs, slog.Int("status", res.Status()), slog.Int64("size", res.Size()))
			switch {
			case res.Status() >= 500:
				level = slog.LevelError
			case res.Status() >= 400:
				level = slog.LevelWarn
			}
		}
		if err := req.Err(); err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			level = max(level, slog.LevelWarn)
		}

		log.LogAttrs(req.Context(), level, "request", attrs...)
		return ok
	})
}
