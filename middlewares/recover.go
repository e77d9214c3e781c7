package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/zenithgo/zenith/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverLogger sets the logger for recovered panics.
// Default: slog.Default().
func WithRecoverLogger(log *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.Logger = log
	}
}

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that stops a panic in the rest of the chain.
// The panic is logged and passed to the App's error handler as a 500
// HTTPError wrapping a *PanicError.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		Logger:    slog.Default(),
		StackSize: DefaultStackSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return internal.MiddlewareFunc(func(req *internal.Request, res *internal.Response, next internal.Next) (ok bool) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var stack []byte
			attrs := []any{slog.Any("panic", r), slog.String("method", req.Method()), slog.String("uri", req.URI())}
			if !cfg.DisablePrintStack {
				stack = make([]byte, cfg.StackSize)
				stack = stack[:runtime.Stack(stack, false)]
				attrs = append(attrs, slog.String("stack", string(stack)))
			}
			cfg.Logger.ErrorContext(req.Context(), "panic recovered", attrs...)

			req.Abort(internal.ErrInternal("", internal.WithError(&PanicError{Value: r, Stack: stack})))
			ok = false
		}()

		return next()
	})
}
