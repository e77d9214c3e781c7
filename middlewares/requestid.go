package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zenithgo/zenith/internal"
	"github.com/zenithgo/zenith/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string // checked in order for an upstream ID
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers to check for existing request IDs.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator replaces the UUID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Generator = gen
	}
}

// WithRequestIDResponseHeader sets the response header name.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// RequestID returns middleware that tags each request with an ID, reusing
// an upstream one when present. The ID is stored in the request context and
// echoed in a response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	source := make([]internal.ExtractorSource, 0, len(cfg.Headers))
	for _, h := range cfg.Headers {
		source = append(source, internal.FromHeader(h))
	}
	upstream := internal.NewExtractor(source...)

	return internal.MiddlewareFunc(func(req *internal.Request, res *internal.Response, next internal.Next) bool {
		id, ok := upstream.Extract(req)
		if !ok {
			id = cfg.Generator()
		}
		req.Set(requestIDKey{}, id)
		res.SetHeader(cfg.ResponseHeader, id)
		return next()
	})
}

// GetRequestID returns the request ID, or "" when RequestID did not run.
func GetRequestID(req *internal.Request) string {
	return RequestIDFromContext(req.Context())
}

// RequestIDFromContext returns the request ID stored in ctx.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds "request_id" to log records, for logger.New.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := RequestIDFromContext(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
