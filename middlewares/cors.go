package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zenithgo/zenith/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig allows any origin with the common methods and the
// Content-Type and Authorization headers.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	AllowHeaders: []string{"Content-Type", "Authorization"},
	MaxAge:       DefaultCORSMaxAge,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// "*" allows any origin.
	AllowOrigins []string
	// AllowOriginFunc, when set, replaces the AllowOrigins check.
	AllowOriginFunc func(origin string) bool

	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string

	// With credentials the request origin is echoed instead of "*".
	AllowCredentials bool

	// Preflight cache duration; zero omits Access-Control-Max-Age.
	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowOriginFunc sets a dynamic origin validator.
// When set, it completely overrides AllowOrigins.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the headers exposed to the client.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials enables credentials support.
// When enabled, Access-Control-Allow-Origin echoes the actual origin instead of "*".
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// CORS returns middleware that adds Cross-Origin Resource Sharing headers.
// A preflight request (OPTIONS with an allowed Origin) is answered with 204
// and stops the chain. Preflights only reach the middleware when an OPTIONS
// route matches, so register one alongside the routes browsers call:
//
//	cors := zenith.Use(middlewares.CORS())
//	r.OPTIONS("/api/{path:any}", zenith.Inline(noop), cors)
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := DefaultCORSConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))
	wildcard := slices.Contains(cfg.AllowOrigins, "*")

	return internal.MiddlewareFunc(func(req *internal.Request, res *internal.Response, next internal.Next) bool {
		origin := req.Header("Origin")
		if origin == "" || !originAllowed(origin, &cfg, wildcard) {
			return next()
		}

		h := res.Header()
		h.Add("Vary", "Origin")
		if cfg.AllowCredentials || !wildcard {
			h.Set("Access-Control-Allow-Origin", origin)
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if exposeHeaders != "" {
			h.Set("Access-Control-Expose-Headers", exposeHeaders)
		}

		if req.Method() != http.MethodOptions {
			return next()
		}

		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		if cfg.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", maxAge)
		}
		_ = res.NoContent(http.StatusNoContent)
		return false
	})
}

func originAllowed(origin string, cfg *CORSConfig, wildcard bool) bool {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	return wildcard || slices.Contains(cfg.AllowOrigins, origin)
}
