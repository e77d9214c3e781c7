package internal

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zenithgo/zenith/pkg/health"
	"github.com/zenithgo/zenith/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// ErrorHandler renders the response for an error returned by a handler or
// raised while resolving a route.
type ErrorHandler func(req *Request, res *Response, err error) error

// NotFoundHandler renders the response when no route matched.
type NotFoundHandler func(req *Request, res *Response) error

// App orchestrates the application lifecycle.
// It owns the route table, the outer chi mux and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	mux             chi.Router
	router          *Router
	registry        *Registry
	errorHandler    ErrorHandler
	notFoundHandler NotFoundHandler
	healthConfig    *healthConfig
	logger          *slog.Logger
	middlewares     []MiddlewareRef
	handlers        []Handler
	routeFns        []func(Registrar)
	routeFiles      []routesSource
	staticRoutes    []staticRoute
	debug           bool
	api             bool
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation. Route references that cannot be
// resolved are reported as warnings here and fail again per request.
//
// Example:
//
//	app := zenith.New(
//	    zenith.WithLogger(log),
//	    zenith.WithController("UserController", controllers.NewUsers(model)),
//	    zenith.WithHandlers(handlers.NewPages(views)),
//	)
func New(opts ...Option) *App {
	a := &App{
		mux:      chi.NewRouter(),
		logger:   logger.NewNope(), // Default: noop logger (before options)
		registry: NewRegistry(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.router = NewRouter(
		WithRouterLogger(a.logger),
		WithRegistry(a.registry),
		WithGlobalMiddleware(a.middlewares...),
	)

	a.registerRoutes()
	a.validate()
	a.setupMux()
	return a
}

// Router returns the zenith route table.
func (a *App) Router() *Router {
	return a.router
}

// Registry returns the controller and middleware registry.
func (a *App) Registry() *Registry {
	return a.registry
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := zenith.New(
//	    zenith.WithHandlers(handlers.NewLandingHandler()),
//	)
//	err := app.Run(":8080", zenith.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		routes:          len(a.router.Routes()),
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// registerRoutes collects routes from every configured source.
func (a *App) registerRoutes() {
	for _, src := range a.routeFiles {
		if err := LoadRoutesFS(a.router, src.fsys, src.name); err != nil {
			panic(err)
		}
	}
	for _, fn := range a.routeFns {
		fn(a.router)
	}
	for _, h := range a.handlers {
		h.Routes(a.router)
	}
}

// validate logs every route that cannot be resolved.
func (a *App) validate() {
	err := a.router.Validate()
	if err == nil {
		return
	}
	controllers := a.registry.ControllerNames()
	for _, line := range strings.Split(err.Error(), "\n") {
		a.logger.Warn("route configuration problem",
			slog.String("error", line),
			slog.Any("controllers", controllers),
		)
	}
}

// setupMux mounts health and static endpoints on chi and forwards
// everything else to the route table.
func (a *App) setupMux() {
	for _, sr := range a.staticRoutes {
		a.mux.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		opts := []health.Option{health.WithLogger(a.logger)}
		a.mux.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.mux.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, opts...))
	}

	a.mux.Handle("/*", http.HandlerFunc(a.dispatch))
	a.mux.NotFound(a.dispatch)
	a.mux.MethodNotAllowed(a.dispatch)
}

// dispatch runs the route table for one request.
func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	res := NewResponse(w)

	outcome, err := a.router.Dispatch(req, res)
	switch outcome {
	case Unhandled:
		a.handleNotFound(req, res)
	case Rejected:
		if err != nil {
			a.handleError(req, res, err)
			return
		}
		if !res.Written() {
			a.logger.DebugContext(req.Context(), "middleware rejected request without a response",
				slog.String("method", req.Method()),
				slog.String("uri", req.URI()),
			)
		}
	case Handled:
		if err != nil {
			a.handleError(req, res, err)
		}
	}
}

func (a *App) handleNotFound(req *Request, res *Response) {
	if a.notFoundHandler != nil {
		if err := a.notFoundHandler(req, res); err != nil {
			a.handleError(req, res, err)
		}
		return
	}
	a.handleError(req, res, ErrNotFound(""))
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(req *Request, res *Response, err error) {
	if !isResolutionError(err) {
		if he := AsHTTPError(err); he == nil || he.Code >= http.StatusInternalServerError {
			a.logger.ErrorContext(req.Context(), "handler failed",
				slog.String("method", req.Method()),
				slog.String("uri", req.URI()),
				slog.Any("error", err),
			)
		}
	}

	// Check if response has already been written
	if res.Written() {
		return
	}

	h := a.errorHandler
	if h == nil {
		h = a.defaultErrorHandler
	}
	if herr := h(req, res, err); herr != nil {
		a.logger.ErrorContext(req.Context(), "error handler failed", slog.Any("error", herr))
		if !res.Written() {
			http.Error(res.Writer(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Code    int    `json:"code"`
}

var errorPage = template.Must(template.New("error").Parse(
	`<!DOCTYPE html><html><head><title>Error {{.Code}}</title></head><body>` +
		`<h1>Error {{.Code}}</h1><p>{{.Message}}</p>{{if .Detail}}<pre>{{.Detail}}</pre>{{end}}</body></html>`,
))

// defaultErrorHandler renders JSON for API clients and a small HTML page
// otherwise. Internal details are only exposed in debug mode.
func (a *App) defaultErrorHandler(req *Request, res *Response, err error) error {
	d := errorDetail{
		Code:    http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
	}
	if he := AsHTTPError(err); he != nil {
		d.Code = he.Code
		d.Message = he.Message
		if a.debug && he.Err != nil {
			d.Detail = he.Err.Error()
		}
	} else if a.debug {
		d.Detail = err.Error()
	}

	if a.api || wantsJSON(req) {
		return res.JSON(d.Code, errorBody{Error: d})
	}

	var b strings.Builder
	if err := errorPage.Execute(&b, d); err != nil {
		return err
	}
	return res.HTML(d.Code, b.String())
}

// wantsJSON checks if the client wants a JSON response.
func wantsJSON(req *Request) bool {
	if strings.Contains(req.Header("Accept"), "application/json") {
		return true
	}
	return req.isJSON()
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run concurrently during the readiness probe.
//
// Example:
//
//	zenith.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
