package zenith

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/zenithgo/zenith/internal"
	"github.com/zenithgo/zenith/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It owns the route table, the outer mux and graceful shutdown.
	App = internal.App

	// Router holds the route table and dispatches requests against it.
	Router = internal.Router

	// Registrar is the interface handlers use to declare routes.
	Registrar = internal.Registrar

	// Handler declares routes on a registrar.
	Handler = internal.Handler

	// HandlerRef identifies a route handler: inline closure or controller action.
	HandlerRef = internal.HandlerRef

	// InlineFunc is a closure handler receiving path values positionally.
	InlineFunc = internal.InlineFunc

	// Middleware pre- and post-processes a matched request.
	Middleware = internal.Middleware

	// MiddlewareFunc adapts a function to Middleware.
	MiddlewareFunc = internal.MiddlewareFunc

	// MiddlewareRef attaches middleware to a route.
	MiddlewareRef = internal.MiddlewareRef

	// Next runs the rest of the middleware chain.
	Next = internal.Next

	// Request is the per-call request context.
	Request = internal.Request

	// Response is the per-call response sink.
	Response = internal.Response

	// ResponseWriter wraps http.ResponseWriter and records status and size.
	ResponseWriter = internal.ResponseWriter

	// Component is the interface for renderable templates.
	Component = internal.Component

	// Controller exposes named actions.
	Controller = internal.Controller

	// ControllerFunc adapts a plain action map to Controller.
	ControllerFunc = internal.ControllerFunc

	// ControllerFactory creates a controller per dispatch.
	ControllerFactory = internal.ControllerFactory

	// MiddlewareFactory creates a middleware per dispatch.
	MiddlewareFactory = internal.MiddlewareFactory

	// Action is a controller method descriptor.
	Action = internal.Action

	// Args holds resolved action arguments.
	Args = internal.Args

	// Param describes one action parameter.
	Param = internal.Param

	// Registry maps controller and middleware names to factories.
	Registry = internal.Registry

	// Pattern is a compiled route path.
	Pattern = internal.Pattern

	// RouteInfo describes a registered route.
	RouteInfo = internal.RouteInfo

	// Outcome is the result of dispatching one request.
	Outcome = internal.Outcome

	// ErrorHandler renders handler and resolution errors.
	ErrorHandler = internal.ErrorHandler

	// NotFoundHandler renders the response when no route matched.
	NotFoundHandler = internal.NotFoundHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// RouterOption configures a standalone Router.
	RouterOption = internal.RouterOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Extractor tries request sources in order.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from a request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// HTTPError carries a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ConfigurationError reports an unresolvable route reference.
	ConfigurationError = internal.ConfigurationError

	// UnresolvedDependencyError reports an action parameter that cannot be injected.
	UnresolvedDependencyError = internal.UnresolvedDependencyError
)

// Dispatch outcomes.
const (
	Unhandled = internal.Unhandled
	Rejected  = internal.Rejected
	Handled   = internal.Handled
)

// Placeholder constraints.
const (
	ConstraintInt   = internal.ConstraintInt
	ConstraintSlug  = internal.ConstraintSlug
	ConstraintAlpha = internal.ConstraintAlpha
	ConstraintAny   = internal.ConstraintAny
)

// Sentinel errors.
var (
	ErrInvalidPattern     = internal.ErrInvalidPattern
	ErrResponseCommitted  = internal.ErrResponseCommitted
	ErrUnsupportedBody    = internal.ErrUnsupportedBody
	ErrRoutesFile         = internal.ErrRoutesFile
	ErrRegistrationClosed = internal.ErrRegistrationClosed
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := zenith.New(
//	    zenith.WithLogger(log),
//	    zenith.WithMiddleware(zenith.Use(middlewares.RequestID())),
//	    zenith.WithController("PostController", controllers.NewPosts(posts)),
//	    zenith.WithRoutes(func(r zenith.Registrar) {
//	        r.GET("/posts/{id}", zenith.ControllerRef("PostController", "show"))
//	    }),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRouter creates a standalone route table without the App shell.
// Router implements http.Handler with plain 404/500 defaults.
func NewRouter(opts ...RouterOption) *Router {
	return internal.NewRouter(opts...)
}

// WithRegistry sets the registry a standalone Router resolves names against.
func WithRegistry(reg *Registry) RouterOption {
	return internal.WithRegistry(reg)
}

// WithRouterLogger sets the logger a standalone Router reports to.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return internal.WithRouterLogger(l)
}

// WithGlobalMiddleware prepends mw to every route of a standalone Router.
func WithGlobalMiddleware(mw ...MiddlewareRef) RouterOption {
	return internal.WithGlobalMiddleware(mw...)
}

// NewRegistry creates an empty controller and middleware registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// CompilePattern compiles a route path.
func CompilePattern(path string) (*Pattern, error) {
	return internal.CompilePattern(path)
}

// Handlers

// Inline wraps a closure as a route handler.
func Inline(fn InlineFunc) HandlerRef {
	return internal.Inline(fn)
}

// ControllerRef references an action of a registered controller.
func ControllerRef(controller, action string) HandlerRef {
	return internal.ControllerRef(controller, action)
}

// NewAction builds a controller action from its body and parameter list.
func NewAction(fn func(args Args) error, params ...Param) Action {
	return internal.NewAction(fn, params...)
}

// PathParam declares an action parameter filled from the route path.
func PathParam(name string) Param {
	return internal.PathParam(name)
}

// RequestParam declares an action parameter that receives the *Request.
func RequestParam() Param {
	return internal.RequestParam()
}

// ResponseParam declares an action parameter that receives the *Response.
func ResponseParam() Param {
	return internal.ResponseParam()
}

// DependencyParam declares an action parameter of another type.
// Such actions fail resolution with UnresolvedDependencyError.
func DependencyParam(name, typeName string) Param {
	return internal.DependencyParam(name, typeName)
}

// Middleware references

// Use attaches a middleware instance to a route.
func Use(m Middleware) MiddlewareRef {
	return internal.Use(m)
}

// UseFunc attaches a middleware function to a route.
func UseFunc(fn func(req *Request, res *Response, next Next) bool) MiddlewareRef {
	return internal.UseFunc(fn)
}

// Named attaches a registered middleware by name.
func Named(name string) MiddlewareRef {
	return internal.Named(name)
}

// App options

// WithMiddleware adds global middleware to the application.
// It runs before every route's own middleware, in the order provided.
func WithMiddleware(mw ...MiddlewareRef) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithRoutes registers routes with a plain function.
func WithRoutes(fn func(r Registrar)) Option {
	return internal.WithRoutes(fn)
}

// WithRoutesFile loads YAML route declarations from fsys.
func WithRoutesFile(fsys fs.FS, name string) Option {
	return internal.WithRoutesFile(fsys, name)
}

// WithController registers a controller factory under name.
func WithController(name string, f ControllerFactory) Option {
	return internal.WithController(name, f)
}

// WithNamedMiddleware registers a middleware factory under name.
func WithNamedMiddleware(name string, f MiddlewareFactory) Option {
	return internal.WithNamedMiddleware(name, f)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	zenith.New(
//	    zenith.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h NotFoundHandler) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	zenith.WithHealthChecks(
//	    zenith.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithDebug exposes error details in error responses.
func WithDebug(debug bool) Option {
	return internal.WithDebug(debug)
}

// WithAPIMode makes the default error handler always respond with JSON.
func WithAPIMode() Option {
	return internal.WithAPIMode()
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger. Defaults to the App's logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before requests are served.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	zenith.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Routes files

// LoadRoutes parses YAML route declarations and registers them on r.
func LoadRoutes(r Registrar, data []byte) error {
	return internal.LoadRoutes(r, data)
}

// LoadRoutesFS reads a YAML routes file from fsys and registers it on r.
func LoadRoutesFS(r Registrar, fsys fs.FS, name string) error {
	return internal.LoadRoutesFS(r, fsys, name)
}

// Extractors

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource { return internal.FromQuery(name) }

// FromCookie returns a source that reads from a plain cookie.
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }

// FromParam returns a source that reads from a path parameter.
func FromParam(name string) ExtractorSource { return internal.FromParam(name) }

// FromForm returns a source that reads from a form field.
func FromForm(name string) ExtractorSource { return internal.FromForm(name) }

// FromBearerToken returns a source that reads a Bearer token.
func FromBearerToken() ExtractorSource { return internal.FromBearerToken() }

// Typed helpers

// PathValue returns the named path parameter converted to T.
//
// Example:
//
//	id := zenith.PathValue[int64](req, "id")
func PathValue[T internal.Scalar](req *Request, name string) T {
	return internal.PathValue[T](req, name)
}

// Query returns the named query parameter converted to T.
func Query[T internal.Scalar](req *Request, name string) T {
	return internal.Query[T](req, name)
}

// QueryDefault returns the named query parameter or defaultValue.
func QueryDefault[T internal.Scalar](req *Request, name string, defaultValue T) T {
	return internal.QueryDefault(req, name, defaultValue)
}

// ContextValue returns the request-scoped value stored under key.
func ContextValue[T any](req *Request, key any) T {
	return internal.ContextValue[T](req, key)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption { return internal.WithError(err) }

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized creates a 401 error.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden creates a 403 error.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrUnprocessable creates a 422 error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// IsHTTPError returns true if err is or wraps an HTTPError.
func IsHTTPError(err error) bool { return internal.IsHTTPError(err) }

// AsHTTPError extracts the HTTPError from err if present.
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

// IsConfigurationError returns true if err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool { return internal.IsConfigurationError(err) }

// IsUnresolvedDependencyError returns true if err is or wraps an UnresolvedDependencyError.
func IsUnresolvedDependencyError(err error) bool { return internal.IsUnresolvedDependencyError(err) }
