package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/zenithgo/zenith/pkg/logger"
)

// Registrar is the interface handlers use to declare routes.
type Registrar interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerRef, mw ...MiddlewareRef)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerRef, mw ...MiddlewareRef)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerRef, mw ...MiddlewareRef)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerRef, mw ...MiddlewareRef)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerRef, mw ...MiddlewareRef)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerRef, mw ...MiddlewareRef)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerRef, mw ...MiddlewareRef)

	// Handle registers a handler for an arbitrary method.
	Handle(method, path string, h HandlerRef, mw ...MiddlewareRef)

	// Route creates a route group with a path prefix.
	Route(prefix string, fn func(r Registrar))

	// With returns a registrar whose routes run mw before their own middleware.
	With(mw ...MiddlewareRef) Registrar
}

// Router holds the route table and dispatches requests against it.
// Routes must all be registered before the first dispatch; afterwards the
// table is sealed and read without locking.
type Router struct {
	logger   *slog.Logger
	registry *Registry
	resolver resolver
	global   []MiddlewareRef
	routes   []*Route
	frozen   []*Route
	mu       sync.Mutex
	seal     sync.Once
	sealed   bool
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRouterLogger sets the logger used for dispatch diagnostics.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRegistry sets the controller and middleware registry.
func WithRegistry(reg *Registry) RouterOption {
	return func(r *Router) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithGlobalMiddleware prepends mw to every route registered afterwards.
func WithGlobalMiddleware(mw ...MiddlewareRef) RouterOption {
	return func(r *Router) {
		r.global = append(r.global, mw...)
	}
}

// NewRouter creates an empty router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		logger:   logger.NewNope(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resolver = resolver{registry: r.registry}
	return r
}

// Registry returns the router's registry.
func (r *Router) Registry() *Registry {
	return r.registry
}

func (r *Router) GET(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodGet, path, h, mw...)
}

func (r *Router) POST(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodPost, path, h, mw...)
}

func (r *Router) PUT(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodPut, path, h, mw...)
}

func (r *Router) PATCH(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodPatch, path, h, mw...)
}

func (r *Router) DELETE(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodDelete, path, h, mw...)
}

func (r *Router) HEAD(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodHead, path, h, mw...)
}

func (r *Router) OPTIONS(path string, h HandlerRef, mw ...MiddlewareRef) {
	r.Handle(http.MethodOptions, path, h, mw...)
}

// Handle appends a route to the table. It panics if the pattern is invalid
// or if dispatching has already started.
func (r *Router) Handle(method, path string, h HandlerRef, mw ...MiddlewareRef) {
	r.add(method, path, h, mw)
}

func (r *Router) Route(prefix string, fn func(Registrar)) {
	(&group{router: r}).Route(prefix, fn)
}

func (r *Router) With(mw ...MiddlewareRef) Registrar {
	return &group{router: r, middleware: slices.Clone(mw)}
}

func (r *Router) add(method, path string, h HandlerRef, mw []MiddlewareRef) {
	route := newRoute(method, path, h, append(slices.Clone(r.global), mw...))

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic(fmt.Errorf("%w: %s %s", ErrRegistrationClosed, method, path))
	}
	r.routes = append(r.routes, route)
}

// table seals the route table on first use and returns it.
func (r *Router) table() []*Route {
	r.seal.Do(func() {
		r.mu.Lock()
		r.sealed = true
		r.frozen = r.routes
		r.mu.Unlock()
	})
	return r.frozen
}

// Routes describes the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RouteInfo, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route.info())
	}
	return out
}

// Dispatch routes one request. Routes are tried in registration order and
// the first whose method and pattern match owns the request: its
// middleware chain runs with the resolved handler as the innermost step
// and no other route is consulted, even when resolution fails.
//
// Unhandled is returned when no route matched. Rejected is returned when a
// middleware declined the request; err is then whatever the middleware passed
// to Request.Abort, usually nil. Otherwise the outcome is Handled and err
// carries the handler's error, an aborted error or a resolution error.
func (r *Router) Dispatch(req *Request, res *Response) (Outcome, error) {
	uri := req.URI()
	for _, route := range r.table() {
		if route.method != req.Method() {
			continue
		}
		params, ok := route.pattern.Match(uri)
		if !ok {
			continue
		}
		return r.run(route, params, req, res)
	}
	return Unhandled, nil
}

func (r *Router) run(route *Route, params []string, req *Request, res *Response) (Outcome, error) {
	req.withParams(route.pattern.Names(), params)
	res.bindRequest(req)

	mw, err := r.middlewareFor(route)
	if err != nil {
		r.reportResolution(req, route, err)
		return Handled, err
	}

	plan, err := r.resolver.resolve(route.handler, params, req, res)
	if err != nil {
		r.reportResolution(req, route, err)
		return Handled, err
	}

	var (
		ran        bool
		handlerErr error
	)
	terminal := func() bool {
		ran = true
		handlerErr = plan()
		return handlerErr == nil
	}

	buildChain(req, res, mw, terminal, r.logger)()

	if !ran {
		r.logger.DebugContext(req.Context(), "request rejected by middleware",
			slog.String("method", route.method),
			slog.String("route", route.pattern.String()),
		)
		return Rejected, req.Err()
	}
	if handlerErr == nil {
		handlerErr = req.Err()
	}
	return Handled, handlerErr
}

func (r *Router) middlewareFor(route *Route) ([]Middleware, error) {
	mw := make([]Middleware, 0, len(route.middleware))
	for _, ref := range route.middleware {
		m, err := ref.resolve(r.registry)
		if err != nil {
			return nil, err
		}
		mw = append(mw, m)
	}
	return mw, nil
}

func (r *Router) reportResolution(req *Request, route *Route, err error) {
	r.logger.ErrorContext(req.Context(), "route resolution failed",
		slog.String("method", route.method),
		slog.String("route", route.pattern.String()),
		slog.String("handler", route.handler.String()),
		slog.String("uri", req.URI()),
		slog.Any("error", err),
	)
}

// Validate resolves every route's middleware and handler without running
// them and returns all configuration problems found.
func (r *Router) Validate() error {
	r.mu.Lock()
	routes := slices.Clone(r.routes)
	r.mu.Unlock()

	var errs []error
	for _, route := range routes {
		if _, err := r.middlewareFor(route); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", route.method, route.pattern, err))
		}
		if err := r.resolver.check(route.handler, len(route.pattern.Names())); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", route.method, route.pattern, err))
		}
	}
	return errors.Join(errs...)
}

// ServeHTTP dispatches an HTTP request with minimal defaults:
// 404 when unhandled, 500 (or the HTTPError's code) on failure.
// Use App for configurable error and not-found handling.
func (r *Router) ServeHTTP(w http.ResponseWriter, hr *http.Request) {
	req := NewRequest(hr)
	res := NewResponse(w)

	outcome, err := r.Dispatch(req, res)
	switch {
	case outcome == Unhandled:
		http.NotFound(res.Writer(), hr)
	case err != nil && !res.Written():
		code := http.StatusInternalServerError
		if he := AsHTTPError(err); he != nil {
			code = he.Code
		}
		http.Error(res.Writer(), http.StatusText(code), code)
	}
}

// group is a Registrar that adds a prefix and middleware to its routes.
type group struct {
	router     *Router
	prefix     string
	middleware []MiddlewareRef
}

func (g *group) GET(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodGet, path, h, mw...)
}

func (g *group) POST(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodPost, path, h, mw...)
}

func (g *group) PUT(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodPut, path, h, mw...)
}

func (g *group) PATCH(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodPatch, path, h, mw...)
}

func (g *group) DELETE(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodDelete, path, h, mw...)
}

func (g *group) HEAD(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodHead, path, h, mw...)
}

func (g *group) OPTIONS(path string, h HandlerRef, mw ...MiddlewareRef) {
	g.Handle(http.MethodOptions, path, h, mw...)
}

func (g *group) Handle(method, path string, h HandlerRef, mw ...MiddlewareRef) {
	all := append(slices.Clone(g.middleware), mw...)
	g.router.add(method, joinPath(g.prefix, path), h, all)
}

func (g *group) Route(prefix string, fn func(Registrar)) {
	fn(&group{
		router:     g.router,
		prefix:     joinPath(g.prefix, prefix),
		middleware: slices.Clone(g.middleware),
	})
}

func (g *group) With(mw ...MiddlewareRef) Registrar {
	return &group{
		router:     g.router,
		prefix:     g.prefix,
		middleware: append(slices.Clone(g.middleware), mw...),
	}
}
