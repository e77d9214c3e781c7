package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// Option configures the application.
type Option func(*App)

// routesSource is a YAML routes file registered with WithRoutesFile.
type routesSource struct {
	fsys fs.FS
	name string
}

// WithMiddleware adds global middleware to the application.
// It runs before every route's own middleware, in the order provided.
func WithMiddleware(mw ...MiddlewareRef) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithRoutes registers routes with a plain function.
//
// Example:
//
//	zenith.WithRoutes(func(r zenith.Registrar) {
//	    r.GET("/", zenith.ControllerRef("HomeController", "index"))
//	    r.GET("/ping", zenith.Inline(func(res *zenith.Response, _ ...string) error {
//	        return res.Send(http.StatusOK, "pong")
//	    }))
//	})
func WithRoutes(fn func(r Registrar)) Option {
	return func(a *App) {
		if fn != nil {
			a.routeFns = append(a.routeFns, fn)
		}
	}
}

// WithRoutesFile loads YAML route declarations from fsys.
// Routes files are registered before WithRoutes functions and handlers.
// An unreadable or invalid file panics in New.
//
// Example:
//
//	//go:embed config/routes.yaml
//	var config embed.FS
//
//	zenith.WithRoutesFile(config, "config/routes.yaml")
func WithRoutesFile(fsys fs.FS, name string) Option {
	return func(a *App) {
		a.routeFiles = append(a.routeFiles, routesSource{fsys: fsys, name: name})
	}
}

// WithController registers a controller factory under name.
// Routes reference it with ControllerRef(name, action).
func WithController(name string, f ControllerFactory) Option {
	return func(a *App) {
		a.registry.RegisterController(name, f)
	}
}

// WithNamedMiddleware registers a middleware factory under name.
// Routes reference it with Named(name).
func WithNamedMiddleware(name string, f MiddlewareFactory) Option {
	return func(a *App) {
		a.registry.RegisterMiddleware(name, f)
	}
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
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error or its route cannot be
// resolved, unless the response was already written.
//
// Example:
//
//	zenith.WithErrorHandler(func(req *zenith.Request, res *zenith.Response, err error) error {
//	    return res.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
//
// Example:
//
//	zenith.WithNotFoundHandler(func(req *zenith.Request, res *zenith.Response) error {
//	    return res.Send(http.StatusNotFound, "Page not found")
//	})
func WithNotFoundHandler(h NotFoundHandler) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	zenith.WithHealthChecks(
//	    zenith.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    zenith.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger.
//
// Example:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	zenith.New(
//	    zenith.WithLogger(log.With("component", "web")),
//	)
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithDebug exposes error details in error responses.
// Never enable in production.
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.debug = debug
	}
}

// WithAPIMode makes the default error handler always respond with JSON.
func WithAPIMode() Option {
	return func(a *App) {
		a.api = true
	}
}
