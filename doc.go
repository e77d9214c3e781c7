// Package zenith provides a small web framework for server-rendered and
// API-backed Go applications.
//
// At its core is an ordered route table. Each route pairs an HTTP method and
// a path pattern with a handler and a middleware list. The first route that
// matches a request owns it: its middleware runs in declaration order around
// the handler, and any middleware can stop the request by returning false.
//
// # Quick Start
//
// Create a new application with zenith.New(), configure it with options,
// and call Run() to start the HTTP server:
//
//	app := zenith.New(
//	    zenith.WithLogger(log),
//	    zenith.WithController("UserController", controllers.NewUsers(users)),
//	    zenith.WithNamedMiddleware("auth", newAuth(tokens)),
//	    zenith.WithRoutes(func(r zenith.Registrar) {
//	        r.GET("/users/{id}", zenith.ControllerRef("UserController", "show"), zenith.Named("auth"))
//	    }),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Route Patterns
//
// Placeholders are written {name}. By default they match digits only;
// {name:slug}, {name:alpha} and {name:any} widen the match. Literal text is
// matched exactly and case-insensitively. The query string is ignored.
//
// # Handlers
//
// Inline handlers receive path values positionally:
//
//	r.GET("/posts/{id}", zenith.Inline(func(res *zenith.Response, params ...string) error {
//	    return res.Send(http.StatusOK, "post "+params[0])
//	}))
//
// Controllers are registered by name and expose actions that declare what
// they need injected:
//
//	func NewUsers(users *db.Model) zenith.ControllerFactory {
//	    return func() zenith.Controller {
//	        return zenith.ControllerFunc{
//	            "show": zenith.NewAction(func(a zenith.Args) error {
//	                user, err := users.Find(a.Request(0).Context(), a.String(1))
//	                if err != nil {
//	                    return zenith.ErrNotFound("")
//	                }
//	                return a.Response(2).JSON(http.StatusOK, user)
//	            }, zenith.RequestParam(), zenith.PathParam("id"), zenith.ResponseParam()),
//	        }
//	    }
//	}
//
// A route that references a controller, action or middleware that does not
// exist fails with a ConfigurationError when it is dispatched. The error is
// logged and rendered by the error handler; other routes keep working.
//
// # Middleware
//
// Middleware sees the request before and after the rest of the chain:
//
//	func Timing(log *slog.Logger) zenith.Middleware {
//	    return zenith.MiddlewareFunc(func(req *zenith.Request, res *zenith.Response, next zenith.Next) bool {
//	        start := time.Now()
//	        ok := next()
//	        log.Info("request", "path", req.Path(), "duration", time.Since(start))
//	        return ok
//	    })
//	}
//
// To have the error handler render a refusal, record the error with
// Request.Abort and return false:
//
//	if !allowed(req) {
//	    req.Abort(zenith.ErrForbidden("Admins only"))
//	    return false
//	}
//
// Ready-made middleware lives in the middlewares package.
//
// # Routes Files
//
// Controller routes can also be declared in YAML and loaded with
// WithRoutesFile:
//
//	routes:
//	  - method: GET
//	    path: /users/{id}
//	    handler: UserController@show
//	    middleware: [auth]
//
// # Shutdown
//
// The application handles SIGINT/SIGTERM for graceful shutdown.
// Register cleanup functions with ShutdownHook:
//
//	err := app.Run(":8080",
//	    zenith.ShutdownHook(db.Shutdown(pool)),
//	)
package zenith
