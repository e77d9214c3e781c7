// Package internal provides the core types and implementation for the zenith framework.
//
// This package is internal and should not be used directly. Import "github.com/zenithgo/zenith"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - Router: Ordered route table and dispatcher
//   - Pattern: Compiled route path with {placeholder} captures
//   - HandlerRef: Inline closure or controller action reference
//   - Registry: Name to factory bindings for controllers and middleware
//   - Middleware: Pre/post processing with an explicit next continuation
//   - Request / Response: Per-call request context and response sink
//   - App: chi-mounted application shell with graceful shutdown
//
// # Dispatch
//
// Routes are scanned in registration order. The first route whose method
// and pattern match owns the request; no other route is consulted, even
// when its handler or middleware cannot be resolved.
//
// For the matched route, middleware references and the handler are
// resolved first. The chain is then folded right to left so the first
// listed middleware is the outermost layer:
//
//	A.pre -> B.pre -> C.pre -> handler -> C.post -> B.post -> A.post
//
// A middleware that returns false without calling next rejects the request
// and the handler never runs. Dispatch reports one of three outcomes:
// Unhandled, Rejected or Handled.
//
// A middleware that wants the App's error handler to render the failure
// calls Request.Abort(err) before returning false; Dispatch then returns the
// aborted error with the Rejected outcome.
//
// # Patterns
//
// A placeholder without a constraint matches one or more digits:
//
//	/users/{id}/posts/{postId}
//
// Named constraints widen it:
//
//	/posts/{slug:slug}   lowercase letters, digits and dashes
//	/tags/{name:alpha}   letters only
//	/files/{name:any}    any run of characters except "/"
//
// Literal text is matched exactly (case-insensitively). The query string is
// ignored.
//
// # Handlers
//
// Inline handlers receive the response and the path values positionally:
//
//	r.GET("/users/{id}", internal.Inline(func(res *internal.Response, params ...string) error {
//	    return res.Send(http.StatusOK, "user "+params[0])
//	}))
//
// Controller actions declare their parameters. Path values are consumed in
// pattern order regardless of where the request and response sit:
//
//	internal.NewAction(func(a internal.Args) error {
//	    return a.Response(2).JSON(http.StatusOK, map[string]string{"id": a.String(1)})
//	}, internal.RequestParam(), internal.PathParam("id"), internal.ResponseParam())
//
// Any other parameter kind fails resolution with UnresolvedDependencyError.
//
// # Error Handling
//
// A resolution failure (unknown controller, action or middleware) is a
// ConfigurationError. It is logged, returned from Dispatch with the
// Handled outcome and rendered by the App's error handler. It never
// affects other routes or later requests. Router.Validate reports every
// such problem up front; New logs them as warnings.
//
// Handlers return *HTTPError to pick a status code:
//
//	return internal.ErrNotFound("post not found")
//
// # Concurrency
//
// The route table is sealed on the first dispatch. Registering a route
// afterwards panics with ErrRegistrationClosed. After sealing the table is
// read without locks by any number of request goroutines.
package internal
