package internal

import (
	"log/slog"
)

// Next runs the rest of the chain and reports its result.
// It must be called at most once per middleware invocation.
type Next func() bool

// Middleware pre- and post-processes a matched request.
// Returning false without calling next rejects the request; the middleware
// is then responsible for having written a response.
//
// Example:
//
//	zenith.MiddlewareFunc(func(req *zenith.Request, res *zenith.Response, next zenith.Next) bool {
//	    if req.Header("Authorization") == "" {
//	        _ = res.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
//	        return false
//	    }
//	    return next()
//	})
type Middleware interface {
	Handle(req *Request, res *Response, next Next) bool
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(req *Request, res *Response, next Next) bool

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(req *Request, res *Response, next Next) bool {
	return f(req, res, next)
}

// MiddlewareRef is attached to a route: either a middleware instance or the
// name of a registered middleware factory.
type MiddlewareRef interface {
	resolve(reg *Registry) (Middleware, error)
	name() string
}

type instanceRef struct {
	mw Middleware
}

func (r instanceRef) resolve(*Registry) (Middleware, error) { return r.mw, nil }

func (r instanceRef) name() string { return "" }

type namedRef string

func (r namedRef) resolve(reg *Registry) (Middleware, error) { return reg.Middleware(string(r)) }

func (r namedRef) name() string { return string(r) }

// Use attaches a middleware instance to a route.
func Use(m Middleware) MiddlewareRef {
	if m == nil {
		panic("zenith: nil middleware passed to Use")
	}
	return instanceRef{mw: m}
}

// UseFunc attaches a middleware function to a route.
func UseFunc(fn func(req *Request, res *Response, next Next) bool) MiddlewareRef {
	return Use(MiddlewareFunc(fn))
}

// Named attaches a registered middleware by name.
// The name is resolved through the Registry when the route is dispatched.
func Named(name string) MiddlewareRef {
	return namedRef(name)
}

// buildChain folds mw right to left around terminal so that mw[0] is the
// outermost layer and runs first.
func buildChain(req *Request, res *Response, mw []Middleware, terminal Next, log *slog.Logger) Next {
	next := terminal
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		inner := atMostOnce(next, i, log, req)
		next = func() bool {
			return m.Handle(req, res, inner)
		}
	}
	return next
}

// atMostOnce guards a continuation so a middleware calling next twice does
// not run the inner chain twice.
func atMostOnce(next Next, layer int, log *slog.Logger, req *Request) Next {
	var (
		called bool
		result bool
	)
	return func() bool {
		if called {
			log.WarnContext(req.Context(), "middleware called next more than once",
				slog.Int("layer", layer),
				slog.String("method", req.Method()),
				slog.String("path", req.Path()),
			)
			return result
		}
		called = true
		result = next()
		return result
	}
}
