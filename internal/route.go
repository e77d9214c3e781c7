package internal

import "strings"

// Route is a registered (method, pattern, handler, middleware) tuple.
// It is never mutated after registration.
type Route struct {
	pattern    *Pattern
	handler    HandlerRef
	method     string
	middleware []MiddlewareRef
}

// Method returns the HTTP method the route answers to.
func (r *Route) Method() string { return r.method }

// Path returns the route's path pattern as registered.
func (r *Route) Path() string { return r.pattern.String() }

// Handler returns the route's handler reference.
func (r *Route) Handler() HandlerRef { return r.handler }

// RouteInfo is a read-only description of a registered route.
type RouteInfo struct {
	Method     string
	Path       string
	Handler    string
	Middleware []string
}

func (r *Route) info() RouteInfo {
	ri := RouteInfo{Method: r.method, Path: r.pattern.String(), Handler: r.handler.String()}
	for _, m := range r.middleware {
		if n := m.name(); n != "" {
			ri.Middleware = append(ri.Middleware, n)
		} else {
			ri.Middleware = append(ri.Middleware, "func")
		}
	}
	return ri
}

func newRoute(method, path string, h HandlerRef, mw []MiddlewareRef) *Route {
	if h == nil {
		panic("zenith: nil handler for " + method + " " + path)
	}
	return &Route{
		method:     strings.ToUpper(method),
		pattern:    MustCompilePattern(path),
		handler:    h,
		middleware: mw,
	}
}

// joinPath joins a group prefix and a route path.
func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}
