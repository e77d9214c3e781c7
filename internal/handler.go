package internal

import "fmt"

// Handler declares routes on a registrar.
//
// Example:
//
//	type PostsHandler struct {
//	    posts *db.Model
//	}
//
//	func (h *PostsHandler) Routes(r zenith.Registrar) {
//	    r.GET("/posts", zenith.Inline(h.list))
//	    r.GET("/posts/{id}", zenith.ControllerRef("PostController", "show"))
//	}
type Handler interface {
	Routes(r Registrar)
}

// InlineFunc is a closure handler. Path parameters are passed positionally
// in the order they appear in the route pattern.
type InlineFunc func(res *Response, params ...string) error

// HandlerRef identifies the handler of a route: an inline closure or a
// controller action looked up in the Registry.
type HandlerRef interface {
	fmt.Stringer
	handlerRef()
}

type inlineRef struct {
	fn InlineFunc
}

func (inlineRef) handlerRef() {}

func (inlineRef) String() string { return "inline" }

type controllerRef struct {
	controller string
	action     string
}

func (controllerRef) handlerRef() {}

func (c controllerRef) String() string { return c.controller + "@" + c.action }

// Inline wraps a closure as a route handler.
func Inline(fn InlineFunc) HandlerRef {
	if fn == nil {
		panic("zenith: nil inline handler")
	}
	return inlineRef{fn: fn}
}

// ControllerRef references an action of a registered controller.
func ControllerRef(controller, action string) HandlerRef {
	return controllerRef{controller: controller, action: action}
}
