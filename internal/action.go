package internal

import (
	"fmt"
	"strconv"
)

// ParamKind classifies an action parameter.
type ParamKind int

const (
	// KindPath consumes the next path parameter.
	KindPath ParamKind = iota
	// KindRequest receives the live *Request.
	KindRequest
	// KindResponse receives the live *Response.
	KindResponse
	// KindDependency is any other typed dependency. It cannot be injected.
	KindDependency
)

// Param describes one formal parameter of an Action.
type Param struct {
	Name string
	Type string
	Kind ParamKind
}

// PathParam declares a parameter filled from the route path.
func PathParam(name string) Param {
	return Param{Kind: KindPath, Name: name, Type: "string"}
}

// RequestParam declares a parameter that receives the *Request.
func RequestParam() Param {
	return Param{Kind: KindRequest, Name: "request", Type: "*Request"}
}

// ResponseParam declares a parameter that receives the *Response.
func ResponseParam() Param {
	return Param{Kind: KindResponse, Name: "response", Type: "*Response"}
}

// DependencyParam declares a parameter of some other type.
// Routing to an action with such a parameter fails with UnresolvedDependencyError.
func DependencyParam(name, typeName string) Param {
	return Param{Kind: KindDependency, Name: name, Type: typeName}
}

// Args holds resolved arguments in declaration order.
type Args []any

// Request returns argument i as *Request.
func (a Args) Request(i int) *Request {
	r, _ := a.at(i).(*Request)
	return r
}

// Response returns argument i as *Response.
func (a Args) Response(i int) *Response {
	r, _ := a.at(i).(*Response)
	return r
}

// String returns argument i as a path value.
func (a Args) String(i int) string {
	s, _ := a.at(i).(string)
	return s
}

// Int parses argument i as an integer path value.
func (a Args) Int(i int) (int, error) {
	s, ok := a.at(i).(string)
	if !ok {
		return 0, fmt.Errorf("zenith: argument %d is not a path value", i)
	}
	return strconv.Atoi(s)
}

func (a Args) at(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Action is a controller method descriptor declared at registration time.
type Action struct {
	Invoke func(args Args) error
	Params []Param
}

// NewAction builds an Action from its parameter list and body.
//
// Example:
//
//	zenith.NewAction(func(a zenith.Args) error {
//	    return a.Response(2).JSON(200, map[string]string{"id": a.String(1)})
//	}, zenith.RequestParam(), zenith.PathParam("id"), zenith.ResponseParam())
func NewAction(fn func(args Args) error, params ...Param) Action {
	return Action{Invoke: fn, Params: params}
}

// Controller exposes named actions.
type Controller interface {
	Actions() map[string]Action
}

// ControllerFunc adapts a plain action map to Controller.
type ControllerFunc map[string]Action

// Actions implements Controller.
func (c ControllerFunc) Actions() map[string]Action {
	return c
}

// ControllerFactory creates a fresh controller instance per dispatch.
type ControllerFactory func() Controller

// MiddlewareFactory creates a middleware instance per dispatch.
type MiddlewareFactory func() Middleware
