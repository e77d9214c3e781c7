package internal

import (
	"fmt"
)

// invocation runs a resolved handler.
type invocation func() error

// resolver turns a HandlerRef plus path values into an invocation.
type resolver struct {
	registry *Registry
}

// resolve builds the invocation for ref. Inline handlers get the path
// values positionally. Controller actions get their declared parameters
// filled in a single left-to-right pass.
func (rs resolver) resolve(ref HandlerRef, params []string, req *Request, res *Response) (invocation, error) {
	switch h := ref.(type) {
	case inlineRef:
		return func() error { return h.fn(res, params...) }, nil
	case controllerRef:
		action, err := rs.action(h)
		if err != nil {
			return nil, err
		}
		args, err := bindArgs(h, action, params, req, res)
		if err != nil {
			return nil, err
		}
		return func() error { return action.Invoke(args) }, nil
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("has unsupported handler reference %T", ref)}
	}
}

// action looks up the controller action behind ref.
func (rs resolver) action(ref controllerRef) (Action, error) {
	c, err := rs.registry.Controller(ref.controller)
	if err != nil {
		return Action{}, err
	}
	action, ok := c.Actions()[ref.action]
	if !ok || action.Invoke == nil {
		return Action{}, &ConfigurationError{
			Controller: ref.controller,
			Action:     ref.action,
			Reason:     "does not exist",
		}
	}
	return action, nil
}

// bindArgs fills action's parameters. Path values are consumed in pattern
// order no matter where injected parameters sit in the list.
func bindArgs(ref controllerRef, action Action, params []string, req *Request, res *Response) (Args, error) {
	args := make(Args, len(action.Params))
	next := 0
	for i, p := range action.Params {
		switch p.Kind {
		case KindRequest:
			args[i] = req
		case KindResponse:
			args[i] = res
		case KindPath:
			if next >= len(params) {
				return nil, &ConfigurationError{
					Controller: ref.controller,
					Action:     ref.action,
					Reason:     fmt.Sprintf("declares path parameter %q but the route supplies only %d", p.Name, len(params)),
				}
			}
			args[i] = params[next]
			next++
		default:
			return nil, &UnresolvedDependencyError{
				Controller: ref.controller,
				Action:     ref.action,
				Param:      p.Name,
				Type:       p.Type,
			}
		}
	}
	return args, nil
}

// check validates ref against a route with pathParams placeholders without
// invoking anything.
func (rs resolver) check(ref HandlerRef, pathParams int) error {
	h, ok := ref.(controllerRef)
	if !ok {
		return nil
	}
	action, err := rs.action(h)
	if err != nil {
		return err
	}
	_, err = bindArgs(h, action, make([]string, pathParams), nil, nil)
	return err
}
