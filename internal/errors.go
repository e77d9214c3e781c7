package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors.
var (
	ErrInvalidPattern     = errors.New("zenith: invalid route pattern")
	ErrResponseCommitted  = errors.New("zenith: response already written")
	ErrUnsupportedBody    = errors.New("zenith: unsupported request body")
	ErrRoutesFile         = errors.New("zenith: invalid routes file")
	ErrRegistrationClosed = errors.New("zenith: route registered after dispatch started")
)

// Outcome is the result of dispatching one request.
type Outcome int

const (
	// Unhandled means no route matched. The caller should respond with 404.
	Unhandled Outcome = iota
	// Rejected means a route matched but a middleware declined the request.
	// The rejecting middleware owns the response.
	Rejected
	// Handled means the route's handler ran.
	Handled
)

func (o Outcome) String() string {
	switch o {
	case Unhandled:
		return "unhandled"
	case Rejected:
		return "rejected"
	case Handled:
		return "handled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ConfigurationError reports a route that references a controller, action
// or middleware that does not exist, or an action whose declared path
// parameters cannot be satisfied by its route.
type ConfigurationError struct {
	Controller string
	Action     string
	Middleware string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("zenith: configuration error: ")
	switch {
	case e.Middleware != "":
		fmt.Fprintf(&b, "middleware %q", e.Middleware)
	case e.Action != "":
		fmt.Fprintf(&b, "action %q on controller %q", e.Action, e.Controller)
	default:
		fmt.Fprintf(&b, "controller %q", e.Controller)
	}
	b.WriteString(" ")
	b.WriteString(e.Reason)
	return b.String()
}

// UnresolvedDependencyError reports an action parameter whose type is
// neither the request nor the response capability.
type UnresolvedDependencyError struct {
	Controller string
	Action     string
	Param      string
	Type       string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("zenith: cannot resolve parameter %q of type %s for %s.%s: only request and response can be injected",
		e.Param, e.Type, e.Controller, e.Action)
}

// IsConfigurationError returns true if err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// AsConfigurationError extracts the ConfigurationError from err if present.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsUnresolvedDependencyError returns true if err is or wraps an UnresolvedDependencyError.
func IsUnresolvedDependencyError(err error) bool {
	var de *UnresolvedDependencyError
	return errors.As(err, &de)
}

// AsUnresolvedDependencyError extracts the UnresolvedDependencyError from err if present.
func AsUnresolvedDependencyError(err error) (*UnresolvedDependencyError, bool) {
	var de *UnresolvedDependencyError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// isResolutionError reports whether err was raised while resolving a route
// rather than by the handler itself.
func isResolutionError(err error) bool {
	return IsConfigurationError(err) || IsUnresolvedDependencyError(err)
}

// HTTPError represents an HTTP error with all data needed for rendering.
// Handlers return it to pick the status code of the error response.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// NewHTTPError creates a new HTTPError with the given status code and message.
// An empty message defaults to the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = "Unauthorized access"
	}
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = "Resource not found"
	}
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError returns true if err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError extracts the HTTPError from err if present.
// Returns nil if err does not wrap an HTTPError.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}
