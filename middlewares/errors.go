package middlewares

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCSRFToken is the cause attached to CSRF rejections.
var ErrInvalidCSRFToken = errors.New("middlewares: invalid CSRF token")

// PanicError represents a recovered panic.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError represents a request that outlived its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// IsPanicError returns true if err is or wraps a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError returns true if err is or wraps a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

// AsPanicError extracts the PanicError from err if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsTimeoutError extracts the TimeoutError from err if present.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
