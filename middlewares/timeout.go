package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zenithgo/zenith/internal"
)

// DefaultTimeout is used when Timeout receives a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that puts a deadline on the request context.
// Handlers observe it through req.Context(). When the deadline passes before
// anything was written, the request fails with 503 wrapping a *TimeoutError.
// The chain runs synchronously; handlers must honour ctx.Done() to stop early.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return internal.MiddlewareFunc(func(req *internal.Request, res *internal.Response, next internal.Next) bool {
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()
		req.SetContext(ctx)

		ok := next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !res.Written() {
			req.Abort(internal.NewHTTPError(http.StatusServiceUnavailable, "Request timeout",
				internal.WithError(&TimeoutError{Duration: timeout})))
			return false
		}
		return ok
	})
}
