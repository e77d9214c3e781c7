package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zenithgo/zenith/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc is the standard health check function signature.
// db.Healthcheck and redis.Healthcheck return one.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Response represents a health check response.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Healthy reports whether every check passed.
func (r *Response) Healthy() bool {
	return r.Status == StatusHealthy
}

// Check represents the status of a single health check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// config holds health check configuration.
type config struct {
	logger  *slog.Logger
	timeout time.Duration
	limit   int
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout sets the timeout shared by all checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger failed checks are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConcurrency caps how many checks run at once. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.limit = n
		}
	}
}

// newConfig creates a config with defaults, modified by options.
func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently and aggregates their results.
// Every check runs to completion; one failure does not cancel the others.
// The returned error wraps ErrCheckFailed (and ErrCheckTimeout when the
// deadline was hit) if any check failed.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) (*Response, error) {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		g       errgroup.Group
		mu      sync.Mutex
		results = make(map[string]Check, len(checks))
	)
	if cfg.limit > 0 {
		g.SetLimit(cfg.limit)
	}

	for name, check := range checks {
		g.Go(func() error {
			result := Check{Status: StatusHealthy}
			err := check(ctx)
			if err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()

			if err != nil {
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return errors.Join(ErrCheckFailed, ErrCheckTimeout, err)
				}
				return errors.Join(ErrCheckFailed, err)
			}
			return nil
		})
	}

	err := g.Wait()

	status := StatusHealthy
	if err != nil {
		status = StatusUnhealthy
	}

	return &Response{
		Status: status,
		Checks: results,
	}, err
}
