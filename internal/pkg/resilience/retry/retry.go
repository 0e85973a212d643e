// Package retry provides a configurable retry mechanism for operations that may fail temporarily.
// It wraps the retry-go package from Avast and exposes a simple interface with functional
// options for customizing retry behavior.
//
// The history store itself never retries; callers such as the sync applier or the
// storage bootstrap use this package to decide their own policy.
//
// Basic usage:
//
//	r := retry.New(retry.WithAttempts(5), retry.WithRetryIf(isTransient))
//	err := r.Execute(ctx, func() error {
//	    return svc.BatchReconcile(ctx, reqs)
//	})
package retry

import (
	"context"
	"time"

	"github.com/gabapcia/localhistory/internal/pkg/logger"

	retry "github.com/avast/retry-go/v4"
)

// Retry defines the interface for retry operations.
type Retry interface {
	// Execute runs the given function with configured retry logic.
	//
	// The context allows for cancellation and timeout control. If the context
	// is canceled, the operation stops retrying and the context error is returned.
	//
	// Execute returns nil if the operation succeeds within the configured
	// number of attempts, or an error if all attempts fail or the context is done.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint             // maximum number of attempts
	delay       time.Duration    // base delay between attempts
	maxDelay    time.Duration    // maximum delay between attempts
	lastErrOnly bool             // whether to return only the last error
	retryIf     func(error) bool // decides whether an error is worth another attempt
	name        string           // operation name used in retry logs
}

// Option defines a functional option for configuring the retry mechanism.
type Option func(*config)

// retrier implements the Retry interface using the retry-go package.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New creates and returns a Retry implementation configured with
// the provided options.
//
// Default configuration:
//   - attempts:    3 (1 initial attempt + 2 retries)
//   - delay:       1 second, exponential backoff
//   - maxDelay:    5 seconds
//   - lastErrOnly: true
//   - retryIf:     every error is retried
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
		retryIf:     func(error) bool { return true },
		name:        "operation",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.RetryIf(r.cfg.retryIf),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn(ctx, "retrying after failure",
				"retry.operation", r.cfg.name,
				"retry.attempt", n+1,
				"error", err,
			)
		}),
		retry.Context(ctx),
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts (including the initial attempt).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between retry attempts.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly sets whether to return only the last error.
// When false, all errors from all attempts are combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithRetryIf limits retries to errors for which fn returns true. Any other
// error stops the loop immediately and is returned as is.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		c.retryIf = fn
	}
}

// WithName labels the operation in retry logs.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
