package beacon

import (
	"log/slog"
	"time"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets the structured logger used for register, unregister, and
// dispatch diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		d.logger = logger
		return nil
	}
}

// WithConfig replaces the full configuration.
func WithConfig(cfg Config) Option {
	return func(d *Dispatcher) error {
		d.config = cfg
		return nil
	}
}

// WithParallelLimit sets the concurrency bound for DispatchParallel.
// Zero or negative means unbounded.
func WithParallelLimit(n int) Option {
	return func(d *Dispatcher) error {
		d.config.ParallelLimit = n
		return nil
	}
}

// WithHandlerTimeout sets a per-handler deadline applied to every
// invocation.
func WithHandlerTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) error {
		d.config.HandlerTimeout = timeout
		return nil
	}
}

// WithMiddleware installs middleware around every handler invocation.
// Middleware run in the order given: the first is the outermost wrapper.
// Repeated calls append to the chain.
func WithMiddleware(mws ...Middleware) Option {
	return func(d *Dispatcher) error {
		d.middleware = append(d.middleware, mws...)
		return nil
	}
}
