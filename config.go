package beacon

import "time"

// Config holds configuration for the Dispatcher.
type Config struct {
	// ParallelLimit is the maximum number of handlers DispatchParallel
	// runs concurrently. Zero or negative means no limit.
	ParallelLimit int

	// HandlerTimeout is a per-handler deadline applied to every
	// invocation. Zero means no deadline; a handler that overruns it
	// observes context cancellation and is reported as a failure outcome.
	HandlerTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ParallelLimit:  8,
		HandlerTimeout: 0,
	}
}
