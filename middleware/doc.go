// Package middleware provides composable middleware for handler invocation
// on a beacon Dispatcher.
//
// A [beacon.Middleware] is a function that wraps a handler call. Middleware
// are composed into a chain with [Chain] or installed directly with
// beacon.WithMiddleware, and apply to every handler a dispatch invokes. They
// are applied first-to-outermost: the first middleware in the slice wraps
// all the others.
//
//	bus, _ := beacon.New(beacon.WithMiddleware(
//	    middleware.Logging(logger), // logging → timeout → handler
//	    middleware.Timeout(5*time.Second),
//	))
//
// # Built-in Middleware
//
//   - [Logging] — logs event name, dispatch id, duration, and outcome
//   - [Timeout] — cancels the handler context after a configured duration
//   - [Tracing] — wraps each invocation in an OpenTelemetry span
//   - [Metrics] — records per-invocation duration and outcome counters
//   - [Throttle] — rate-limits invocations with a shared rate.Limiter
//
// Panic recovery is not middleware: the Dispatcher always converts handler
// panics into failure outcomes, with or without a chain installed.
//
// # Writing Custom Middleware
//
//	func MyMiddleware() beacon.Middleware {
//	    return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
//	        // pre-processing
//	        v, err := next(ctx, e)
//	        // post-processing
//	        return v, err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting (e.g., circuit breaker, deduplication).
package middleware
