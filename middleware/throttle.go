package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/abakedjoetato/beacon"
)

// Throttle returns middleware that rate-limits handler invocations through
// a shared rate.Limiter. Invocations over the limit wait for a token; if the
// context is cancelled or its deadline passes while waiting, the invocation
// becomes a failure outcome for that handler. Combine with Timeout (outside
// Throttle in the chain) to bound the wait.
func Throttle(limiter *rate.Limiter) beacon.Middleware {
	return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("throttle: event %q: %w", e.Name, err)
		}
		return next(ctx, e)
	}
}
