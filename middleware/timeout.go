package middleware

import (
	"context"
	"time"

	"github.com/abakedjoetato/beacon"
)

// Timeout returns middleware that enforces a per-handler execution deadline.
// When the deadline is exceeded the context is cancelled; a handler that
// honors its context returns context.DeadlineExceeded, which becomes a
// failure outcome for that handler without blocking the rest of the
// dispatch. A non-positive duration is a pass-through.
func Timeout(d time.Duration) beacon.Middleware {
	return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx, e)
	}
}
