package middleware

import (
	"context"

	"github.com/abakedjoetato/beacon"
)

// Chain composes middleware into a single beacon.Middleware. The first
// middleware in the slice is the outermost wrapper. An empty chain is a
// pass-through.
func Chain(mws ...beacon.Middleware) beacon.Middleware {
	return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			inner := h
			h = func(ctx context.Context, e beacon.Event) (any, error) {
				return mw(ctx, e, inner)
			}
		}
		return h(ctx, e)
	}
}
