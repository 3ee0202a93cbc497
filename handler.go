package beacon

import (
	"context"
	"fmt"
)

// Handler is a unit of behavior subscribed under one event name. It receives
// the dispatched Event and returns a result value or an error. The
// Dispatcher never inspects handlers; it only invokes them.
//
// The payload is type-erased on the Event. Call sites that fix a payload and
// result type per event name should wrap their functions with Typed.
type Handler func(ctx context.Context, e Event) (any, error)

// Middleware wraps a handler invocation. It may act before and after calling
// next, replace the context, or short-circuit by not calling next at all.
// Middleware installed via WithMiddleware applies to every handler the
// Dispatcher invokes.
type Middleware func(ctx context.Context, e Event, next Handler) (any, error)

// Typed adapts a function with concrete payload and result types into a
// Handler. A dispatched payload whose dynamic type is not P produces a
// failure outcome wrapping ErrPayloadType; the wrapped function is not
// called.
func Typed[P, R any](fn func(ctx context.Context, payload P) (R, error)) Handler {
	return func(ctx context.Context, e Event) (any, error) {
		p, ok := e.Payload.(P)
		if !ok {
			var want P
			return nil, fmt.Errorf("%w: event %q: got %T, want %T", ErrPayloadType, e.Name, e.Payload, want)
		}
		return fn(ctx, p)
	}
}
