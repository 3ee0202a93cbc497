package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/abakedjoetato/beacon"
)

// Logging returns middleware that logs each handler invocation.
func Logging(logger *slog.Logger) beacon.Middleware {
	return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
		logger.Debug("handler started",
			slog.String("event", e.Name),
			slog.String("dispatch_id", e.ID.String()),
		)

		start := time.Now()
		v, err := next(ctx, e)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("handler failed",
				slog.String("event", e.Name),
				slog.String("dispatch_id", e.ID.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("handler completed",
				slog.String("event", e.Name),
				slog.String("dispatch_id", e.ID.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return v, err
	}
}
