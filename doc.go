// Package beacon provides a process-local event dispatch bus: named events,
// ordered fault-isolated fan-out to subscribers, and per-handler outcome
// aggregation.
//
// Beacon is designed as a library, not a service. Construct one Dispatcher at
// your composition root, pass it to every component that publishes or
// subscribes, and tear it down with Clear during shutdown. There is no
// package-level singleton.
//
// # Quick Start
//
//	bus, err := beacon.New(beacon.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	sub, _ := bus.Subscribe("player.joined", beacon.Typed(
//	    func(ctx context.Context, name string) (string, error) {
//	        return "welcome " + name, nil
//	    },
//	))
//
//	outcomes := bus.Dispatch(ctx, "player.joined", "fox")
//	for _, o := range outcomes {
//	    if o.Failed() {
//	        logger.Warn("handler failed", "event", o.Event, "error", o.Err)
//	    }
//	}
//
//	bus.Unsubscribe("player.joined", sub)
//
// # Semantics
//
// Handlers registered under one event name are invoked in registration order,
// each receiving the same Event. A handler that returns an error or panics
// produces a failure Outcome; it never aborts the dispatch or hides the
// outcomes of later handlers. Dispatching a name with no subscribers returns
// an empty outcome slice.
//
// Dispatch snapshots the handler sequence before invoking anything, so
// subscribing or unsubscribing concurrently never affects an in-flight
// dispatch. DispatchParallel fans handlers out on goroutines for callers that
// opt out of sequential ordering of side effects; outcome order still matches
// registration order.
//
// Subscriptions and dispatches are identified by TypeID — type-prefixed,
// K-sortable, UUIDv7-based identifiers ("sub_…", "disp_…").
package beacon
