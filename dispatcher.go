package beacon

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abakedjoetato/beacon/id"
)

// entry is one row of the subscription table: a handler plus the handle
// that identifies this particular registration.
type entry struct {
	sub Subscription
	h   Handler
}

// Dispatcher owns the subscription table and performs fault-isolated,
// outcome-aggregating dispatch. It is safe for concurrent use: table
// mutation is serialized, and every dispatch iterates over a snapshot taken
// before the first handler runs.
//
// Create one with New and share it; the Dispatcher holds no background
// goroutines and needs no Start/Stop lifecycle. Clear releases all handler
// references at teardown.
type Dispatcher struct {
	config     Config
	logger     *slog.Logger
	middleware []Middleware
	chain      Middleware

	mu    sync.RWMutex
	table map[string][]entry
	total int
}

// New creates a new Dispatcher with the given options.
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		config: DefaultConfig(),
		logger: slog.Default(),
		table:  make(map[string][]entry),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.chain = composeMiddleware(d.middleware)
	return d, nil
}

// Subscribe appends a handler to the ordered sequence for the given event
// name, creating the sequence if absent, and returns the handle identifying
// this registration. Subscribing the same function twice creates two
// independent registrations; each is invoked per dispatch.
func (d *Dispatcher) Subscribe(event string, h Handler) (Subscription, error) {
	if event == "" {
		return id.Nil, ErrEmptyEventName
	}
	if h == nil {
		return id.Nil, ErrNilHandler
	}

	sub := id.NewSubscriptionID()

	d.mu.Lock()
	d.table[event] = append(d.table[event], entry{sub: sub, h: h})
	d.total++
	d.mu.Unlock()

	d.logger.Debug("handler subscribed",
		slog.String("event", event),
		slog.String("subscription", sub.String()),
	)
	return sub, nil
}

// Unsubscribe removes the registration identified by sub from the given
// event name. An unknown event name or handle is a no-op, so it is safe to
// call defensively during teardown. Returns whether a registration was
// removed.
//
// Removal never affects a dispatch already iterating its snapshot; it
// applies to every dispatch that starts afterward.
func (d *Dispatcher) Unsubscribe(event string, sub Subscription) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries := d.table[event]
	for i := range entries {
		if entries[i].sub != sub {
			continue
		}
		entries = slices.Delete(entries, i, i+1)
		if len(entries) == 0 {
			// Policy: a name whose last handler is removed is deleted
			// from the table, so EventNames never reports empty names.
			delete(d.table, event)
		} else {
			d.table[event] = entries
		}
		d.total--

		d.logger.Debug("handler unsubscribed",
			slog.String("event", event),
			slog.String("subscription", sub.String()),
		)
		return true
	}
	return false
}

// Dispatch invokes every handler registered under the given event name, in
// registration order, with the same Event carrying payload. It returns one
// Outcome per handler invoked, in that same order.
//
// Handler failures are contained: an error or panic becomes that handler's
// failure outcome and the remaining handlers still run. Dispatch itself
// never fails; an event name with no subscribers yields an empty slice.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, payload any) Outcomes {
	snap := d.snapshot(event)
	if len(snap) == 0 {
		d.logger.Debug("no handlers registered", slog.String("event", event))
		return nil
	}

	e := newEvent(event, payload)
	outcomes := make(Outcomes, len(snap))
	for i, ent := range snap {
		outcomes[i] = d.invoke(ctx, e, ent)
	}
	return outcomes
}

// DispatchParallel is Dispatch with concurrent fan-out: handlers run on
// goroutines bounded by Config.ParallelLimit instead of sequentially. Use it
// only when handler side effects do not depend on registration order.
// Outcome order still matches registration order, not completion order.
func (d *Dispatcher) DispatchParallel(ctx context.Context, event string, payload any) Outcomes {
	snap := d.snapshot(event)
	if len(snap) == 0 {
		d.logger.Debug("no handlers registered", slog.String("event", event))
		return nil
	}

	e := newEvent(event, payload)
	outcomes := make(Outcomes, len(snap))

	var g errgroup.Group
	if d.config.ParallelLimit > 0 {
		g.SetLimit(d.config.ParallelLimit)
	}
	for i, ent := range snap {
		g.Go(func() error {
			outcomes[i] = d.invoke(ctx, e, ent)
			return nil
		})
	}
	// Goroutines never return errors; failures are data in the outcomes.
	_ = g.Wait()

	return outcomes
}

// invoke runs one handler through the middleware chain, converting panics
// and errors into a failure outcome.
func (d *Dispatcher) invoke(ctx context.Context, e Event, ent entry) Outcome {
	val, err := d.call(ctx, e, ent)
	if err != nil {
		d.logger.Error("event handler failed",
			slog.String("event", e.Name),
			slog.String("dispatch_id", e.ID.String()),
			slog.String("subscription", ent.sub.String()),
			slog.String("error", err.Error()),
		)
	}
	return Outcome{Event: e.Name, Sub: ent.sub, Value: val, Err: err}
}

func (d *Dispatcher) call(ctx context.Context, e Event, ent entry) (val any, err error) {
	if d.config.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.HandlerTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked",
				slog.String("event", e.Name),
				slog.String("subscription", ent.sub.String()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			val = nil
			err = fmt.Errorf("panic in handler for %q: %v", e.Name, r)
		}
	}()

	if d.chain != nil {
		return d.chain(ctx, e, ent.h)
	}
	return ent.h(ctx, e)
}

// snapshot copies the handler sequence for an event name so in-flight
// dispatches are isolated from concurrent table mutation.
func (d *Dispatcher) snapshot(event string) []entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.table[event])
}

// HandlerCount returns the number of handlers currently registered under
// the given event name, or 0 if the name is unknown.
func (d *Dispatcher) HandlerCount(event string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.table[event])
}

// TotalHandlers returns the number of handlers registered across all event
// names.
func (d *Dispatcher) TotalHandlers() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.total
}

// EventNames returns the sorted event names that have at least one
// registered handler.
func (d *Dispatcher) EventNames() []string {
	d.mu.RLock()
	names := make([]string, 0, len(d.table))
	for name := range d.table {
		names = append(names, name)
	}
	d.mu.RUnlock()

	sort.Strings(names)
	return names
}

// ClearName removes every registration under one event name and returns the
// number removed. Unknown names return 0.
func (d *Dispatcher) ClearName(event string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := len(d.table[event])
	if removed > 0 {
		delete(d.table, event)
		d.total -= removed
		d.logger.Debug("event handlers cleared",
			slog.String("event", event),
			slog.Int("removed", removed),
		)
	}
	return removed
}

// Clear removes every registration for every event name, releasing all
// handler references. Used for full teardown or reset.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	removed := d.total
	d.table = make(map[string][]entry)
	d.total = 0
	d.mu.Unlock()

	d.logger.Debug("all event handlers cleared", slog.Int("removed", removed))
}

// composeMiddleware folds a middleware slice into a single Middleware.
// The first element becomes the outermost wrapper.
func composeMiddleware(mws []Middleware) Middleware {
	if len(mws) == 0 {
		return nil
	}
	return func(ctx context.Context, e Event, next Handler) (any, error) {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			inner := h
			h = func(ctx context.Context, e Event) (any, error) {
				return mw(ctx, e, inner)
			}
		}
		return h(ctx, e)
	}
}
