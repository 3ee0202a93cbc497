package beacon

import "errors"

// Outcome is the result of invoking one handler during a dispatch: either a
// success carrying the handler's return value, or a failure carrying the
// error (handler errors, panics converted to errors, deadline misses). A
// failing handler is reported here, never escalated as a failure of Dispatch
// itself.
type Outcome struct {
	// Event is the event name the handler was invoked under.
	Event string

	// Sub identifies the registration whose handler produced this outcome.
	Sub Subscription

	// Value is the handler's return value. Nil on failure.
	Value any

	// Err is non-nil when the handler failed.
	Err error
}

// Failed reports whether this outcome is a failure.
func (o Outcome) Failed() bool { return o.Err != nil }

// Outcomes is the ordered result of one dispatch: exactly one entry per
// handler invoked, in registration order at the time the dispatch snapshot
// was taken.
type Outcomes []Outcome

// Values returns every successful outcome's value, in order. Failed
// outcomes are skipped.
func (os Outcomes) Values() []any {
	var vals []any
	for _, o := range os {
		if !o.Failed() {
			vals = append(vals, o.Value)
		}
	}
	return vals
}

// Errs returns every failure, in order.
func (os Outcomes) Errs() []error {
	var errs []error
	for _, o := range os {
		if o.Failed() {
			errs = append(errs, o.Err)
		}
	}
	return errs
}

// Err joins all failures into a single error, or nil if every handler
// succeeded. Useful for callers that surface dispatch failures as one
// aggregate.
func (os Outcomes) Err() error {
	return errors.Join(os.Errs()...)
}
