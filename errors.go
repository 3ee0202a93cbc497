package beacon

import "errors"

var (
	// Usage errors.
	ErrEmptyEventName = errors.New("beacon: empty event name")
	ErrNilHandler     = errors.New("beacon: nil handler")

	// ErrPayloadType is wrapped into a failure outcome when a Typed handler
	// receives a payload of the wrong dynamic type.
	ErrPayloadType = errors.New("beacon: payload type mismatch")
)
