package beacon

import (
	"time"

	"github.com/abakedjoetato/beacon/id"
)

// Event is what every handler receives: the name it was dispatched under,
// the producer's payload, and the identity and wall-clock time of the
// dispatch. All handlers invoked by one Dispatch call see the same Event.
type Event struct {
	ID      DispatchID `json:"id"`
	Name    string     `json:"name"`
	Payload any        `json:"payload,omitempty"`
	At      time.Time  `json:"at"`
}

func newEvent(name string, payload any) Event {
	return Event{
		ID:      id.NewDispatchID(),
		Name:    name,
		Payload: payload,
		At:      time.Now().UTC(),
	}
}
