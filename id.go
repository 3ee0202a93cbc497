package beacon

import "github.com/abakedjoetato/beacon/id"

// Subscription identifies a single handler registration. Go function values
// are not comparable, so removal is by subscription handle rather than by
// handler value; registering the same function twice yields two distinct
// subscriptions.
type Subscription = id.SubscriptionID

// DispatchID identifies one Dispatch call. Every handler invoked by that
// call sees the same DispatchID on its Event.
type DispatchID = id.DispatchID
