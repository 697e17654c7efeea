package notifier

import "context"

// Event is the outbound payload for one qualifying deal. It is built by
// the worker and never persisted.
type Event struct {
	Model          string
	Title          string
	Price          int
	ReferencePrice int
	// Delta is the saving against the reference price; 0 means the
	// listing sits exactly at the reference.
	Delta  int
	Source string
	Link   string
}

// Notifier represents a service for delivering deal notifications
type Notifier interface {
	// Send delivers one event. It is attempted exactly once per new
	// qualifying deal, before the deal is recorded as seen; a failure
	// leaves the deal unrecorded so the next pass retries it.
	Send(ctx context.Context, event Event) error
}
