package dedup

import (
	"fmt"
)

// KeyPolicy selects how the dedup identity of a qualifying deal is
// derived. One policy is fixed per process; mixing policies across
// sources would break the same-event-same-key invariant.
type KeyPolicy string

const (
	// PolicyModel keys on (source, model): one notification per model
	// per source, ever. A later lower price is suppressed.
	PolicyModel KeyPolicy = "model"
	// PolicyModelPrice keys on (source, model, price): a price drop
	// re-triggers, a price repeat does not.
	PolicyModelPrice KeyPolicy = "model-price"
)

// Key derives the dedup key for a qualifying deal
func Key(policy KeyPolicy, source, model string, price int) string {
	if policy == PolicyModelPrice {
		return fmt.Sprintf("%s|%s|%d", source, model, price)
	}
	return source + "|" + model
}

// Store is the durable record of deals already notified
type Store interface {
	// Seen reports whether the key has already been notified
	Seen(key string) (bool, error)

	// Record marks a key as notified; recording a present key is a no-op
	Record(key string) error

	// Flush durably persists the current key set
	Flush() error

	// Close flushes and releases the store
	Close() error
}
