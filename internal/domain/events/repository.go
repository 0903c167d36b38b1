package events

import "context"

// Repository persists the full event sequence as one document. Every mutation
// in the Service is a read-modify-write of the whole sequence; isolating that
// behind this interface lets a transactional or per-record backend replace the
// flat file without touching call sites.
type Repository interface {
	// Load returns the stored sequence in insertion order. Implementations
	// swallow read and parse failures: they log and return an empty
	// sequence rather than erroring, trading correctness signaling for
	// availability.
	Load(ctx context.Context) ([]Event, error)

	// Save rewrites the entire sequence. There is no locking between
	// concurrent writers; the last write wins.
	Save(ctx context.Context, events []Event) error
}
