package notification

import "context"

// Store defines the interface for durable persistence of Notification
// records. Save is an atomic upsert keyed by ID and returns the persisted
// form; GetByID returns (nil, nil) when no record exists — "not found" is
// not a fault. Delete is idempotent. Implementations wrap technical
// failures with context; they never mutate notification semantics.
type Store interface {
	Save(ctx context.Context, n Notification) (Notification, error)
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByUserID(ctx context.Context, userID string) ([]Notification, error)
	ListByStatus(ctx context.Context, status Status) ([]Notification, error)
	ListPending(ctx context.Context) ([]Notification, error)
	Delete(ctx context.Context, id string) error
}
