package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// Store defines subscription persistence. Each user has exactly one
// record, so UserID serves as the primary key.
//
// IncrementUsage must be an atomic field increment executed by the
// storage engine itself, not a load-then-save round trip: two concurrent
// increments for the same user must both land (no lost updates).
//
// Implementations wrap connectivity failures in ErrStoreUnavailable and
// fail fast rather than blocking past the context deadline.
type Store interface {
	// Get retrieves a subscription by user ID.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, userID uuid.UUID) (*Subscription, error)

	// Create inserts a new record. Returns ErrAlreadyExists if the user
	// already has one.
	Create(ctx context.Context, sub *Subscription) error

	// Update replaces the record's plan fields (plan, limits, status,
	// dates, price). Usage counters move only through IncrementUsage
	// and ResetMonthlyUsage.
	Update(ctx context.Context, sub *Subscription) error

	// IncrementUsage atomically adds delta to the feature's counter and
	// returns the new value. Returns ErrNotMetered for features without
	// a counter and ErrNotFound for missing records.
	IncrementUsage(ctx context.Context, userID uuid.UUID, f plan.Feature, delta int64) (int64, error)

	// ResetMonthlyUsage zeroes the monthly counters (AI, scraping) on
	// every record in one bulk update and returns the number of records
	// touched. Cumulative counters are left untouched. Idempotent.
	ResetMonthlyUsage(ctx context.Context) (int64, error)
}
