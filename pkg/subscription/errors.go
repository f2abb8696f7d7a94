package subscription

import "errors"

// Domain errors for subscription operations.
var (
	// ErrNotFound is returned when a user has no subscription record.
	// Access decisions treat this as a hard deny, never as free tier.
	ErrNotFound = errors.New("subscription.not_found")

	// ErrAlreadyExists is returned when creating a second record for a user.
	// Exactly one subscription exists per user at any time.
	ErrAlreadyExists = errors.New("subscription.already_exists")

	// ErrLimitExceeded is returned by guarded increments when the feature
	// counter is at or over its ceiling.
	ErrLimitExceeded = errors.New("subscription.limit_exceeded")

	// ErrNotMetered is returned when a counter operation names a feature
	// without a usage counter.
	ErrNotMetered = errors.New("subscription.feature_not_metered")

	// ErrDowngradeNotPossible is returned when current usage does not fit
	// the target plan's ceilings.
	ErrDowngradeNotPossible = errors.New("subscription.downgrade_not_possible")

	// ErrStoreUnavailable wraps I/O failures from the subscription store.
	// It is the only retryable error in the taxonomy; callers must treat
	// it as a deny with a distinct service-error status, never as an allow.
	ErrStoreUnavailable = errors.New("subscription.store_unavailable")
)
