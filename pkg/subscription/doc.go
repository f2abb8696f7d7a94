// Package subscription manages per-user subscription records and their
// usage quotas: starting trials, upgrading tiers, checking feature access
// against plan limits, incrementing usage counters, and resetting the
// monthly counters at each calendar month boundary.
//
// The authoritative state lives behind the Store interface, with
// in-memory, MongoDB, and PostgreSQL implementations. Counter updates go
// through the store's IncrementUsage, which is atomic in every backend,
// so concurrent increments for the same user are never lost. An optional
// Redis mirror keeps a denormalized snapshot of the monthly counters for
// cheap dashboard reads; it is never consulted for admission decisions.
//
// Access checks are fail-closed: a missing record denies everything, and
// a store failure denies rather than guessing. CheckFeatureAccess is a
// pure function over a record so it can also be applied to snapshots
// already in hand.
//
// Basic usage:
//
//	svc := subscription.NewService(store, catalog)
//	sub, err := svc.StartTrial(ctx, userID, plan.TierGold)
//
//	access, err := svc.CheckAccess(ctx, userID, plan.FeatureLeads)
//	if err == nil && access.CanUse {
//		_, err = svc.IncrementUsage(ctx, userID, plan.FeatureLeads, 1)
//	}
package subscription
