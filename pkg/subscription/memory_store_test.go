package subscription_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmkit/pkg/plan"
	"github.com/dmitrymomot/crmkit/pkg/subscription"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func(t *testing.T, store subscription.Store) uuid.UUID {
		t.Helper()
		userID := uuid.New()
		err := store.Create(ctx, &subscription.Subscription{
			UserID: userID,
			Plan:   plan.TierFree,
			Limits: plan.Limits{MaxLeads: 10, MaxCompetitors: 2, MaxAIRequests: 5, MaxScrapingRequests: 10},
			Status: subscription.StatusTrial,
		})
		require.NoError(t, err)
		return userID
	}

	t.Run("get unknown user", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		_, err := store.Get(ctx, uuid.New())
		require.ErrorIs(t, err, subscription.ErrNotFound)
	})

	t.Run("get returns an isolated copy", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		userID := seed(t, store)

		sub, err := store.Get(ctx, userID)
		require.NoError(t, err)
		sub.CurrentUsage.LeadsCount = 999

		fresh, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), fresh.CurrentUsage.LeadsCount)
	})

	t.Run("update preserves counters from a stale snapshot", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		userID := seed(t, store)

		// Snapshot taken before the increment.
		stale, err := store.Get(ctx, userID)
		require.NoError(t, err)

		_, err = store.IncrementUsage(ctx, userID, plan.FeatureLeads, 3)
		require.NoError(t, err)

		stale.Status = subscription.StatusActive
		require.NoError(t, store.Update(ctx, stale))

		fresh, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusActive, fresh.Status)
		assert.Equal(t, int64(3), fresh.CurrentUsage.LeadsCount, "increment must survive the update")
	})

	t.Run("update unknown user", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		err := store.Update(ctx, &subscription.Subscription{UserID: uuid.New()})
		require.ErrorIs(t, err, subscription.ErrNotFound)
	})

	t.Run("increment returns the new value", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		userID := seed(t, store)

		v, err := store.IncrementUsage(ctx, userID, plan.FeatureScraping, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)

		v, err = store.IncrementUsage(ctx, userID, plan.FeatureScraping, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	})

	t.Run("increment for unknown user", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		_, err := store.IncrementUsage(ctx, uuid.New(), plan.FeatureLeads, 1)
		require.ErrorIs(t, err, subscription.ErrNotFound)
	})

	t.Run("reset touches every record", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		a := seed(t, store)
		b := seed(t, store)

		for _, id := range []uuid.UUID{a, b} {
			_, err := store.IncrementUsage(ctx, id, plan.FeatureAI, 4)
			require.NoError(t, err)
		}

		n, err := store.ResetMonthlyUsage(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		for _, id := range []uuid.UUID{a, b} {
			sub, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, int64(0), sub.CurrentUsage.AIRequestsThisMonth)
		}
	})
}
