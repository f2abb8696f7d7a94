package plan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

func newCatalog(t *testing.T) *plan.Catalog {
	t.Helper()
	catalog, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(plan.DefaultPlans()))
	require.NoError(t, err)
	return catalog
}

func TestCatalogLookups(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	t.Run("limits for free tier", func(t *testing.T) {
		t.Parallel()
		limits, err := catalog.LimitsFor(plan.TierFree)
		require.NoError(t, err)
		assert.Equal(t, int64(10), limits.MaxLeads)
		assert.Equal(t, int64(2), limits.MaxCompetitors)
		assert.Equal(t, int64(5), limits.MaxAIRequests)
		assert.Equal(t, int64(10), limits.MaxScrapingRequests)
		assert.False(t, limits.HasAdvancedAnalytics)
		assert.False(t, limits.HasAPIAccess)
	})

	t.Run("gold tier has unlimited leads and competitors", func(t *testing.T) {
		t.Parallel()
		limits, err := catalog.LimitsFor(plan.TierGold)
		require.NoError(t, err)
		assert.Equal(t, plan.Unlimited, limits.MaxLeads)
		assert.Equal(t, plan.Unlimited, limits.MaxCompetitors)
		assert.Equal(t, int64(500), limits.MaxAIRequests)
		assert.True(t, limits.HasAPIAccess)
	})

	t.Run("price for each tier", func(t *testing.T) {
		t.Parallel()
		free, err := catalog.PriceFor(plan.TierFree)
		require.NoError(t, err)
		assert.Equal(t, int64(0), free.Amount)

		silver, err := catalog.PriceFor(plan.TierSilver)
		require.NoError(t, err)
		assert.Equal(t, int64(2900), silver.Amount)

		gold, err := catalog.PriceFor(plan.TierGold)
		require.NoError(t, err)
		assert.Equal(t, int64(9900), gold.Amount)
	})

	t.Run("features in catalog order", func(t *testing.T) {
		t.Parallel()
		features, err := catalog.FeaturesFor(plan.TierSilver)
		require.NoError(t, err)
		require.NotEmpty(t, features)
		assert.Equal(t, "Everything in Free", features[0])
	})

	t.Run("unknown plan error", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.LimitsFor(plan.Tier("bronze"))
		assert.ErrorIs(t, err, plan.ErrUnknownPlan)

		_, err = catalog.PriceFor(plan.Tier("bronze"))
		assert.ErrorIs(t, err, plan.ErrUnknownPlan)

		assert.ErrorIs(t, catalog.Verify(plan.Tier("bronze")), plan.ErrUnknownPlan)
	})

	t.Run("tiers sorted by rank", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []plan.Tier{plan.TierFree, plan.TierSilver, plan.TierGold}, catalog.Tiers())
	})
}

func TestNewCatalogValidation(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty plan table", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(nil))
		assert.ErrorIs(t, err, plan.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects unknown tier key", func(t *testing.T) {
		t.Parallel()
		plans := map[plan.Tier]plan.Plan{
			plan.Tier("platinum"): {Name: "Platinum"},
		}
		_, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(plans))
		assert.ErrorIs(t, err, plan.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects negative trial days", func(t *testing.T) {
		t.Parallel()
		plans := plan.DefaultPlans()
		p := plans[plan.TierFree]
		p.TrialDays = -1
		plans[plan.TierFree] = p
		_, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(plans))
		assert.ErrorIs(t, err, plan.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects limits below the sentinel", func(t *testing.T) {
		t.Parallel()
		plans := plan.DefaultPlans()
		p := plans[plan.TierFree]
		p.Limits.MaxLeads = -5
		plans[plan.TierFree] = p
		_, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(plans))
		assert.ErrorIs(t, err, plan.ErrInvalidPlanConfiguration)
	})

	t.Run("catalog isolated from source mutations", func(t *testing.T) {
		t.Parallel()
		plans := plan.DefaultPlans()
		catalog, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(plans))
		require.NoError(t, err)

		p := plans[plan.TierFree]
		p.Limits.MaxLeads = 99999
		plans[plan.TierFree] = p

		limits, err := catalog.LimitsFor(plan.TierFree)
		require.NoError(t, err)
		assert.Equal(t, int64(10), limits.MaxLeads)
	})
}
