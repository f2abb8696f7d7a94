package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

const plansYAML = `plans:
  free:
    name: Free
    monthly_price: {amount: 0, currency: USD}
    trial_days: 14
    limits:
      max_leads: 10
      max_competitors: 2
      max_ai_requests: 5
      max_scraping_requests: 10
      has_advanced_analytics: false
      has_api_access: false
    features:
      - Basic CRM functionality
  gold:
    name: Gold
    monthly_price: {amount: 9900, currency: USD}
    trial_days: 14
    limits:
      max_leads: -1
      max_competitors: -1
      max_ai_requests: 500
      max_scraping_requests: 1000
      has_advanced_analytics: true
      has_api_access: true
    features:
      - Unlimited leads
`

func writePlansFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("loads plan table from yaml", func(t *testing.T) {
		t.Parallel()
		src := plan.NewFileSource(writePlansFile(t, plansYAML))
		plans, err := src.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, plans, 2)

		free := plans[plan.TierFree]
		assert.Equal(t, "Free", free.Name)
		assert.Equal(t, plan.TierFree, free.Tier)
		assert.Equal(t, int64(10), free.Limits.MaxLeads)

		gold := plans[plan.TierGold]
		assert.Equal(t, plan.Unlimited, gold.Limits.MaxLeads)
		assert.Equal(t, int64(9900), gold.MonthlyPrice.Amount)
		assert.True(t, gold.Limits.HasAPIAccess)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		src := plan.NewFileSource(filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		src := plan.NewFileSource(writePlansFile(t, "plans: ["))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})

	t.Run("unknown tier key rejected", func(t *testing.T) {
		t.Parallel()
		src := plan.NewFileSource(writePlansFile(t, "plans:\n  platinum:\n    name: Platinum\n"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrInvalidPlanConfiguration)
	})

	t.Run("wired into catalog", func(t *testing.T) {
		t.Parallel()
		catalog, err := plan.NewCatalog(context.Background(), plan.NewFileSource(writePlansFile(t, plansYAML)))
		require.NoError(t, err)
		limits, err := catalog.LimitsFor(plan.TierGold)
		require.NoError(t, err)
		assert.Equal(t, int64(500), limits.MaxAIRequests)
	})
}
