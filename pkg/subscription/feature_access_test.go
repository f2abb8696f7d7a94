package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/crmkit/pkg/plan"
	"github.com/dmitrymomot/crmkit/pkg/subscription"
)

func subWith(limits plan.Limits, usage subscription.Usage) *subscription.Subscription {
	return &subscription.Subscription{
		Plan:         plan.TierFree,
		Limits:       limits,
		CurrentUsage: usage,
		Status:       subscription.StatusActive,
	}
}

func TestCheckFeatureAccess(t *testing.T) {
	t.Parallel()

	t.Run("nil subscription denies everything", func(t *testing.T) {
		t.Parallel()
		access := subscription.CheckFeatureAccess(nil, plan.FeatureLeads)
		assert.False(t, access.CanUse)
		assert.Equal(t, "No subscription found", access.Message)
	})

	t.Run("under the limit grants access", func(t *testing.T) {
		t.Parallel()
		sub := subWith(plan.Limits{MaxLeads: 10}, subscription.Usage{LeadsCount: 9})
		access := subscription.CheckFeatureAccess(sub, plan.FeatureLeads)
		assert.True(t, access.CanUse)
		assert.Equal(t, int64(10), access.Limit)
		assert.Equal(t, int64(9), access.Current)
		assert.Equal(t, "Access granted", access.Message)
	})

	t.Run("exactly at the limit denies the next action", func(t *testing.T) {
		t.Parallel()
		sub := subWith(plan.Limits{MaxLeads: 10}, subscription.Usage{LeadsCount: 10})
		access := subscription.CheckFeatureAccess(sub, plan.FeatureLeads)
		assert.False(t, access.CanUse)
		assert.Equal(t, int64(10), access.Limit)
		assert.Equal(t, int64(10), access.Current)
		assert.Equal(t, "Lead limit reached", access.Message)
	})

	t.Run("unlimited admits regardless of usage", func(t *testing.T) {
		t.Parallel()
		sub := subWith(plan.Limits{MaxLeads: plan.Unlimited}, subscription.Usage{LeadsCount: 5000})
		access := subscription.CheckFeatureAccess(sub, plan.FeatureLeads)
		assert.True(t, access.CanUse)
		assert.Equal(t, plan.Unlimited, access.Limit)
		assert.Equal(t, int64(5000), access.Current)
		assert.Equal(t, "Unlimited", access.Message)
	})

	t.Run("zero limit denies immediately", func(t *testing.T) {
		t.Parallel()
		sub := subWith(plan.Limits{MaxAIRequests: 0}, subscription.Usage{})
		access := subscription.CheckFeatureAccess(sub, plan.FeatureAI)
		assert.False(t, access.CanUse)
		assert.Equal(t, "AI request limit reached for this month", access.Message)
	})

	t.Run("per feature denial messages", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			feature plan.Feature
			usage   subscription.Usage
			message string
		}{
			{plan.FeatureCompetitors, subscription.Usage{CompetitorsCount: 2}, "Competitor tracking limit reached"},
			{plan.FeatureAI, subscription.Usage{AIRequestsThisMonth: 5}, "AI request limit reached for this month"},
			{plan.FeatureScraping, subscription.Usage{ScrapingRequestsThisMonth: 10}, "Scraping limit reached for this month"},
		}
		limits := plan.Limits{MaxCompetitors: 2, MaxAIRequests: 5, MaxScrapingRequests: 10}
		for _, tc := range cases {
			access := subscription.CheckFeatureAccess(subWith(limits, tc.usage), tc.feature)
			assert.False(t, access.CanUse, tc.feature)
			assert.Equal(t, tc.message, access.Message)
		}
	})

	t.Run("advanced analytics requires the plan flag", func(t *testing.T) {
		t.Parallel()
		denied := subscription.CheckFeatureAccess(subWith(plan.Limits{}, subscription.Usage{}), plan.FeatureAdvancedAnalytics)
		assert.False(t, denied.CanUse)
		assert.Equal(t, "Advanced analytics requires Silver plan or higher", denied.Message)

		granted := subscription.CheckFeatureAccess(subWith(plan.Limits{HasAdvancedAnalytics: true}, subscription.Usage{}), plan.FeatureAdvancedAnalytics)
		assert.True(t, granted.CanUse)
		assert.Equal(t, int64(1), granted.Limit)
		assert.Equal(t, int64(1), granted.Current)
		assert.Equal(t, "Access granted", granted.Message)
	})

	t.Run("api access requires the gold flag", func(t *testing.T) {
		t.Parallel()
		denied := subscription.CheckFeatureAccess(subWith(plan.Limits{}, subscription.Usage{}), plan.FeatureAPIAccess)
		assert.False(t, denied.CanUse)
		assert.Equal(t, "API access requires Gold plan", denied.Message)

		granted := subscription.CheckFeatureAccess(subWith(plan.Limits{HasAPIAccess: true}, subscription.Usage{}), plan.FeatureAPIAccess)
		assert.True(t, granted.CanUse)
	})

	t.Run("unknown feature denies with diagnostic", func(t *testing.T) {
		t.Parallel()
		access := subscription.CheckFeatureAccess(subWith(plan.Limits{}, subscription.Usage{}), plan.Feature("teleportation"))
		assert.False(t, access.CanUse)
		assert.Equal(t, "Invalid feature type: teleportation", access.Message)
	})
}
