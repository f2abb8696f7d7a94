package subscription

import (
	"math"
	"time"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// warningThreshold is the usage percentage above which a feature lands in
// the summary's warnings list.
const warningThreshold = 80

// Summary is a read-only projection of a subscription for dashboards:
// usage percentages per metered feature, features running hot, and expiry
// information. No side effects.
type Summary struct {
	Subscription     *Subscription         `json:"subscription"`
	UsagePercentages map[plan.Feature]int  `json:"usage_percentages"`
	Warnings         []plan.Feature        `json:"warnings"`
	IsTrialExpired   bool                  `json:"is_trial_expired"`
	DaysUntilExpiry  *int                  `json:"days_until_expiry,omitempty"`
}

// SummarizeAt builds the summary as of a given time. Unlimited features
// report 0 percent; finite limits report round(100*current/limit).
// Features above the warning threshold are listed in metered-feature order.
func SummarizeAt(sub *Subscription, now time.Time) *Summary {
	percentages := make(map[plan.Feature]int, 4)
	var warnings []plan.Feature

	for _, f := range plan.MeteredFeatures() {
		limit, _ := sub.Limits.Max(f)
		current, _ := sub.CurrentUsage.For(f)

		pct := 0
		if limit != plan.Unlimited && limit != 0 {
			pct = int(math.Round(float64(current) / float64(limit) * 100))
		}
		percentages[f] = pct

		if pct > warningThreshold {
			warnings = append(warnings, f)
		}
	}

	return &Summary{
		Subscription:     sub,
		UsagePercentages: percentages,
		Warnings:         warnings,
		IsTrialExpired:   sub.IsTrialExpiredAt(now),
		DaysUntilExpiry:  sub.DaysUntilExpiryAt(now),
	}
}

// Summarize builds the summary as of the current time.
func Summarize(sub *Subscription) *Summary {
	return SummarizeAt(sub, time.Now().UTC())
}
