package subscription

import (
	"fmt"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// FeatureAccess is the usage-gate verdict for one feature. Limit and
// Current are included for UI display; boolean features report them as
// 1/0 for uniformity.
type FeatureAccess struct {
	CanUse  bool   `json:"can_use"`
	Limit   int64  `json:"limit"`
	Current int64  `json:"current"`
	Message string `json:"message"`
}

// limitReachedMessages holds the per-feature denial texts shown to users.
var limitReachedMessages = map[plan.Feature]string{
	plan.FeatureLeads:       "Lead limit reached",
	plan.FeatureCompetitors: "Competitor tracking limit reached",
	plan.FeatureAI:          "AI request limit reached for this month",
	plan.FeatureScraping:    "Scraping limit reached for this month",
}

// CheckFeatureAccess evaluates a feature against the subscription's limit
// snapshot and current usage. Pure decision, no I/O.
//
// For metered features the unlimited sentinel is checked before any numeric
// comparison, and a finite limit admits strictly while current < limit:
// sitting exactly at the limit denies the next action. Unknown features and
// a nil subscription deny with a diagnostic message rather than an error.
func CheckFeatureAccess(sub *Subscription, f plan.Feature) FeatureAccess {
	if sub == nil {
		return FeatureAccess{CanUse: false, Message: "No subscription found"}
	}

	switch f {
	case plan.FeatureLeads, plan.FeatureCompetitors, plan.FeatureAI, plan.FeatureScraping:
		limit, _ := sub.Limits.Max(f)
		current, _ := sub.CurrentUsage.For(f)

		if limit == plan.Unlimited {
			return FeatureAccess{CanUse: true, Limit: plan.Unlimited, Current: current, Message: "Unlimited"}
		}

		if current >= limit {
			return FeatureAccess{CanUse: false, Limit: limit, Current: current, Message: limitReachedMessages[f]}
		}
		return FeatureAccess{CanUse: true, Limit: limit, Current: current, Message: "Access granted"}

	case plan.FeatureAdvancedAnalytics:
		if sub.Limits.HasAdvancedAnalytics {
			return FeatureAccess{CanUse: true, Limit: 1, Current: 1, Message: "Access granted"}
		}
		return FeatureAccess{CanUse: false, Message: "Advanced analytics requires Silver plan or higher"}

	case plan.FeatureAPIAccess:
		if sub.Limits.HasAPIAccess {
			return FeatureAccess{CanUse: true, Limit: 1, Current: 1, Message: "Access granted"}
		}
		return FeatureAccess{CanUse: false, Message: "API access requires Gold plan"}
	}

	return FeatureAccess{CanUse: false, Message: fmt.Sprintf("Invalid feature type: %s", f)}
}
