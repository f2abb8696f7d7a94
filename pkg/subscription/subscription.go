package subscription

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// Status represents the billing state of a subscription.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
	StatusTrial     Status = "trial"
)

// Usage holds the per-feature consumption counters. Leads and competitors
// are cumulative totals; AI and scraping counters are monthly and zeroed
// by the reset job.
type Usage struct {
	LeadsCount                int64 `json:"leads_count" bson:"leadsCount"`
	CompetitorsCount          int64 `json:"competitors_count" bson:"competitorsCount"`
	AIRequestsThisMonth       int64 `json:"ai_requests_this_month" bson:"aiRequestsThisMonth"`
	ScrapingRequestsThisMonth int64 `json:"scraping_requests_this_month" bson:"scrapingRequestsThisMonth"`
}

// For returns the counter value for a metered feature.
// Returns plan.ErrUnknownFeature for boolean or unrecognized features.
func (u Usage) For(f plan.Feature) (int64, error) {
	switch f {
	case plan.FeatureLeads:
		return u.LeadsCount, nil
	case plan.FeatureCompetitors:
		return u.CompetitorsCount, nil
	case plan.FeatureAI:
		return u.AIRequestsThisMonth, nil
	case plan.FeatureScraping:
		return u.ScrapingRequestsThisMonth, nil
	}
	return 0, plan.ErrUnknownFeature
}

// Subscription is the per-user subscription record. Exactly one exists per
// user; Limits is a value snapshot of the plan's limits taken at creation
// or upgrade time, so catalog edits never change it retroactively.
type Subscription struct {
	UserID       uuid.UUID   `json:"user_id" bson:"userId"`
	Plan         plan.Tier   `json:"plan" bson:"plan"`
	Limits       plan.Limits `json:"limits" bson:"limits"`
	CurrentUsage Usage       `json:"current_usage" bson:"currentUsage"`
	Status       Status      `json:"status" bson:"status"`
	StartDate    time.Time   `json:"start_date" bson:"startDate"`
	EndDate      *time.Time  `json:"end_date,omitempty" bson:"endDate,omitempty"`
	TrialEndDate *time.Time  `json:"trial_end_date,omitempty" bson:"trialEndDate,omitempty"`
	MonthlyPrice plan.Money  `json:"monthly_price" bson:"monthlyPrice"`
	IsTrialUsed  bool        `json:"is_trial_used" bson:"isTrialUsed"`
	CreatedAt    time.Time   `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updatedAt"`
}

// IsTrial returns true while the subscription is in its trial period.
func (s *Subscription) IsTrial() bool {
	return s.Status == StatusTrial
}

// IsActive returns true for a paid, current subscription.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsTrialExpiredAt reports whether the trial window has passed at a given time.
// Subscriptions without a trial end date never expire this way.
func (s *Subscription) IsTrialExpiredAt(now time.Time) bool {
	if s.TrialEndDate == nil {
		return false
	}
	return now.After(*s.TrialEndDate)
}

// IsTrialExpired reports whether the trial window has passed.
func (s *Subscription) IsTrialExpired() bool {
	return s.IsTrialExpiredAt(time.Now().UTC())
}

// DaysUntilExpiryAt returns the ceiling of days between now and the end
// date, or nil when no end date is set. The value goes negative once the
// subscription has lapsed. Fixed-time variant for tests.
func (s *Subscription) DaysUntilExpiryAt(now time.Time) *int {
	if s.EndDate == nil {
		return nil
	}
	days := int(math.Ceil(s.EndDate.Sub(now).Hours() / 24))
	return &days
}

// DaysUntilExpiry returns the ceiling of days until the end date, nil if none.
func (s *Subscription) DaysUntilExpiry() *int {
	return s.DaysUntilExpiryAt(time.Now().UTC())
}
