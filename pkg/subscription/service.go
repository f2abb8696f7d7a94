package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/logger"
	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// upgradeTermDays is the paid term granted by a plan change.
const upgradeTermDays = 30

// UsageMirror receives write-through copies of selected counters for
// quick display (leads, AI, scraping). The mirror is a denormalized
// convenience cache and never authoritative: access decisions read only
// the subscription record. Mirror failures must not fail the caller.
type UsageMirror interface {
	// Set writes the mirrored counter's new value for a user.
	Set(ctx context.Context, userID uuid.UUID, f plan.Feature, value int64) error

	// Reset clears all mirrored monthly counters.
	Reset(ctx context.Context) error
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithUsageMirror attaches a denormalized usage snapshot cache.
func WithUsageMirror(m UsageMirror) Option {
	return func(s *Service) { s.mirror = m }
}

// Service tracks per-user subscriptions and usage: lifecycle (trial,
// upgrade), the usage gate, counter increments, the monthly reset and
// dashboard summaries.
type Service struct {
	store   Store
	catalog *plan.Catalog
	mirror  UsageMirror
	log     *slog.Logger
}

// NewService creates a subscription service.
// Panics if store or catalog is nil to fail fast during initialization.
func NewService(store Store, catalog *plan.Catalog, opts ...Option) *Service {
	if store == nil {
		panic("subscription: Store is required")
	}
	if catalog == nil {
		panic("subscription: plan catalog is required")
	}

	s := &Service{
		store:   store,
		catalog: catalog,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the user's subscription record.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	return s.store.Get(ctx, userID)
}

// StartTrial creates the user's subscription at registration time:
// trial status, trial end after the plan's trial window, price and
// limits snapshotted from the catalog. Returns ErrAlreadyExists when the
// user already has a record and plan.ErrUnknownPlan for invalid tiers.
func (s *Service) StartTrial(ctx context.Context, userID uuid.UUID, tier plan.Tier) (*Subscription, error) {
	p, err := s.catalog.Get(tier)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trialEnd := now.AddDate(0, 0, p.TrialDays)

	sub := &Subscription{
		UserID:       userID,
		Plan:         tier,
		Limits:       p.Limits,
		Status:       StatusTrial,
		StartDate:    now,
		TrialEndDate: &trialEnd,
		MonthlyPrice: p.MonthlyPrice,
		IsTrialUsed:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "trial subscription started",
		logger.UserID(userID), logger.Plan(tier), slog.Time("trial_end", trialEnd))
	return sub, nil
}

// Upgrade moves the user to a new tier: status becomes active, the
// limits snapshot and price are replaced from the catalog, and the paid
// term runs for thirty days. Usage counters carry over unchanged.
// Returns plan.ErrUnknownPlan for invalid tiers so callers surface an
// "invalid plan" input error before anything is written.
func (s *Service) Upgrade(ctx context.Context, userID uuid.UUID, tier plan.Tier) (*Subscription, error) {
	p, err := s.catalog.Get(tier)
	if err != nil {
		return nil, err
	}

	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	endDate := now.AddDate(0, 0, upgradeTermDays)

	sub.Plan = tier
	sub.Limits = p.Limits
	sub.Status = StatusActive
	sub.MonthlyPrice = p.MonthlyPrice
	sub.EndDate = &endDate
	sub.UpdatedAt = now

	if err := s.store.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription plan changed",
		logger.UserID(userID), logger.Plan(tier))
	return sub, nil
}

// CheckAccess fetches the user's subscription and evaluates the usage
// gate for the feature. A missing record returns a denying FeatureAccess
// together with ErrNotFound; store failures return the error alone, and
// the caller must treat that as a deny (fail-closed).
func (s *Service) CheckAccess(ctx context.Context, userID uuid.UUID, f plan.Feature) (FeatureAccess, error) {
	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.WarnContext(ctx, "no subscription record for user",
				logger.UserID(userID), logger.Feature(f))
			return CheckFeatureAccess(nil, f), err
		}
		return FeatureAccess{}, err
	}
	return CheckFeatureAccess(sub, f), nil
}

// IncrementUsage atomically charges delta units of a metered feature to
// the user's counter and write-through-mirrors the new value for leads,
// AI and scraping. Call it only after the guarded action succeeded: no
// usage is charged for failed actions.
func (s *Service) IncrementUsage(ctx context.Context, userID uuid.UUID, f plan.Feature, delta int64) (int64, error) {
	newValue, err := s.store.IncrementUsage(ctx, userID, f, delta)
	if err != nil {
		return 0, err
	}

	switch f {
	case plan.FeatureLeads, plan.FeatureAI, plan.FeatureScraping:
		if s.mirror != nil {
			if err := s.mirror.Set(ctx, userID, f, newValue); err != nil {
				// The mirror is display-only; losing a write is harmless.
				s.log.WarnContext(ctx, "usage mirror update failed",
					logger.UserID(userID), logger.Feature(f), logger.Error(err))
			}
		}
	}

	return newValue, nil
}

// ResetMonthlyUsage zeroes the monthly counters (AI, scraping) on every
// subscription in one bulk update and clears the mirror. Cumulative
// counters (leads, competitors) are left untouched. Safe to run more
// than once per period.
func (s *Service) ResetMonthlyUsage(ctx context.Context) (int64, error) {
	n, err := s.store.ResetMonthlyUsage(ctx)
	if err != nil {
		return 0, err
	}

	if s.mirror != nil {
		if err := s.mirror.Reset(ctx); err != nil {
			s.log.WarnContext(ctx, "usage mirror reset failed", logger.Error(err))
		}
	}

	s.log.InfoContext(ctx, "monthly usage counters reset", slog.Int64("subscriptions", n))
	return n, nil
}

// Summary returns the dashboard projection of the user's subscription.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Summarize(sub), nil
}

// IsTrialExpired reports whether the user's trial window has passed.
func (s *Service) IsTrialExpired(ctx context.Context, userID uuid.UUID) (bool, error) {
	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.IsTrialExpired(), nil
}

// CanDowngrade checks whether the user's current usage fits inside the
// target tier's ceilings. Counters above a finite target ceiling make
// the downgrade impossible until usage shrinks.
func (s *Service) CanDowngrade(ctx context.Context, userID uuid.UUID, target plan.Tier) error {
	limits, err := s.catalog.LimitsFor(target)
	if err != nil {
		return err
	}

	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	for _, f := range plan.MeteredFeatures() {
		targetLimit, _ := limits.Max(f)
		if targetLimit == plan.Unlimited {
			continue
		}
		current, _ := sub.CurrentUsage.For(f)
		if current > targetLimit {
			return ErrDowngradeNotPossible
		}
	}
	return nil
}
