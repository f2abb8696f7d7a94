package plan

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Source provides the plan table for catalog construction.
type Source interface {
	Load(ctx context.Context) (map[Tier]Plan, error)
}

// Catalog is the immutable tier registry. It answers pure lookups with
// no I/O; tiers absent from the loaded table resolve to ErrUnknownPlan.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog loads and validates plans from the source. The returned
// catalog is safe for concurrent use.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	cp := make(map[Tier]Plan, len(plans))
	for tier, p := range plans {
		p.Features = slices.Clone(p.Features)
		cp[tier] = p
	}

	return &Catalog{plans: cp}, nil
}

// Get returns the full plan for a tier.
func (c *Catalog) Get(tier Tier) (Plan, error) {
	p, ok := c.plans[tier]
	if !ok {
		return Plan{}, ErrUnknownPlan
	}
	return p, nil
}

// LimitsFor returns the limits record for a tier. The returned value is
// a copy suitable for snapshotting into a subscription.
func (c *Catalog) LimitsFor(tier Tier) (Limits, error) {
	p, ok := c.plans[tier]
	if !ok {
		return Limits{}, ErrUnknownPlan
	}
	return p.Limits, nil
}

// FeaturesFor returns the tier's feature descriptions in catalog order.
func (c *Catalog) FeaturesFor(tier Tier) ([]string, error) {
	p, ok := c.plans[tier]
	if !ok {
		return nil, ErrUnknownPlan
	}
	return slices.Clone(p.Features), nil
}

// PriceFor returns the tier's simulated monthly price.
func (c *Catalog) PriceFor(tier Tier) (Money, error) {
	p, ok := c.plans[tier]
	if !ok {
		return Money{}, ErrUnknownPlan
	}
	return p.MonthlyPrice, nil
}

// Verify returns ErrUnknownPlan if the tier is not configured.
func (c *Catalog) Verify(tier Tier) error {
	if _, ok := c.plans[tier]; !ok {
		return ErrUnknownPlan
	}
	return nil
}

// Tiers returns the configured tiers ordered by rank.
func (c *Catalog) Tiers() []Tier {
	tiers := make([]Tier, 0, len(c.plans))
	for tier := range c.plans {
		tiers = append(tiers, tier)
	}
	slices.SortFunc(tiers, func(a, b Tier) int {
		return a.Order() - b.Order()
	})
	return tiers
}

func validatePlans(plans map[Tier]Plan) error {
	if len(plans) == 0 {
		return errors.Join(ErrInvalidPlanConfiguration, errors.New("no plans configured"))
	}
	for tier, p := range plans {
		if !tier.Valid() {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("unknown tier %q in plan table", tier))
		}
		if p.TrialDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative trial days: %d", tier, p.TrialDays))
		}
		for _, limit := range []int64{p.Limits.MaxLeads, p.Limits.MaxCompetitors, p.Limits.MaxAIRequests, p.Limits.MaxScrapingRequests} {
			if limit < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %s has limit below the unlimited sentinel: %d", tier, limit))
			}
		}
	}
	return nil
}

// inMemSource serves a plan table held in memory.
type inMemSource struct {
	plans map[Tier]Plan
}

// NewInMemSource creates a Source from a static plan table.
// The table is copied to prevent external modification.
func NewInMemSource(plans map[Tier]Plan) Source {
	cp := make(map[Tier]Plan, len(plans))
	for tier, p := range plans {
		p.Features = slices.Clone(p.Features)
		cp[tier] = p
	}
	return &inMemSource{plans: cp}
}

func (s *inMemSource) Load(ctx context.Context) (map[Tier]Plan, error) {
	return s.plans, nil
}

// DefaultPlans returns the built-in three-tier CRM plan table.
func DefaultPlans() map[Tier]Plan {
	return map[Tier]Plan{
		TierFree: {
			Tier:         TierFree,
			Name:         "Free",
			MonthlyPrice: Money{Amount: 0, Currency: "USD"},
			Limits: Limits{
				MaxLeads:             10,
				MaxCompetitors:       2,
				MaxAIRequests:        5,
				MaxScrapingRequests:  10,
				HasAdvancedAnalytics: false,
				HasAPIAccess:         false,
			},
			Features: []string{
				"Basic CRM functionality",
				"Up to 10 leads",
				"Track 2 competitors",
				"5 AI requests per month",
				"Basic scraping",
			},
			TrialDays: 14,
		},
		TierSilver: {
			Tier:         TierSilver,
			Name:         "Silver",
			MonthlyPrice: Money{Amount: 2900, Currency: "USD"},
			Limits: Limits{
				MaxLeads:             100,
				MaxCompetitors:       10,
				MaxAIRequests:        50,
				MaxScrapingRequests:  100,
				HasAdvancedAnalytics: true,
				HasAPIAccess:         false,
			},
			Features: []string{
				"Everything in Free",
				"Up to 100 leads",
				"Track 10 competitors",
				"50 AI requests per month",
				"Advanced analytics",
				"Priority support",
			},
			TrialDays: 14,
		},
		TierGold: {
			Tier:         TierGold,
			Name:         "Gold",
			MonthlyPrice: Money{Amount: 9900, Currency: "USD"},
			Limits: Limits{
				MaxLeads:             Unlimited,
				MaxCompetitors:       Unlimited,
				MaxAIRequests:        500,
				MaxScrapingRequests:  1000,
				HasAdvancedAnalytics: true,
				HasAPIAccess:         true,
			},
			Features: []string{
				"Everything in Silver",
				"Unlimited leads",
				"Unlimited competitor tracking",
				"500 AI requests per month",
				"API access",
				"Custom integrations",
				"Dedicated support",
			},
			TrialDays: 14,
		},
	}
}
