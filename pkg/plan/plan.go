package plan

// Unlimited marks a limit with no ceiling. The sentinel must be checked
// before any numeric comparison; comparing usage against -1 directly
// would deny everything.
const Unlimited int64 = -1

// Feature identifies a plan-gated capability. The four metered features
// map to usage counters; the two boolean features are plain flags.
type Feature string

const (
	FeatureLeads             Feature = "leads"
	FeatureCompetitors       Feature = "competitors"
	FeatureAI                Feature = "ai"
	FeatureScraping          Feature = "scraping"
	FeatureAdvancedAnalytics Feature = "advanced_analytics"
	FeatureAPIAccess         Feature = "api_access"
)

// Metered reports whether the feature is tracked by a usage counter.
func (f Feature) Metered() bool {
	switch f {
	case FeatureLeads, FeatureCompetitors, FeatureAI, FeatureScraping:
		return true
	}
	return false
}

// Valid reports whether the feature is one of the known features.
func (f Feature) Valid() bool {
	switch f {
	case FeatureLeads, FeatureCompetitors, FeatureAI, FeatureScraping,
		FeatureAdvancedAnalytics, FeatureAPIAccess:
		return true
	}
	return false
}

// ParseFeature validates a raw feature tag.
func ParseFeature(raw string) (Feature, error) {
	f := Feature(raw)
	if !f.Valid() {
		return "", ErrUnknownFeature
	}
	return f, nil
}

// MeteredFeatures lists the counter-backed features in a stable order.
func MeteredFeatures() []Feature {
	return []Feature{FeatureLeads, FeatureCompetitors, FeatureAI, FeatureScraping}
}

// Limits is the resource ceiling record attached to a plan. Subscriptions
// store a value copy of it, so later catalog edits never retroactively
// change existing subscriptions.
type Limits struct {
	MaxLeads             int64 `yaml:"max_leads" json:"max_leads" bson:"maxLeads"`
	MaxCompetitors       int64 `yaml:"max_competitors" json:"max_competitors" bson:"maxCompetitors"`
	MaxAIRequests        int64 `yaml:"max_ai_requests" json:"max_ai_requests" bson:"maxAIRequests"`
	MaxScrapingRequests  int64 `yaml:"max_scraping_requests" json:"max_scraping_requests" bson:"maxScrapingRequests"`
	HasAdvancedAnalytics bool  `yaml:"has_advanced_analytics" json:"has_advanced_analytics" bson:"hasAdvancedAnalytics"`
	HasAPIAccess         bool  `yaml:"has_api_access" json:"has_api_access" bson:"hasAPIAccess"`
}

// Max returns the numeric ceiling for a metered feature.
// Returns ErrUnknownFeature for boolean or unrecognized features.
func (l Limits) Max(f Feature) (int64, error) {
	switch f {
	case FeatureLeads:
		return l.MaxLeads, nil
	case FeatureCompetitors:
		return l.MaxCompetitors, nil
	case FeatureAI:
		return l.MaxAIRequests, nil
	case FeatureScraping:
		return l.MaxScrapingRequests, nil
	}
	return 0, ErrUnknownFeature
}

// Enabled returns the flag value for a boolean feature.
// Returns ErrUnknownFeature for metered or unrecognized features.
func (l Limits) Enabled(f Feature) (bool, error) {
	switch f {
	case FeatureAdvancedAnalytics:
		return l.HasAdvancedAnalytics, nil
	case FeatureAPIAccess:
		return l.HasAPIAccess, nil
	}
	return false, ErrUnknownFeature
}

// Money is a monetary amount in the smallest currency unit.
// $29.00 USD is Money{Amount: 2900, Currency: "USD"}.
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount" bson:"amount"`
	Currency string `yaml:"currency" json:"currency" bson:"currency"`
}

// Plan describes a subscription tier: its limits, feature descriptions
// and simulated monthly price. Immutable process-wide configuration,
// loaded once at startup.
type Plan struct {
	Tier         Tier     `yaml:"tier"`
	Name         string   `yaml:"name"`
	MonthlyPrice Money    `yaml:"monthly_price"`
	Limits       Limits   `yaml:"limits"`
	Features     []string `yaml:"features"`
	TrialDays    int      `yaml:"trial_days"`
}
