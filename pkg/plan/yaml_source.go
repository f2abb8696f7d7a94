package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSource loads the plan table from a YAML file. Deployments that
// tune limits without a rebuild point PLANS_FILE at one of these:
//
//	plans:
//	  free:
//	    name: Free
//	    monthly_price: {amount: 0, currency: USD}
//	    trial_days: 14
//	    limits:
//	      max_leads: 10
//	      max_competitors: 2
//	      max_ai_requests: 5
//	      max_scraping_requests: 10
//	      has_advanced_analytics: false
//	      has_api_access: false
//	    features:
//	      - Basic CRM functionality
type fileSource struct {
	path string
}

type planFile struct {
	Plans map[string]Plan `yaml:"plans"`
}

// NewFileSource creates a Source reading the plan table from a YAML file.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (map[Tier]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var file planFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[Tier]Plan, len(file.Plans))
	for rawTier, p := range file.Plans {
		tier, err := ParseTier(rawTier)
		if err != nil {
			return nil, errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("unknown tier %q in %s", rawTier, s.path))
		}
		p.Tier = tier
		plans[tier] = p
	}

	return plans, nil
}
