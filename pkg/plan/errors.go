package plan

import "errors"

// Domain errors for plan catalog operations.
var (
	// ErrUnknownPlan is returned for tier tags outside the configured set.
	// Callers must surface this as an "invalid plan" input error, never
	// silently default to a tier.
	ErrUnknownPlan = errors.New("plan.unknown_plan")

	// ErrUnknownFeature is returned for unrecognized feature tags.
	ErrUnknownFeature = errors.New("plan.unknown_feature")

	// ErrFailedToLoadPlans wraps source failures during catalog construction.
	ErrFailedToLoadPlans = errors.New("plan.failed_to_load_plans")

	// ErrInvalidPlanConfiguration is returned when loaded plans are malformed.
	ErrInvalidPlanConfiguration = errors.New("plan.invalid_plan_configuration")
)
