// Package plan defines the subscription tier model for the CRM: the three
// tiers (free < silver < gold), the per-tier limits record with the -1
// unlimited sentinel, and the immutable plan catalog loaded once at startup
// from an in-memory table or a YAML file.
//
// The catalog is pure lookup with no I/O after construction. Unknown tier
// tags surface ErrUnknownPlan so callers can report an invalid plan to the
// user instead of acting on a bogus value.
package plan
