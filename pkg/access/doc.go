// Package access composes the CRM's three admission gates into one
// decision engine: the role gate (permission catalog), the plan gate
// (tier order over free < silver < gold) and the usage gate (quota
// counters on the subscription record).
//
// Every check yields a Decision carrying the verdict, a status that
// classifies the reason, and the diagnostic fields the transport layer
// needs for its response: role and available actions for permission
// denials, current and required plan for tier denials, limit and current
// for quota denials. The engine is fail-closed throughout: unknown
// roles, missing subscriptions and store failures all deny; a store
// failure denies under the distinct service-error status so callers can
// retry it without ever being allowed through.
//
// Scoped catalog actions (read_own, read_team, read_assigned) grant an
// unscoped request with the narrowest matching scope in the decision;
// the CRUD layer implements OwnershipResolver to settle whether a
// concrete record falls inside that scope.
//
// HTTP handlers are guarded with the middleware constructors:
//
//	r := chi.NewRouter()
//	r.With(
//		guard.Require(rbac.ResourceLeads, "create", plan.FeatureLeads),
//	).Post("/leads", createLead)
package access
