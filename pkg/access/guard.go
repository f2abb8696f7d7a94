package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/logger"
	"github.com/dmitrymomot/crmkit/pkg/plan"
	"github.com/dmitrymomot/crmkit/pkg/rbac"
	"github.com/dmitrymomot/crmkit/pkg/subscription"
)

// Guard composes the three gates an endpoint declares: the role gate
// (permission catalog), the plan gate (tier order) and the usage gate
// (quota counters). Gates run in that order and the pipeline stops at
// the first deny, matching the order mutations are guarded in:
// permission first, then quota, then the mutation itself.
type Guard struct {
	roles rbac.Authorizer
	subs  *subscription.Service
	log   *slog.Logger
}

// GuardOption configures the Guard.
type GuardOption func(*Guard)

// WithLogger sets the guard logger.
func WithLogger(log *slog.Logger) GuardOption {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGuard creates a guard over the given authorizer and subscription
// service. Panics on nil collaborators to fail fast during wiring.
func NewGuard(roles rbac.Authorizer, subs *subscription.Service, opts ...GuardOption) *Guard {
	if roles == nil {
		panic("access: rbac authorizer is required")
	}
	if subs == nil {
		panic("access: subscription service is required")
	}

	g := &Guard{roles: roles, subs: subs, log: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckPermission runs the role gate: pure catalog lookup, no I/O.
//
// The requested action may itself be scoped ("read_own") for an exact
// check, or unscoped ("read"), in which case any scoped variant the role
// holds grants access and the decision carries the narrowest granted
// scope. Denials include the role and its actually available actions for
// diagnostic responses.
func (g *Guard) CheckPermission(actor Actor, resource rbac.Resource, action rbac.Action) Decision {
	if err := g.roles.Can(actor.Role, resource, action); err == nil {
		d := allow()
		d.Role = actor.Role
		_, d.Scope = SplitAction(action)
		return d
	}

	base, requestedScope := SplitAction(action)
	available := g.roles.AvailableActions(actor.Role, resource)

	// An unscoped request is satisfied by any scoped variant of the same
	// base action. A scoped request already failed its exact match above.
	if requestedScope == ScopeAll {
		granted := Scope("")
		for _, a := range available {
			b, scope := SplitAction(a)
			if b != base {
				continue
			}
			if granted == "" || scope.NarrowerThan(granted) {
				granted = scope
			}
		}
		if granted != "" {
			d := allow()
			d.Role = actor.Role
			d.Scope = granted
			return d
		}
	}

	d := deny(StatusPermissionDenied,
		fmt.Sprintf("Insufficient permissions: %s cannot %s %s", actor.Role, base, resource))
	d.Role = actor.Role
	d.AvailableActions = available
	return d
}

// CheckRecordAccess runs the role gate and, when the granted scope does
// not cover all records, asks the resolver whether this record is inside
// the actor's scope. Resolver failures deny with the service-error
// status, never allow.
func (g *Guard) CheckRecordAccess(ctx context.Context, actor Actor, resource rbac.Resource, action rbac.Action, recordID uuid.UUID, resolver OwnershipResolver) Decision {
	d := g.CheckPermission(actor, resource, action)
	if !d.Allowed || d.Scope == ScopeAll {
		return d
	}

	if resolver == nil {
		// A scoped grant without a resolver cannot be verified; denying
		// is the only safe answer.
		out := deny(StatusPermissionDenied,
			fmt.Sprintf("Insufficient permissions: %s access to %s cannot be verified", d.Scope, resource))
		out.Role = actor.Role
		return out
	}

	within, err := resolver.Within(ctx, actor, resource, recordID, d.Scope)
	if err != nil {
		g.log.ErrorContext(ctx, "ownership resolution failed",
			logger.UserID(actor.ID), slog.String("resource", string(resource)), logger.Error(err))
		return deny(StatusServiceError, "Access check failed, try again later")
	}
	if !within {
		out := deny(StatusPermissionDenied,
			fmt.Sprintf("Insufficient permissions: record is outside your %s scope", d.Scope))
		out.Role = actor.Role
		return out
	}
	return d
}

// CheckPlanTier runs the plan gate as a pure decision over an already
// fetched subscription. A nil subscription is a hard deny; admission is
// order(current) >= order(required) over free < silver < gold.
func CheckPlanTier(sub *subscription.Subscription, required plan.Tier) Decision {
	if !required.Valid() {
		return deny(StatusInvalidInput, fmt.Sprintf("Invalid plan: %s", required))
	}
	if sub == nil {
		d := deny(StatusSubscriptionMissing, "No subscription found")
		d.RequiredPlan = required
		return d
	}
	if !sub.Plan.AtLeast(required) {
		d := deny(StatusPlanRequired, fmt.Sprintf("Requires %s plan or higher", required))
		d.CurrentPlan = sub.Plan
		d.RequiredPlan = required
		return d
	}

	d := allow()
	d.CurrentPlan = sub.Plan
	d.RequiredPlan = required
	return d
}

// RequirePlanTier fetches the actor's subscription and runs the plan
// gate. Store failures deny with the service-error status (fail-closed).
func (g *Guard) RequirePlanTier(ctx context.Context, actor Actor, required plan.Tier) Decision {
	sub, err := g.subs.Get(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			return CheckPlanTier(nil, required)
		}
		g.log.ErrorContext(ctx, "subscription fetch failed",
			logger.UserID(actor.ID), logger.Error(err))
		return deny(StatusServiceError, "Access check failed, try again later")
	}
	return CheckPlanTier(sub, required)
}

// CheckFeature runs the usage gate for one feature: fetches the actor's
// subscription and evaluates limits against current usage. Unknown
// features are a client error; a missing record and store failures deny
// with their distinct statuses.
func (g *Guard) CheckFeature(ctx context.Context, actor Actor, f plan.Feature) Decision {
	if !f.Valid() {
		return deny(StatusInvalidInput, fmt.Sprintf("Invalid feature type: %s", f))
	}

	fa, err := g.subs.CheckAccess(ctx, actor.ID, f)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			return deny(StatusSubscriptionMissing, fa.Message)
		}
		g.log.ErrorContext(ctx, "usage gate check failed",
			logger.UserID(actor.ID), logger.Feature(f), logger.Error(err))
		return deny(StatusServiceError, "Access check failed, try again later")
	}

	d := Decision{
		Allowed: fa.CanUse,
		Status:  StatusGranted,
		Message: fa.Message,
		Limit:   fa.Limit,
		Current: fa.Current,
	}
	if !fa.CanUse {
		if f.Metered() {
			d.Status = StatusQuotaExceeded
		} else {
			d.Status = StatusPlanRequired
		}
		g.log.DebugContext(ctx, "usage gate denied",
			logger.UserID(actor.ID), logger.Feature(f), slog.String("reason", fa.Message))
	}
	return d
}

// Check runs the full pipeline an endpoint declares: the role gate for
// (resource, action), then the usage gate for the feature when one is
// declared. The zero Feature value skips the usage gate.
func (g *Guard) Check(ctx context.Context, actor Actor, resource rbac.Resource, action rbac.Action, f plan.Feature) Decision {
	d := g.CheckPermission(actor, resource, action)
	if !d.Allowed {
		return d
	}
	if f == "" {
		return d
	}

	fd := g.CheckFeature(ctx, actor, f)
	// The role gate's scope survives into the combined verdict.
	fd.Role = d.Role
	if fd.Allowed {
		fd.Scope = d.Scope
	}
	return fd
}
