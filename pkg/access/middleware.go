package access

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/crmkit/pkg/plan"
	"github.com/dmitrymomot/crmkit/pkg/rbac"
)

// Middleware mapping: Allow proceeds to the handler with the decision in
// the request context; Deny short-circuits with the decision serialized
// as JSON under the status code its Status maps to. The authentication
// middleware upstream must have stored an Actor in the context.

type decisionCtxKey struct{}

// DecisionFromContext returns the allow decision stored by the guard
// middleware, so handlers can read the granted scope.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionCtxKey{}).(Decision)
	return d, ok
}

// RequirePermission guards an endpoint with the role gate.
func (g *Guard) RequirePermission(resource rbac.Resource, action rbac.Action) func(http.Handler) http.Handler {
	return g.middleware(func(_ context.Context, actor Actor) Decision {
		return g.CheckPermission(actor, resource, action)
	})
}

// RequireFeature guards an endpoint with the usage gate.
func (g *Guard) RequireFeature(f plan.Feature) func(http.Handler) http.Handler {
	return g.middleware(func(ctx context.Context, actor Actor) Decision {
		return g.CheckFeature(ctx, actor, f)
	})
}

// RequirePlanTier guards an endpoint with the plan gate.
func (g *Guard) RequirePlan(required plan.Tier) func(http.Handler) http.Handler {
	return g.middleware(func(ctx context.Context, actor Actor) Decision {
		return g.RequirePlanTier(ctx, actor, required)
	})
}

// Require guards an endpoint with the full pipeline: role gate for the
// action, then usage gate for the feature. Mirrors the classic
// checkPermission -> checkUsageLimit -> handler chain as one middleware.
func (g *Guard) Require(resource rbac.Resource, action rbac.Action, f plan.Feature) func(http.Handler) http.Handler {
	return g.middleware(func(ctx context.Context, actor Actor) Decision {
		return g.Check(ctx, actor, resource, action, f)
	})
}

func (g *Guard) middleware(check func(context.Context, Actor) Decision) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
				return
			}

			d := check(r.Context(), actor)
			if !d.Allowed {
				writeJSON(w, d.Status.HTTPStatus(), d)
				return
			}

			ctx := context.WithValue(r.Context(), decisionCtxKey{}, d)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
