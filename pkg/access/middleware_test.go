package access_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmkit/pkg/access"
	"github.com/dmitrymomot/crmkit/pkg/plan"
	"github.com/dmitrymomot/crmkit/pkg/rbac"
	"github.com/dmitrymomot/crmkit/pkg/subscription"
)

// withActor makes the test router behave like one behind real
// authentication middleware.
func withActor(actor access.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(access.ContextWithActor(r.Context(), actor)))
		})
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func doRequest(t *testing.T, router chi.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestGuardMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("allowed request reaches the handler", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		actor := startTrial(t, store, plan.TierFree)
		guard := newGuard(t, store)

		r := chi.NewRouter()
		r.Use(withActor(actor))
		r.With(guard.Require(rbac.ResourceLeads, "create", plan.FeatureLeads)).Post("/leads", okHandler)

		rec := doRequest(t, r, http.MethodPost, "/leads")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("handler sees the granted scope", func(t *testing.T) {
		t.Parallel()
		guard := newGuard(t, nil)
		viewer := access.Actor{ID: uuid.New(), Role: rbac.RoleViewer}

		r := chi.NewRouter()
		r.Use(withActor(viewer))
		r.With(guard.RequirePermission(rbac.ResourceLeads, "read")).Get("/leads", func(w http.ResponseWriter, req *http.Request) {
			d, ok := access.DecisionFromContext(req.Context())
			require.True(t, ok)
			_, _ = w.Write([]byte(d.Scope))
		})

		rec := doRequest(t, r, http.MethodGet, "/leads")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "assigned", rec.Body.String())
	})

	t.Run("permission denial is a 403 with diagnostics", func(t *testing.T) {
		t.Parallel()
		guard := newGuard(t, nil)
		viewer := access.Actor{ID: uuid.New(), Role: rbac.RoleViewer}

		r := chi.NewRouter()
		r.Use(withActor(viewer))
		r.With(guard.RequirePermission(rbac.ResourceLeads, "delete")).Delete("/leads/{id}", okHandler)

		rec := doRequest(t, r, http.MethodDelete, "/leads/42")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var d access.Decision
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.False(t, d.Allowed)
		assert.Equal(t, access.StatusPermissionDenied, d.Status)
		assert.Equal(t, rbac.RoleViewer, d.Role)
		assert.Equal(t, []rbac.Action{"read_assigned"}, d.AvailableActions)
	})

	t.Run("quota denial is a 403 with limit and current", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		actor := startTrial(t, store, plan.TierFree)
		for range 10 {
			_, err := store.IncrementUsage(t.Context(), actor.ID, plan.FeatureLeads, 1)
			require.NoError(t, err)
		}
		guard := newGuard(t, store)

		r := chi.NewRouter()
		r.Use(withActor(actor))
		r.With(guard.RequireFeature(plan.FeatureLeads)).Post("/leads", okHandler)

		rec := doRequest(t, r, http.MethodPost, "/leads")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var d access.Decision
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, access.StatusQuotaExceeded, d.Status)
		assert.Equal(t, int64(10), d.Limit)
		assert.Equal(t, int64(10), d.Current)
		assert.Equal(t, "Lead limit reached", d.Message)
	})

	t.Run("plan gate denial includes both tiers", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemoryStore()
		actor := startTrial(t, store, plan.TierSilver)
		guard := newGuard(t, store)

		r := chi.NewRouter()
		r.Use(withActor(actor))
		r.With(guard.RequirePlan(plan.TierGold)).Get("/api/export", okHandler)

		rec := doRequest(t, r, http.MethodGet, "/api/export")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var d access.Decision
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, access.StatusPlanRequired, d.Status)
		assert.Equal(t, plan.TierSilver, d.CurrentPlan)
		assert.Equal(t, plan.TierGold, d.RequiredPlan)
	})

	t.Run("store failure is a 503", func(t *testing.T) {
		t.Parallel()
		guard := newGuard(t, failingStore{})
		actor := access.Actor{ID: uuid.New(), Role: rbac.RoleAdmin}

		r := chi.NewRouter()
		r.Use(withActor(actor))
		r.With(guard.RequireFeature(plan.FeatureAI)).Post("/ai", okHandler)

		rec := doRequest(t, r, http.MethodPost, "/ai")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("invalid feature tag is a 400", func(t *testing.T) {
		t.Parallel()
		guard := newGuard(t, nil)
		actor := access.Actor{ID: uuid.New(), Role: rbac.RoleAdmin}

		r := chi.NewRouter()
		r.Use(withActor(actor))
		r.With(guard.RequireFeature(plan.Feature("warp"))).Post("/warp", okHandler)

		rec := doRequest(t, r, http.MethodPost, "/warp")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing actor is a 401", func(t *testing.T) {
		t.Parallel()
		guard := newGuard(t, nil)

		r := chi.NewRouter()
		r.With(guard.RequirePermission(rbac.ResourceLeads, "read")).Get("/leads", okHandler)

		rec := doRequest(t, r, http.MethodGet, "/leads")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
