package access

import (
	"net/http"

	"github.com/dmitrymomot/crmkit/pkg/plan"
	"github.com/dmitrymomot/crmkit/pkg/rbac"
)

// Status classifies a decision's outcome. Every deny keeps its reason so
// the transport layer can map it to a response without re-deriving it.
type Status string

const (
	// StatusGranted marks an allow.
	StatusGranted Status = "granted"
	// StatusPermissionDenied means the role lacks the action.
	StatusPermissionDenied Status = "permission_denied"
	// StatusQuotaExceeded means a metered feature is at or over its limit.
	StatusQuotaExceeded Status = "quota_exceeded"
	// StatusPlanRequired means the feature needs a higher plan tier.
	StatusPlanRequired Status = "plan_required"
	// StatusSubscriptionMissing means the actor has no subscription record.
	// This is a data inconsistency and a hard deny, never "free tier".
	StatusSubscriptionMissing Status = "subscription_missing"
	// StatusInvalidInput means the caller passed an unknown tag (plan,
	// feature). Surfaced as a client error, never silently defaulted.
	StatusInvalidInput Status = "invalid_input"
	// StatusServiceError means the subscription store failed. The decision
	// is still a deny (fail-closed); this is the only retryable status.
	StatusServiceError Status = "service_error"
)

// HTTPStatus maps the decision status to the response code the original
// API contract uses: denials are 403, bad tags 400, store failures 503.
func (s Status) HTTPStatus() int {
	switch s {
	case StatusGranted:
		return http.StatusOK
	case StatusInvalidInput:
		return http.StatusBadRequest
	case StatusServiceError:
		return http.StatusServiceUnavailable
	}
	return http.StatusForbidden
}

// Decision is the verdict for one access check. Diagnostic fields are
// populated per gate: the role gate fills Role/AvailableActions, the
// plan gate CurrentPlan/RequiredPlan, the usage gate Limit/Current.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`

	Role             rbac.Role     `json:"role,omitempty"`
	AvailableActions []rbac.Action `json:"available_actions,omitempty"`

	CurrentPlan  plan.Tier `json:"current_plan,omitempty"`
	RequiredPlan plan.Tier `json:"required_plan,omitempty"`

	Limit   int64 `json:"limit,omitempty"`
	Current int64 `json:"current,omitempty"`

	// Scope is set on role-gate allows: the narrowest record scope the
	// actor's catalog entry grants for the action.
	Scope Scope `json:"scope,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true, Status: StatusGranted, Message: "Access granted"}
}

func deny(status Status, message string) Decision {
	return Decision{Allowed: false, Status: status, Message: message}
}
