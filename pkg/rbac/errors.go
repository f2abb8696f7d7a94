package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrInsufficientPermissions is returned when the catalog does not grant
	// the requested action. Unknown roles and resources resolve to this same
	// denial, never to a distinct fault.
	ErrInsufficientPermissions = errors.New("rbac.insufficient_permissions")

	// ErrUnknownRole is returned by VerifyRole for roles absent from the catalog.
	ErrUnknownRole = errors.New("rbac.unknown_role")

	// ErrRoleNotInContext is returned when no role is found in the context.
	ErrRoleNotInContext = errors.New("rbac.role_not_in_context")
)
