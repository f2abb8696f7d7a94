package rbac

import "slices"

// Role classifies an actor for coarse-grained permission checks,
// independent of their subscription plan.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSalesManager Role = "sales_manager"
	RoleSalesRep     Role = "sales_rep"
	RoleViewer       Role = "viewer"
)

// Resource identifies a guarded part of the CRM.
type Resource string

const (
	ResourceLeads        Resource = "leads"
	ResourceUsers        Resource = "users"
	ResourceCompetitors  Resource = "competitors"
	ResourceAI           Resource = "ai"
	ResourceAnalytics    Resource = "analytics"
	ResourceSubscription Resource = "subscription"
	ResourceSystem       Resource = "system"
)

// Action is a named operation on a resource. Scoped variants carry an
// ownership suffix (e.g. "read_own", "assign_team") which the caller
// resolves against the records it operates on.
type Action string

// Catalog maps every role to the actions it may perform per resource.
// Lookups are fail-closed: a role or resource absent from the catalog
// grants nothing, it never signals an error.
type Catalog map[Role]map[Resource][]Action

// Actions returns the allowed actions for a role on a resource.
// Returns nil when the role or resource is not present.
func (c Catalog) Actions(role Role, resource Resource) []Action {
	perms, ok := c[role]
	if !ok {
		return nil
	}
	return perms[resource]
}

// Allows reports whether the catalog grants the action to the role on the resource.
func (c Catalog) Allows(role Role, resource Resource, action Action) bool {
	return slices.Contains(c.Actions(role, resource), action)
}

// clone returns a deep copy of the catalog so that callers cannot mutate
// shared state after the authorizer has been built.
func (c Catalog) clone() Catalog {
	cp := make(Catalog, len(c))
	for role, perms := range c {
		permsCopy := make(map[Resource][]Action, len(perms))
		for res, actions := range perms {
			permsCopy[res] = slices.Clone(actions)
		}
		cp[role] = permsCopy
	}
	return cp
}
