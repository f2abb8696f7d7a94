package rbac

import (
	"context"
	"slices"
)

// Authorizer answers role-based permission checks against an immutable
// catalog snapshot taken at construction time.
type Authorizer interface {
	// Can checks if a role may perform the action on the resource.
	// Returns ErrInsufficientPermissions on denial; unknown roles and
	// resources deny the same way (fail-closed).
	Can(role Role, resource Resource, action Action) error

	// CanAny checks if a role may perform any of the provided actions on the resource.
	CanAny(role Role, resource Resource, actions ...Action) error

	// CanFromContext checks the role stored in the context.
	CanFromContext(ctx context.Context, resource Resource, action Action) error

	// AvailableActions returns the actions actually granted to the role on
	// the resource, for diagnostic responses. Nil when nothing is granted.
	AvailableActions(role Role, resource Resource) []Action

	// VerifyRole returns ErrUnknownRole if the role is not in the catalog.
	VerifyRole(role Role) error

	// Roles returns all catalog roles in lexical order.
	Roles() []Role
}

// RoleSource provides the permission catalog.
type RoleSource interface {
	Load(ctx context.Context) (Catalog, error)
}

type authorizer struct {
	// catalog is treated as immutable after construction; thread safety
	// rests on that invariant.
	catalog Catalog
	roles   []Role
}

// NewAuthorizer builds an Authorizer from the catalog provided by source.
// The catalog is deep-copied so later mutations of the source's data
// cannot affect decisions.
func NewAuthorizer(ctx context.Context, source RoleSource) (Authorizer, error) {
	catalog, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = make(Catalog)
	}
	catalog = catalog.clone()

	roles := make([]Role, 0, len(catalog))
	for role := range catalog {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	return &authorizer{catalog: catalog, roles: roles}, nil
}

func (a *authorizer) Can(role Role, resource Resource, action Action) error {
	if !a.catalog.Allows(role, resource, action) {
		return ErrInsufficientPermissions
	}
	return nil
}

func (a *authorizer) CanAny(role Role, resource Resource, actions ...Action) error {
	granted := a.catalog.Actions(role, resource)
	for _, action := range actions {
		if slices.Contains(granted, action) {
			return nil
		}
	}
	return ErrInsufficientPermissions
}

func (a *authorizer) CanFromContext(ctx context.Context, resource Resource, action Action) error {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return ErrRoleNotInContext
	}
	return a.Can(role, resource, action)
}

func (a *authorizer) AvailableActions(role Role, resource Resource) []Action {
	return slices.Clone(a.catalog.Actions(role, resource))
}

func (a *authorizer) VerifyRole(role Role) error {
	if _, ok := a.catalog[role]; !ok {
		return ErrUnknownRole
	}
	return nil
}

func (a *authorizer) Roles() []Role {
	return a.roles
}
