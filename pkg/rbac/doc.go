// Package rbac provides role-based access control for the CRM.
//
// A Catalog maps roles to the actions they may perform on each resource.
// Lookups are fail-closed: roles and resources not present in the catalog
// grant nothing. This is the documented default, not an accident of empty
// map lookups - new roles and resources may be introduced incrementally and
// must start with zero permissions.
//
// The Authorizer snapshots the catalog once at construction and is safe for
// concurrent use without locking.
//
// Basic usage:
//
//	source := rbac.NewInMemSource(rbac.DefaultCatalog())
//	auth, err := rbac.NewAuthorizer(ctx, source)
//
//	if err := auth.Can(rbac.RoleViewer, rbac.ResourceLeads, "delete"); err != nil {
//		// denied
//	}
package rbac
