package rbac

import "context"

// roleCtxKey is the context key for storing the actor's role.
type roleCtxKey struct{}

// ContextWithRole stores the actor's role in the context.
func ContextWithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext retrieves the actor's role from the context.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(Role)
	return role, ok
}
