package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/rbac"
)

// Actor is the authenticated principal a decision is made for. The HTTP
// layer authenticates the request and supplies the actor; this package
// never inspects credentials.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role rbac.Role `json:"role"`
}

type actorCtxKey struct{}

// ContextWithActor returns a context carrying the authenticated actor.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext extracts the actor stored by ContextWithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	return actor, ok
}
