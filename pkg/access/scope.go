package access

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/rbac"
)

// Scope narrows an allowed action to a subset of records. The permission
// catalog encodes scopes as action suffixes (read_own, read_team,
// read_assigned); an unsuffixed action applies to all records.
type Scope string

const (
	// ScopeAll covers every record of the resource.
	ScopeAll Scope = "all"
	// ScopeTeam covers records belonging to the actor's team.
	ScopeTeam Scope = "team"
	// ScopeAssigned covers records assigned to the actor.
	ScopeAssigned Scope = "assigned"
	// ScopeOwn covers records the actor created.
	ScopeOwn Scope = "own"
)

// scopeBreadth orders scopes from narrowest to widest. Decisions carry
// the narrowest scope that still grants the action (least privilege).
var scopeBreadth = map[Scope]int{
	ScopeOwn:      0,
	ScopeAssigned: 1,
	ScopeTeam:     2,
	ScopeAll:      3,
}

// NarrowerThan reports whether s covers fewer records than other.
func (s Scope) NarrowerThan(other Scope) bool {
	return scopeBreadth[s] < scopeBreadth[other]
}

// SplitAction separates a catalog action into its base action and scope.
// "read_own" becomes ("read", ScopeOwn); an unsuffixed action keeps its
// name and maps to ScopeAll.
func SplitAction(action rbac.Action) (rbac.Action, Scope) {
	s := string(action)
	for _, scope := range []Scope{ScopeOwn, ScopeTeam, ScopeAssigned} {
		suffix := "_" + string(scope)
		if strings.HasSuffix(s, suffix) {
			return rbac.Action(strings.TrimSuffix(s, suffix)), scope
		}
	}
	return action, ScopeAll
}

// OwnershipResolver is the contract the CRUD layer fulfils when a
// decision grants a non-global scope: it answers whether one concrete
// record falls inside the scope for the actor. The catalog only declares
// that a scope applies; what counts as "own", "team" or "assigned" is
// data the record store knows.
type OwnershipResolver interface {
	// Within reports whether the record is inside the actor's scope.
	// ScopeAll is never passed; callers short-circuit it.
	Within(ctx context.Context, actor Actor, resource rbac.Resource, recordID uuid.UUID, scope Scope) (bool, error)
}
