package ports

import (
	"context"

	"github.com/jalonhq/jalon/internal/domain/rbac"
)

// Decision is the outcome of a permission check. Reason is populated on
// denials for logging; it is never shown to end users.
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorizer decides whether a role may perform an action on a resource.
// The decision is a pure function of its inputs: deterministic, free of
// side effects, and fail-closed for unknown roles or permission keys.
// Every workflow that mutates protected state consults this port before
// mutating; it is the single authorization chokepoint.
type Authorizer interface {
	Check(role rbac.Role, resource rbac.Resource, action rbac.Action) Decision
}

// RoleResolver resolves a user's single role. Implemented by the user store
// adapter; the permission table itself stays behind the Authorizer.
type RoleResolver interface {
	// RoleOf returns the role of the given user.
	// Returns domain.ErrNotFound if the user is unknown.
	RoleOf(ctx context.Context, userID string) (rbac.Role, error)
}
