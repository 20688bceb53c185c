// Package authz implements the permission engine behind ports.Authorizer.
// Decisions come from a static role to permission table compiled at startup;
// anything not explicitly granted is denied.
package authz

import (
	"fmt"

	"github.com/jalonhq/jalon/internal/domain/rbac"
	"github.com/jalonhq/jalon/internal/ports"
)

// Engine answers permission checks from an in-memory grant table. It holds
// no mutable state after construction and is safe for concurrent use.
type Engine struct {
	grants map[rbac.Role]map[rbac.Permission]struct{}
}

// NewEngine builds the engine with the default grant table.
func NewEngine() *Engine {
	return &Engine{grants: defaultGrants()}
}

// Check reports whether role may perform action on resource. Unknown roles,
// resources, and actions all deny.
func (e *Engine) Check(role rbac.Role, resource rbac.Resource, action rbac.Action) ports.Decision {
	if !role.IsValid() {
		return ports.Decision{Reason: fmt.Sprintf("unknown role %q", role)}
	}
	perm := rbac.Permission{Resource: resource, Action: action}
	if _, ok := e.grants[role][perm]; !ok {
		return ports.Decision{Reason: fmt.Sprintf("role %q lacks %s", role, perm)}
	}
	return ports.Decision{Allowed: true}
}

func defaultGrants() map[rbac.Role]map[rbac.Permission]struct{} {
	read := []rbac.Permission{
		{Resource: rbac.ResourceProjects, Action: rbac.ActionRead},
		{Resource: rbac.ResourceStages, Action: rbac.ActionRead},
		{Resource: rbac.ResourceTasks, Action: rbac.ActionRead},
	}
	write := []rbac.Permission{
		{Resource: rbac.ResourceStages, Action: rbac.ActionCreate},
		{Resource: rbac.ResourceStages, Action: rbac.ActionUpdate},
		{Resource: rbac.ResourceTasks, Action: rbac.ActionCreate},
		{Resource: rbac.ResourceTasks, Action: rbac.ActionUpdate},
		{Resource: rbac.ResourceTasks, Action: rbac.ActionAssign},
	}
	manage := []rbac.Permission{
		{Resource: rbac.ResourceProjects, Action: rbac.ActionCreate},
		{Resource: rbac.ResourceProjects, Action: rbac.ActionUpdate},
		{Resource: rbac.ResourceStages, Action: rbac.ActionValidate},
	}
	admin := []rbac.Permission{
		{Resource: rbac.ResourceProjects, Action: rbac.ActionDelete},
		{Resource: rbac.ResourceStages, Action: rbac.ActionDelete},
		{Resource: rbac.ResourceTasks, Action: rbac.ActionDelete},
	}

	grants := map[rbac.Role]map[rbac.Permission]struct{}{
		rbac.RoleViewer:  permSet(read),
		rbac.RoleMember:  permSet(read, write),
		rbac.RoleManager: permSet(read, write, manage),
		rbac.RoleAdmin:   permSet(read, write, manage, admin),
	}
	return grants
}

func permSet(groups ...[]rbac.Permission) map[rbac.Permission]struct{} {
	set := make(map[rbac.Permission]struct{})
	for _, group := range groups {
		for _, p := range group {
			set[p] = struct{}{}
		}
	}
	return set
}
