// Package rbac defines the closed role enumeration and the typed
// (resource, action) permission keys used by the authorization engine.
// Keeping the key types closed makes an unknown combination an exhaustively
// testable case instead of a silent string mismatch at runtime.
package rbac

// Role is the closed set of roles a user can hold. A user has exactly one.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

// IsValid returns true if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember, RoleViewer:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Resource identifies a protected entity kind.
type Resource string

const (
	ResourceProjects Resource = "projects"
	ResourceStages   Resource = "stages"
	ResourceTasks    Resource = "tasks"
)

// Action identifies an operation on a resource.
type Action string

const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionValidate Action = "validate"
	ActionAssign   Action = "assign"
)

// Permission is a typed (resource, action) pair, usable as a map key.
type Permission struct {
	Resource Resource
	Action   Action
}

// String implements fmt.Stringer, e.g. "stages:validate".
func (p Permission) String() string {
	return string(p.Resource) + ":" + string(p.Action)
}
