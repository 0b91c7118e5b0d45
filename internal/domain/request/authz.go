package request

import "github.com/wforce/workforce-backend-go/internal/domain/user"

// ResolutionPolicy says how a permitted (request type, resolver role) pair is
// scoped. DepartmentScoped means the resolver may only touch requests from
// employees of their own department, re-validated by the engine even when the
// transport layer already gated the route by role.
type ResolutionPolicy struct {
	DepartmentScoped bool
}

// resolutionRules is the static authorization table: absence of an entry
// means the role may not resolve that request type at all.
var resolutionRules = map[Type]map[user.Role]ResolutionPolicy{
	TypeLeave: {
		user.RoleDepartmentManager: {DepartmentScoped: true},
		user.RoleAdmin:             {},
	},
	TypeAdvance: {
		user.RoleHR:    {},
		user.RoleAdmin: {},
	},
}

// ResolverAllowed reports whether role may resolve requests of type t and, if
// so, under which scope.
func ResolverAllowed(t Type, role user.Role) (ResolutionPolicy, bool) {
	policy, ok := resolutionRules[t][role]
	return policy, ok
}
