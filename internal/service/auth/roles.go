package auth

import "slices"

// Role names issued into the 'roles' access token claim
const (
	RoleAdmin   = "ADMIN"
	RoleAdvisor = "ADVISOR"
	RoleClient  = "CLIENT"
)

// Total lookup table from stored role id to named role set
// Any id outside the table resolves to the empty set: unknown ids must
// never fall through to a default role
var rolesByID = map[int64][]string{
	1: {RoleAdmin},
	2: {RoleAdvisor},
	3: {RoleClient},
}

// ResolveRoles maps a stored role id to the named role set
// Returns a fresh slice so callers cannot mutate the table
func ResolveRoles(roleID int64) []string {
	roles, ok := rolesByID[roleID]
	if !ok {
		return []string{}
	}
	return slices.Clone(roles)
}
