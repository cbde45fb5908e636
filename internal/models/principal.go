package models

import "slices"

// RolePrefix namespaces token roles for downstream authorization checks
const RolePrefix = "ROLE_"

// Principal is the authenticated caller derived from a validated access token
// It carries no reference to stored state: everything comes from the token claims
type Principal struct {
	// Subject is the email claim, or the token subject if the email claim is absent
	Subject string

	// Authorities are the token roles, each prefixed with RolePrefix
	Authorities []string
}

// HasRole reports whether the principal carries the given bare role name
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Authorities, RolePrefix+role)
}
