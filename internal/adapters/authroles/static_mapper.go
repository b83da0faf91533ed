// Package authroles maps IdP groups onto console roles.
package authroles

import (
	"strings"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
)

// StaticRoleMapper grants admin to members of AdminGroup. Staff SSO has no contractor or
// customer identities, so everyone else is a guest.
type StaticRoleMapper struct {
	AdminGroup string
}

// Map implements ports.RoleMapper. Matching ignores case and accepts a directory DN whose
// first CN equals the group.
func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	want := strings.TrimSpace(m.AdminGroup)
	if want == "" {
		return domainauth.RoleGuest
	}
	for _, g := range groups {
		if strings.EqualFold(groupName(g), want) {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleGuest
}

// groupName extracts "admins" from "CN=admins,OU=Groups,DC=example,DC=com".
func groupName(g string) string {
	g = strings.TrimSpace(g)
	if len(g) > 3 && strings.EqualFold(g[:3], "cn=") {
		g = g[3:]
		if i := strings.IndexByte(g, ','); i >= 0 {
			g = g[:i]
		}
	}
	return g
}
