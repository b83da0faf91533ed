package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
)

func TestStaticRoleMapper_Map(t *testing.T) {
	m := StaticRoleMapper{AdminGroup: "marketplace-admins"}

	tests := []struct {
		name   string
		groups []string
		want   domainauth.Role
	}{
		{"plain match", []string{"staff", "marketplace-admins"}, domainauth.RoleAdmin},
		{"case insensitive", []string{"Marketplace-Admins"}, domainauth.RoleAdmin},
		{"directory dn", []string{"CN=marketplace-admins,OU=Groups,DC=example,DC=com"}, domainauth.RoleAdmin},
		{"no match", []string{"staff"}, domainauth.RoleGuest},
		{"no groups", nil, domainauth.RoleGuest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Map(tt.groups))
		})
	}

	assert.Equal(t, domainauth.RoleGuest, StaticRoleMapper{}.Map([]string{"marketplace-admins"}))
}
