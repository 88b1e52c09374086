package authz_test

import (
	"testing"

	"globalven/internal/authz"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, authz.RoleAdmin, authz.ParseRole("admin"))
	assert.Equal(t, authz.RoleManager, authz.ParseRole(" MANAGER "))
	assert.Equal(t, authz.RoleUser, authz.ParseRole(""))
	assert.Equal(t, authz.RoleUser, authz.ParseRole("GUEST"))
}

func TestAuthorize_CapabilityTable(t *testing.T) {
	svc, err := authz.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     authz.Role
		resource string
		action   string
		allowed  bool
	}{
		{"admin can purge", authz.RoleAdmin, "transfers", "purge", true},
		{"manager cannot purge", authz.RoleManager, "transfers", "purge", false},
		{"manager can approve", authz.RoleManager, "transfers", "approve", true},
		{"finance cannot approve", authz.RoleFinance, "transfers", "approve", false},
		{"finance can create", authz.RoleFinance, "transfers", "create", true},
		{"hr has no transfer access", authz.RoleHR, "transfers", "read", false},
		{"hr manages rates", authz.RoleHR, "rates", "manage", true},
		{"user reads transfers", authz.RoleUser, "transfers", "read", true},
		{"user cannot create", authz.RoleUser, "transfers", "create", false},
		{"super admin full access", authz.RoleSuperAdmin, "glref", "manage", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Authorize(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
