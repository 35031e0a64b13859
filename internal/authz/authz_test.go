package authz

import (
	"testing"

	"hotel_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role models.Role
		cap  Capability
		want bool
	}{
		{models.RoleOwner, CapManageUsers, true},
		{models.RoleAdmin, CapManageSettings, true},
		{models.RoleManager, CapManageSettings, true},
		{models.RoleManager, CapManageUsers, false},
		{models.RoleCaptain, CapSettleTables, true},
		{models.RoleCaptain, CapRoomBilling, false},
		{models.RoleBilling, CapRoomBilling, true},
		{models.RoleBilling, CapServeTables, false},
		{models.RoleHotelManager, CapFrontDesk, true},
		{models.RoleHotelManager, CapServeTables, false},
		{models.RoleStaff, CapKitchen, true},
		{models.RoleStaff, CapSettleTables, false},
		{models.Role("GUEST"), CapViewMenu, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.cap), "%s / %s", tc.role, tc.cap)
	}
}

func TestEveryRoleCanKeepAttendance(t *testing.T) {
	for _, role := range models.AllRoles {
		assert.True(t, Allowed(role, CapOwnShift), string(role))
		assert.True(t, Allowed(role, CapViewMenu), string(role))
	}
}
