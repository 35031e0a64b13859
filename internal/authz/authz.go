// Package authz maps roles to the capabilities they hold. Handlers and routes
// ask for a capability, never for a role name.
package authz

import "hotel_pos_backend/internal/models"

// Capability names one guarded area of the API.
type Capability string

const (
	CapViewTables     Capability = "tables:view"
	CapServeTables    Capability = "tables:serve"    // open, order, send to kitchen, call waiter
	CapKitchen        Capability = "tables:kitchen"  // advance order line status
	CapSettleTables   Capability = "tables:settle"   // request bill, checkout
	CapManageTables   Capability = "tables:manage"   // create, resize, delete tables
	CapViewMenu       Capability = "menu:view"
	CapManageMenu     Capability = "menu:manage"
	CapViewHistory    Capability = "transactions:view"
	CapViewRooms      Capability = "rooms:view"
	CapFrontDesk      Capability = "rooms:front_desk" // check in, service items, maintenance reports
	CapRoomBilling    Capability = "rooms:billing"    // checkout, invoices, billing details
	CapManageRooms    Capability = "rooms:manage"
	CapOwnShift       Capability = "attendance:self"
	CapManageStaff    Capability = "staff:manage"
	CapManageUsers    Capability = "users:manage"
	CapManageSettings Capability = "settings:manage"
)

var (
	restaurantFloor = []Capability{CapViewTables, CapServeTables, CapKitchen, CapViewMenu}
	everyone        = []Capability{CapOwnShift, CapViewMenu}
)

var grants = map[models.Role][]Capability{
	models.RoleOwner: nil, // all
	models.RoleAdmin: nil, // all
	models.RoleManager: join(restaurantFloor, everyone, []Capability{
		CapSettleTables, CapManageTables, CapManageMenu, CapViewHistory,
		CapViewRooms, CapFrontDesk, CapRoomBilling, CapManageRooms,
		CapManageStaff, CapManageSettings,
	}),
	models.RoleCaptain: join(restaurantFloor, everyone, []Capability{CapSettleTables}),
	models.RoleBilling: join(everyone, []Capability{
		CapViewTables, CapSettleTables, CapViewHistory, CapViewRooms, CapRoomBilling,
	}),
	models.RoleHotelManager: join(everyone, []Capability{
		CapViewRooms, CapFrontDesk, CapRoomBilling, CapManageRooms,
	}),
	models.RoleStaff: join(restaurantFloor, everyone),
}

func join(sets ...[]Capability) []Capability {
	var out []Capability
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// Allowed reports whether role holds capability. Unknown roles hold nothing.
func Allowed(role models.Role, capability Capability) bool {
	caps, ok := grants[role]
	if !ok {
		return false
	}
	if caps == nil {
		return true
	}
	for _, c := range caps {
		if c == capability {
			return true
		}
	}
	return false
}
