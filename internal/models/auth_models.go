package models

import "time"

// Role is the closed set of user roles. Authorization is decided per capability
// by the authz package, never by comparing role names at call sites.
type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleCaptain      Role = "CAPTAIN"
	RoleBilling      Role = "BILLING"
	RoleHotelManager Role = "HOTEL_MANAGER"
	RoleStaff        Role = "STAFF"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleOwner, RoleAdmin, RoleManager, RoleCaptain, RoleBilling, RoleHotelManager, RoleStaff}

// IsValidRole reports whether s names a known role.
func IsValidRole(s string) bool {
	for _, r := range AllRoles {
		if string(r) == s {
			return true
		}
	}
	return false
}

// User is a login account, optionally linked to a StaffMember for attendance.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         *string   `json:"name,omitempty" db:"name"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Role         Role      `json:"role" db:"role"`
	StaffID      *int64    `json:"staffId,omitempty" db:"staff_id"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Credentials for login request
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
