package models

import "time"

// StaffMember is an employee whose attendance is tracked.
type StaffMember struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"` // free-text job title, e.g. "Chef"
	Avatar    string    `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AttendanceStatus is the day's attendance mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLeave   AttendanceStatus = "LEAVE"
	AttendanceLate    AttendanceStatus = "LATE"
)

// IsValidAttendanceStatus reports whether s names a known attendance status.
func IsValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave, AttendanceLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one staff member's day. (StaffID, Date) is unique and
// Date is always local midnight.
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id"`
	StaffID   int64            `json:"staffId" db:"staff_id"`
	Date      time.Time        `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status"`
	CheckIn   *time.Time       `json:"checkIn,omitempty" db:"check_in"`
	CheckOut  *time.Time       `json:"checkOut,omitempty" db:"check_out"`
	Staff     *StaffMember     `json:"staff,omitempty"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the shift has started and not yet ended.
func (r *AttendanceRecord) IsActive() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}
