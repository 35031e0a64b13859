package models

import "time"

// RoomType is the hotel room category.
type RoomType string

const (
	RoomTypeDeluxe       RoomType = "DELUXE"
	RoomTypePremiumSuite RoomType = "PREMIUM_SUITE"
	RoomTypeRoyalSuite   RoomType = "ROYAL_SUITE"
)

// IsValidRoomType reports whether s names a known room type.
func IsValidRoomType(s string) bool {
	switch RoomType(s) {
	case RoomTypeDeluxe, RoomTypePremiumSuite, RoomTypeRoyalSuite:
		return true
	default:
		return false
	}
}

// RoomStatus is the housekeeping/occupancy state of a room.
type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "AVAILABLE"
	RoomStatusOccupied  RoomStatus = "OCCUPIED"
	RoomStatusCheckout  RoomStatus = "CHECKOUT" // needs housekeeping before it is available again
)

// IsValidRoomStatus reports whether s names a known room status.
func IsValidRoomStatus(s string) bool {
	switch RoomStatus(s) {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusCheckout:
		return true
	default:
		return false
	}
}

// BookingStatus is the lifecycle state of a room stay.
type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "BOOKED"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// ActiveBookingStatuses are the states that hold a room.
var ActiveBookingStatuses = []BookingStatus{BookingStatusBooked, BookingStatusCheckedIn}

// IsActive reports whether the booking currently holds its room.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusBooked || s == BookingStatusCheckedIn
}

// ServiceCategory distinguishes taxed food from GST-inclusive amenities.
type ServiceCategory string

const (
	ServiceCategoryFood    ServiceCategory = "FOOD"
	ServiceCategoryAmenity ServiceCategory = "AMENITY"
)

// IsValidServiceCategory reports whether s names a known service category.
func IsValidServiceCategory(s string) bool {
	return ServiceCategory(s) == ServiceCategoryFood || ServiceCategory(s) == ServiceCategoryAmenity
}

// MaintenanceStatus is the state of a maintenance ticket.
type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "OPEN"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusResolved   MaintenanceStatus = "RESOLVED"
)

// IsValidMaintenanceStatus reports whether s names a known maintenance status.
func IsValidMaintenanceStatus(s string) bool {
	switch MaintenanceStatus(s) {
	case MaintenanceStatusOpen, MaintenanceStatusInProgress, MaintenanceStatusResolved:
		return true
	default:
		return false
	}
}

// Room is a physical hotel unit.
type Room struct {
	ID             int64         `json:"id" db:"id"`
	RoomNumber     string        `json:"roomNumber" db:"room_number"`
	Type           RoomType      `json:"type" db:"type"`
	Floor          int           `json:"floor" db:"floor"`
	Capacity       int           `json:"capacity" db:"capacity"`
	PriceNonAC     float64       `json:"priceNonAC" db:"price_non_ac"`
	PriceAC        float64       `json:"priceAC" db:"price_ac"`
	Status         RoomStatus    `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
	CurrentBooking *RoomBooking  `json:"currentBooking,omitempty"`
	Bookings       []RoomBooking `json:"bookings,omitempty"`
}

// NightlyRate returns the rate for the AC choice.
func (r *Room) NightlyRate(isAC bool) float64 {
	if isAC {
		return r.PriceAC
	}
	return r.PriceNonAC
}

// BillingDetails is the invoice metadata of a booking. It stays editable after checkout.
type BillingDetails struct {
	InvoiceNo           *int64  `json:"invoiceNo,omitempty" db:"invoice_no"`
	GSTEnabled          *bool   `json:"gstEnabled,omitempty" db:"gst_enabled"`
	CompanyName         *string `json:"companyName,omitempty" db:"company_name"`
	CompanyAddressLine1 *string `json:"companyAddressLine1,omitempty" db:"company_address_line1"`
	CompanyAddressLine2 *string `json:"companyAddressLine2,omitempty" db:"company_address_line2"`
	CustomerGSTIN       *string `json:"customerGstin,omitempty" db:"customer_gstin"`
}

// RoomBooking is one stay in a room.
type RoomBooking struct {
	ID         int64         `json:"id" db:"id"`
	RoomID     int64         `json:"roomId" db:"room_id"`
	GuestName  string        `json:"guestName" db:"guest_name"`
	GuestPhone string        `json:"guestPhone" db:"guest_phone"`
	Adults     int           `json:"adults" db:"adults"`
	Children   int           `json:"children" db:"children"`
	IsAC       bool          `json:"isAC" db:"is_ac"`
	CheckIn    time.Time     `json:"checkIn" db:"check_in"`
	CheckOut   *time.Time    `json:"checkOut,omitempty" db:"check_out"`
	Status     BookingStatus `json:"status" db:"status"`
	// Frozen at checkout; zero while the stay is open.
	TotalAmount float64 `json:"totalAmount" db:"total_amount"`

	PricePerNightMRP     *float64 `json:"pricePerNightMrp,omitempty" db:"price_per_night_mrp"`
	PricePerNightSelling *float64 `json:"pricePerNightSelling,omitempty" db:"price_per_night_selling"`
	PricePerNightBilled  *float64 `json:"pricePerNightBilled,omitempty" db:"price_per_night_billed"`

	ExtraBeddingIncluded       bool     `json:"extraBeddingIncluded" db:"extra_bedding_included"`
	ExtraBeddingChargePerNight *float64 `json:"extraBeddingChargePerNight,omitempty" db:"extra_bedding_charge_per_night"`

	BillingDetails

	Items     []RoomServiceItem `json:"items"`
	Room      *Room             `json:"room,omitempty"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// RoomServiceItem is a food or amenity charge attached to a booking.
type RoomServiceItem struct {
	ID        int64           `json:"id" db:"id"`
	BookingID int64           `json:"bookingId" db:"booking_id"`
	Name      string          `json:"name" db:"name"`
	Category  ServiceCategory `json:"category" db:"category"`
	Price     float64         `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
}

// RoomMaintenanceLog is an issue ticket raised against a room.
type RoomMaintenanceLog struct {
	ID         int64             `json:"id" db:"id"`
	RoomID     int64             `json:"roomId" db:"room_id"`
	RoomNumber string            `json:"roomNumber"`
	Issue      string            `json:"issue" db:"issue"`
	Notes      *string           `json:"notes,omitempty" db:"notes"`
	Status     MaintenanceStatus `json:"status" db:"status"`
	ReportedAt time.Time         `json:"reportedAt" db:"reported_at"`
	ResolvedAt *time.Time        `json:"resolvedAt" db:"resolved_at"`
}
