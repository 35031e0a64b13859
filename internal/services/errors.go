package services

import (
	"errors"
	"fmt"

	"hotel_pos_backend/internal/repositories"
)

// Error kinds. Every error returned by a service wraps exactly one of these so
// the HTTP layer can pick a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrPrecondition = errors.New("precondition failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// --- Custom Service Errors ---
var (
	ErrTableNotFound        = newError(ErrNotFound, "table not found")
	ErrOrderItemNotFound    = newError(ErrNotFound, "order item not found")
	ErrMenuItemNotFound     = newError(ErrNotFound, "menu item not found")
	ErrTransactionNotFound  = newError(ErrNotFound, "transaction not found")
	ErrRoomNotFound         = newError(ErrNotFound, "room not found")
	ErrBookingNotFound      = newError(ErrNotFound, "booking not found")
	ErrNoActiveBooking      = newError(ErrNotFound, "room has no active booking")
	ErrMaintenanceNotFound  = newError(ErrNotFound, "maintenance log not found")
	ErrStaffNotFound        = newError(ErrNotFound, "staff member not found")
	ErrStaffLinkNotFound    = newError(ErrNotFound, "user is not linked to a staff member")
	ErrNoActiveShift        = newError(ErrNotFound, "no active shift")
	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrInvalidGuestCount    = newError(ErrValidation, "guest count out of range")
	ErrInvalidStatus        = newError(ErrValidation, "invalid status")
	ErrInvalidRole          = newError(ErrValidation, "invalid role")
	ErrSameTable            = newError(ErrValidation, "source and target table are the same")
	ErrTableNotEmpty        = newError(ErrPrecondition, "table is not empty")
	ErrTableNotOccupied     = newError(ErrPrecondition, "table is not occupied")
	ErrRestaurantClosed     = newError(ErrPrecondition, "restaurant is closed")
	ErrMenuItemUnavailable  = newError(ErrPrecondition, "menu item is unavailable")
	ErrIllegalTransition    = newError(ErrPrecondition, "illegal order item status transition")
	ErrItemsNotAllServed    = newError(ErrPrecondition, "items not all served")
	ErrTableAnchored        = newError(ErrPrecondition, "order already sent to kitchen, table cannot be moved")
	ErrTargetTableNotEmpty  = newError(ErrPrecondition, "target table is not empty")
	ErrTakeawayNotMovable   = newError(ErrPrecondition, "takeaway orders cannot be moved")
	ErrTargetTableTooSmall  = newError(ErrPrecondition, "target table capacity is below the guest count")
	ErrNothingToSettle      = newError(ErrPrecondition, "table has no open order")
	ErrRoomNotAvailable     = newError(ErrPrecondition, "room is not available")
	ErrRoomStatusConflict   = newError(ErrPrecondition, "room status does not match its booking state")
	ErrBookingNotActive     = newError(ErrPrecondition, "booking is not active")
	ErrBookingRoomMismatch  = newError(ErrPrecondition, "booking does not belong to this room")
	ErrInvoiceNotIssued     = newError(ErrPrecondition, "booking has no invoice number")
	ErrInvalidCredentials   = newError(ErrValidation, "invalid username or password")
	ErrRoomHasActiveBooking = newError(ErrConflict, "room already has an active booking")
	ErrDuplicateInvoiceNo   = newError(ErrConflict, "invoice number already issued to another booking")
	ErrDuplicateRoomNumber  = newError(ErrConflict, "room number already exists")
	ErrDuplicateAttendance  = newError(ErrConflict, "attendance already recorded for this day")
	ErrUsernameExists       = newError(ErrConflict, "username already exists")
	ErrMenuItemInUse        = newError(ErrConflict, "menu item is referenced by open orders")
)

// repoError translates a repository failure. notFound replaces ErrNotFound,
// unique violations become conflicts, and anything else is passed on wrapped.
// A nil err stays nil.
func repoError(err error, notFound error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
