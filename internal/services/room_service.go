package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"hotel_pos_backend/internal/billing"
	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

// --- Data Transfer Objects (DTOs) ---

// CreateRoomRequest adds a hotel room.
type CreateRoomRequest struct {
	RoomNumber string  `json:"roomNumber" binding:"required" validate:"required,max=20"`
	Type       string  `json:"type" binding:"required" validate:"oneof=DELUXE PREMIUM_SUITE ROYAL_SUITE"`
	Floor      int     `json:"floor" validate:"gte=0"`
	Capacity   int     `json:"capacity" validate:"min=1,max=20"`
	PriceNonAC float64 `json:"priceNonAC" validate:"gte=0"`
	PriceAC    float64 `json:"priceAC" validate:"gte=0"`
}

// UpdateRoomRequest changes room attributes. Absent fields are left alone.
type UpdateRoomRequest struct {
	RoomNumber *string  `json:"roomNumber" validate:"omitempty,min=1,max=20"`
	Type       *string  `json:"type" validate:"omitempty,oneof=DELUXE PREMIUM_SUITE ROYAL_SUITE"`
	Status     *string  `json:"status" validate:"omitempty,oneof=AVAILABLE OCCUPIED CHECKOUT"`
	Floor      *int     `json:"floor" validate:"omitempty,gte=0"`
	Capacity   *int     `json:"capacity" validate:"omitempty,min=1,max=20"`
	PriceNonAC *float64 `json:"priceNonAC" validate:"omitempty,gte=0"`
	PriceAC    *float64 `json:"priceAC" validate:"omitempty,gte=0"`
}

// CheckInRequest starts a stay. The AC choice fixes the nightly rate for the whole stay.
type CheckInRequest struct {
	GuestName  string `json:"guestName" binding:"required" validate:"required,max=255"`
	GuestPhone string `json:"guestPhone" validate:"max=50"`
	Adults     *int   `json:"adults" validate:"omitempty,min=1,max=20"`
	Children   int    `json:"children" validate:"min=0,max=20"`
	IsAC       bool   `json:"isAC"`

	PricePerNightMRP           *float64 `json:"pricePerNightMrp" validate:"omitempty,gte=0"`
	PricePerNightSelling       *float64 `json:"pricePerNightSelling" validate:"omitempty,gte=0"`
	PricePerNightBilled        *float64 `json:"pricePerNightBilled" validate:"omitempty,gte=0"`
	ExtraBeddingIncluded       bool     `json:"extraBeddingIncluded"`
	ExtraBeddingChargePerNight *float64 `json:"extraBeddingChargePerNight" validate:"omitempty,gte=0"`
}

// AddServiceItemRequest charges food or an amenity to the room's active stay.
type AddServiceItemRequest struct {
	Name     string  `json:"name" binding:"required" validate:"required,max=255"`
	Category string  `json:"category" binding:"required" validate:"oneof=FOOD AMENITY"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"min=1,max=1000"`
}

// BillingDetailsRequest carries the invoice metadata. Blank strings clear a field.
type BillingDetailsRequest struct {
	InvoiceNo           *int64  `json:"invoiceNo" validate:"omitempty,min=1"`
	GSTEnabled          *bool   `json:"gstEnabled"`
	CompanyName         *string `json:"companyName" validate:"omitempty,max=255"`
	CompanyAddressLine1 *string `json:"companyAddressLine1" validate:"omitempty,max=255"`
	CompanyAddressLine2 *string `json:"companyAddressLine2" validate:"omitempty,max=255"`
	CustomerGSTIN       *string `json:"customerGstin" validate:"omitempty,max=20"`
}

// ActiveItemsResult lists the service items of a room's active stay. BookingID
// is nil when the room has no active stay.
type ActiveItemsResult struct {
	BookingID *int64                   `json:"bookingId"`
	Items     []models.RoomServiceItem `json:"items"`
}

// CheckoutResult is the settled booking with its price breakdown. Invoice is
// set when the booking has an invoice number.
type CheckoutResult struct {
	Booking *models.RoomBooking    `json:"booking"`
	Totals  billing.CheckoutTotals `json:"totals"`
	Invoice *billing.Invoice       `json:"invoice,omitempty"`
}

// --- RoomService Interface ---

// RoomService is the room booking and billing engine.
type RoomService interface {
	GetRooms() ([]models.Room, error)
	GetRoom(roomID int64) (*models.Room, error)
	CreateRoom(req CreateRoomRequest) (*models.Room, error)
	UpdateRoom(roomID int64, req UpdateRoomRequest) (*models.Room, error)

	CheckIn(roomID int64, req CheckInRequest) (*models.RoomBooking, error)
	AddServiceItem(roomID int64, req AddServiceItemRequest) (*models.RoomServiceItem, error)
	ListActiveItems(roomID int64) (*ActiveItemsResult, error)
	Checkout(roomID, bookingID int64, req BillingDetailsRequest) (*CheckoutResult, error)
	CancelBooking(bookingID int64) (*models.RoomBooking, error)
	UpdateBillingDetails(bookingID int64, req BillingDetailsRequest) (*models.RoomBooking, error)
	GetInvoice(bookingID int64) (*billing.Invoice, error)
	GetHistory(page, pageSize int) ([]models.RoomBooking, int, error)
}

// --- roomService Implementation ---
type roomService struct {
	runner      repositories.TxRunner
	roomRepo    repositories.RoomRepository
	bookingRepo repositories.BookingRepository
	settingRepo repositories.SettingRepository
	now         func() time.Time
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(
	runner repositories.TxRunner,
	roomRepo repositories.RoomRepository,
	bookingRepo repositories.BookingRepository,
	settingRepo repositories.SettingRepository,
) RoomService {
	return &roomService{
		runner:      runner,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		settingRepo: settingRepo,
		now:         time.Now,
	}
}

func (s *roomService) GetRooms() ([]models.Room, error) {
	rooms, err := s.roomRepo.GetRooms(s.runner.Executor())
	if err != nil {
		return nil, repoError(err, nil, "listing rooms")
	}
	return rooms, nil
}

func (s *roomService) GetRoom(roomID int64) (*models.Room, error) {
	executor := s.runner.Executor()
	room, err := s.roomRepo.GetRoomByID(executor, roomID, false)
	if err != nil {
		return nil, repoError(err, ErrRoomNotFound, "getting room")
	}

	bookings, _, err := s.bookingRepo.GetBookings(executor, repositories.BookingFilters{RoomID: &roomID})
	if err != nil {
		return nil, repoError(err, nil, "listing room bookings")
	}
	room.Bookings = bookings
	for i := range bookings {
		if bookings[i].Status.IsActive() {
			room.CurrentBooking = &bookings[i]
			break
		}
	}
	return room, nil
}

func (s *roomService) CreateRoom(req CreateRoomRequest) (*models.Room, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	room := &models.Room{
		RoomNumber: req.RoomNumber,
		Type:       models.RoomType(req.Type),
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		PriceNonAC: req.PriceNonAC,
		PriceAC:    req.PriceAC,
		Status:     models.RoomStatusAvailable,
	}
	if err := s.roomRepo.CreateRoom(s.runner.Executor(), room); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, req.RoomNumber)
		}
		return nil, repoError(err, nil, "creating room")
	}
	log.Info().Int64("room_id", room.ID).Str("room_number", room.RoomNumber).Msg("Room created")
	return room, nil
}

func (s *roomService) UpdateRoom(roomID int64, req UpdateRoomRequest) (*models.Room, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var room *models.Room
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		room, err = s.roomRepo.GetRoomByID(tx, roomID, true)
		if err != nil {
			return err
		}

		if req.Status != nil {
			next := models.RoomStatus(*req.Status)
			active, err := s.bookingRepo.GetActiveBookingByRoomID(tx, roomID, true)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			hasActive := err == nil && active != nil
			if (next == models.RoomStatusOccupied) != hasActive {
				return fmt.Errorf("%w: cannot mark room %s %s", ErrRoomStatusConflict, room.RoomNumber, next)
			}
			room.Status = next
		}
		if req.RoomNumber != nil {
			room.RoomNumber = *req.RoomNumber
		}
		if req.Type != nil {
			room.Type = models.RoomType(*req.Type)
		}
		if req.Floor != nil {
			room.Floor = *req.Floor
		}
		if req.Capacity != nil {
			room.Capacity = *req.Capacity
		}
		if req.PriceNonAC != nil {
			room.PriceNonAC = *req.PriceNonAC
		}
		if req.PriceAC != nil {
			room.PriceAC = *req.PriceAC
		}
		if err := s.roomRepo.UpdateRoom(tx, room); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, room.RoomNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, repoError(err, ErrRoomNotFound, "updating room")
	}
	log.Info().Int64("room_id", roomID).Str("status", string(room.Status)).Msg("Room updated")
	return room, nil
}

func (s *roomService) CheckIn(roomID int64, req CheckInRequest) (*models.RoomBooking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	adults := 1
	if req.Adults != nil {
		adults = *req.Adults
	}
	booking := &models.RoomBooking{
		RoomID:                     roomID,
		GuestName:                  req.GuestName,
		GuestPhone:                 req.GuestPhone,
		Adults:                     adults,
		Children:                   req.Children,
		IsAC:                       req.IsAC,
		Status:                     models.BookingStatusCheckedIn,
		PricePerNightMRP:           req.PricePerNightMRP,
		PricePerNightSelling:       req.PricePerNightSelling,
		PricePerNightBilled:        req.PricePerNightBilled,
		ExtraBeddingIncluded:       req.ExtraBeddingIncluded,
		ExtraBeddingChargePerNight: req.ExtraBeddingChargePerNight,
		Items:                      []models.RoomServiceItem{},
	}

	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		room, err := s.roomRepo.GetRoomByID(tx, roomID, true)
		if err != nil {
			return err
		}
		if room.Status != models.RoomStatusAvailable {
			return fmt.Errorf("%w: room %s is %s", ErrRoomNotAvailable, room.RoomNumber, room.Status)
		}
		if _, err := s.bookingRepo.GetActiveBookingByRoomID(tx, roomID, false); err == nil {
			return fmt.Errorf("%w: room %s", ErrRoomHasActiveBooking, room.RoomNumber)
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		booking.CheckIn = s.now()
		if err := s.bookingRepo.CreateBooking(tx, booking); err != nil {
			if errors.Is(err, repositories.ErrRoomHasActiveBooking) {
				return fmt.Errorf("%w: room %s", ErrRoomHasActiveBooking, room.RoomNumber)
			}
			return err
		}
		return s.roomRepo.UpdateRoomStatus(tx, roomID, models.RoomStatusOccupied)
	})
	if err != nil {
		return nil, repoError(err, ErrRoomNotFound, "checking in")
	}
	log.Info().Int64("room_id", roomID).Int64("booking_id", booking.ID).Bool("ac", booking.IsAC).Msg("Guest checked in")
	return booking, nil
}

func (s *roomService) AddServiceItem(roomID int64, req AddServiceItemRequest) (*models.RoomServiceItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item := &models.RoomServiceItem{
		Name:     req.Name,
		Category: models.ServiceCategory(req.Category),
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		booking, err := s.bookingRepo.GetActiveBookingByRoomID(tx, roomID, true)
		if err != nil {
			return repoError(err, fmt.Errorf("%w: room %d", ErrNoActiveBooking, roomID), "resolving active booking")
		}
		item.BookingID = booking.ID
		item.Timestamp = s.now()
		return s.bookingRepo.CreateServiceItem(tx, item)
	})
	if err != nil {
		return nil, repoError(err, nil, "adding service item")
	}
	log.Info().Int64("room_id", roomID).Int64("booking_id", item.BookingID).Str("category", string(item.Category)).Msg("Service item added")
	return item, nil
}

func (s *roomService) ListActiveItems(roomID int64) (*ActiveItemsResult, error) {
	executor := s.runner.Executor()
	if _, err := s.roomRepo.GetRoomByID(executor, roomID, false); err != nil {
		return nil, repoError(err, ErrRoomNotFound, "getting room")
	}

	booking, err := s.bookingRepo.GetActiveBookingByRoomID(executor, roomID, false)
	if errors.Is(err, repositories.ErrNotFound) {
		return &ActiveItemsResult{Items: []models.RoomServiceItem{}}, nil
	}
	if err != nil {
		return nil, repoError(err, nil, "resolving active booking")
	}

	items := append([]models.RoomServiceItem(nil), booking.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].ID > items[j].ID
		}
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if items == nil {
		items = []models.RoomServiceItem{}
	}
	return &ActiveItemsResult{BookingID: &booking.ID, Items: items}, nil
}

func (s *roomService) Checkout(roomID, bookingID int64, req BillingDetailsRequest) (*CheckoutResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result := &CheckoutResult{}
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		booking, err := s.bookingRepo.GetBookingByID(tx, bookingID, true)
		if err != nil {
			return repoError(err, ErrBookingNotFound, "resolving booking")
		}
		if booking.RoomID != roomID {
			return fmt.Errorf("%w: booking %d, room %d", ErrBookingRoomMismatch, bookingID, roomID)
		}
		if !booking.Status.IsActive() {
			return fmt.Errorf("%w: booking %d is %s", ErrBookingNotActive, bookingID, booking.Status)
		}
		room, err := s.roomRepo.GetRoomByID(tx, roomID, true)
		if err != nil {
			return repoError(err, ErrRoomNotFound, "resolving room")
		}

		checkOut := s.now()
		totals := billing.RoomCheckout(booking, room, booking.Items, checkOut)
		booking.Status = models.BookingStatusCheckedOut
		booking.CheckOut = &checkOut
		booking.TotalAmount = totals.TotalAmount

		applyBillingDetails(booking, req)
		if err := s.settleInvoiceNumber(tx, booking, req); err != nil {
			return err
		}
		if err := s.saveBilledBooking(tx, booking); err != nil {
			return err
		}
		if err := s.roomRepo.UpdateRoomStatus(tx, roomID, models.RoomStatusAvailable); err != nil {
			return err
		}

		result.Booking = booking
		result.Totals = totals
		if booking.InvoiceNo != nil {
			invoice := billing.ComputeInvoice(invoiceInput(booking, room, checkOut))
			result.Invoice = &invoice
		}
		return nil
	})
	if err != nil {
		return nil, repoError(err, ErrBookingNotFound, "checking out")
	}

	log.Info().
		Int64("room_id", roomID).
		Int64("booking_id", bookingID).
		Int("nights", result.Totals.Nights).
		Float64("total", result.Totals.TotalAmount).
		Msg("Guest checked out")
	return result, nil
}

func (s *roomService) CancelBooking(bookingID int64) (*models.RoomBooking, error) {
	var booking *models.RoomBooking
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		booking, err = s.bookingRepo.GetBookingByID(tx, bookingID, true)
		if err != nil {
			return err
		}
		if !booking.Status.IsActive() {
			return fmt.Errorf("%w: booking %d is %s", ErrBookingNotActive, bookingID, booking.Status)
		}
		if _, err := s.roomRepo.GetRoomByID(tx, booking.RoomID, true); err != nil {
			return err
		}
		booking.Status = models.BookingStatusCancelled
		if err := s.bookingRepo.UpdateBooking(tx, booking); err != nil {
			return err
		}
		return s.roomRepo.UpdateRoomStatus(tx, booking.RoomID, models.RoomStatusAvailable)
	})
	if err != nil {
		return nil, repoError(err, ErrBookingNotFound, "cancelling booking")
	}
	log.Info().Int64("booking_id", bookingID).Int64("room_id", booking.RoomID).Msg("Booking cancelled")
	return booking, nil
}

func (s *roomService) UpdateBillingDetails(bookingID int64, req BillingDetailsRequest) (*models.RoomBooking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var booking *models.RoomBooking
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		booking, err = s.bookingRepo.GetBookingByID(tx, bookingID, true)
		if err != nil {
			return err
		}
		applyBillingDetails(booking, req)
		if err := s.settleInvoiceNumber(tx, booking, req); err != nil {
			return err
		}
		return s.saveBilledBooking(tx, booking)
	})
	if err != nil {
		return nil, repoError(err, ErrBookingNotFound, "updating billing details")
	}
	log.Info().Int64("booking_id", bookingID).Msg("Billing details updated")
	return booking, nil
}

func (s *roomService) GetInvoice(bookingID int64) (*billing.Invoice, error) {
	executor := s.runner.Executor()
	booking, err := s.bookingRepo.GetBookingByID(executor, bookingID, false)
	if err != nil {
		return nil, repoError(err, ErrBookingNotFound, "getting booking")
	}
	if booking.InvoiceNo == nil {
		return nil, fmt.Errorf("%w: booking %d", ErrInvoiceNotIssued, bookingID)
	}
	room, err := s.roomRepo.GetRoomByID(executor, booking.RoomID, false)
	if err != nil {
		return nil, repoError(err, ErrRoomNotFound, "getting room")
	}

	invoice := billing.ComputeInvoice(invoiceInput(booking, room, s.now()))
	return &invoice, nil
}

func (s *roomService) GetHistory(page, pageSize int) ([]models.RoomBooking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	status := models.BookingStatusCheckedOut
	bookings, total, err := s.bookingRepo.GetBookings(s.runner.Executor(), repositories.BookingFilters{
		Status:   &status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, repoError(err, nil, "listing booking history")
	}
	return bookings, total, nil
}

// applyBillingDetails copies the provided invoice metadata onto the booking.
// Only invoice fields are touched; totals and dates never change here.
func applyBillingDetails(booking *models.RoomBooking, req BillingDetailsRequest) {
	if req.InvoiceNo != nil {
		n := *req.InvoiceNo
		booking.InvoiceNo = &n
	}
	if req.GSTEnabled != nil {
		g := *req.GSTEnabled
		booking.GSTEnabled = &g
	}
	if req.CompanyName != nil {
		booking.CompanyName = utils.NewNullString(*req.CompanyName)
	}
	if req.CompanyAddressLine1 != nil {
		booking.CompanyAddressLine1 = utils.NewNullString(*req.CompanyAddressLine1)
	}
	if req.CompanyAddressLine2 != nil {
		booking.CompanyAddressLine2 = utils.NewNullString(*req.CompanyAddressLine2)
	}
	if req.CustomerGSTIN != nil {
		booking.CustomerGSTIN = utils.NewNullString(*req.CustomerGSTIN)
	}
}

// settleInvoiceNumber keeps the shared invoice counter consistent: an explicit
// number advances it, and a GST bill without one draws the next number.
func (s *roomService) settleInvoiceNumber(tx repositories.SQLExecutor, booking *models.RoomBooking, req BillingDetailsRequest) error {
	if req.InvoiceNo != nil {
		return s.settingRepo.AdvanceInvoiceNumber(tx, *req.InvoiceNo)
	}
	if booking.InvoiceNo == nil && booking.GSTEnabled != nil && *booking.GSTEnabled {
		n, err := s.settingRepo.AllocateInvoiceNumber(tx)
		if err != nil {
			return err
		}
		booking.InvoiceNo = &n
		log.Info().Int64("booking_id", booking.ID).Int64("invoice_no", n).Msg("Invoice number allocated")
	}
	return nil
}

// saveBilledBooking persists a booking whose invoice fields may have changed.
func (s *roomService) saveBilledBooking(tx repositories.SQLExecutor, booking *models.RoomBooking) error {
	err := s.bookingRepo.UpdateBooking(tx, booking)
	if errors.Is(err, repositories.ErrInvoiceNumberTaken) {
		return fmt.Errorf("%w: invoice %d", ErrDuplicateInvoiceNo, *booking.InvoiceNo)
	}
	return err
}

func invoiceInput(booking *models.RoomBooking, room *models.Room, asOf time.Time) billing.InvoiceInput {
	in := billing.InvoiceInput{
		Booking:    booking,
		Room:       room,
		Items:      booking.Items,
		GSTEnabled: booking.GSTEnabled != nil && *booking.GSTEnabled,
		AsOf:       asOf,
	}
	if booking.InvoiceNo != nil {
		in.InvoiceNo = *booking.InvoiceNo
	}
	return in
}
