package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_pos_backend/internal/models"

	"github.com/lib/pq"
)

// ErrRoomHasActiveBooking is returned when a second BOOKED/CHECKED_IN stay is
// written for a room that already has one.
var ErrRoomHasActiveBooking = fmt.Errorf("%w: room already has an active booking", ErrDuplicateKey)

// ErrInvoiceNumberTaken is returned when a booking is given an invoice number
// another booking already carries.
var ErrInvoiceNumberTaken = fmt.Errorf("%w: invoice number already issued", ErrDuplicateKey)

const (
	activeBookingIndex = "uq_room_bookings_active_room"
	invoiceNoIndex     = "uq_room_bookings_invoice_no"
)

// BookingFilters narrows the booking history listing.
type BookingFilters struct {
	RoomID   *int64
	Status   *models.BookingStatus
	Page     int
	PageSize int
}

// BookingRepository defines the database operations for room stays and the
// service items charged to them.
type BookingRepository interface {
	// RoomBooking methods
	CreateBooking(executor SQLExecutor, booking *models.RoomBooking) error
	GetBookingByID(executor SQLExecutor, bookingID int64, forUpdate bool) (*models.RoomBooking, error)
	// GetActiveBookingByRoomID with forUpdate serializes item writes against checkout.
	GetActiveBookingByRoomID(executor SQLExecutor, roomID int64, forUpdate bool) (*models.RoomBooking, error)
	GetActiveBookings(executor SQLExecutor) ([]models.RoomBooking, error)
	GetBookings(executor SQLExecutor, filters BookingFilters) ([]models.RoomBooking, int, error)
	UpdateBooking(executor SQLExecutor, booking *models.RoomBooking) error

	// RoomServiceItem methods
	CreateServiceItem(executor SQLExecutor, item *models.RoomServiceItem) error
	GetServiceItemsByBookingID(executor SQLExecutor, bookingID int64) ([]models.RoomServiceItem, error)
}

type bookingRepository struct{}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository() BookingRepository {
	return &bookingRepository{}
}

const bookingColumns = `b.id, b.room_id, b.guest_name, b.guest_phone, b.adults, b.children, b.is_ac,
	b.check_in, b.check_out, b.status, b.total_amount,
	b.price_per_night_mrp, b.price_per_night_selling, b.price_per_night_billed,
	b.extra_bedding_included, b.extra_bedding_charge_per_night,
	b.invoice_no, b.gst_enabled, b.company_name, b.company_address_line1, b.company_address_line2, b.customer_gstin,
	b.created_at, b.updated_at`

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func scanBooking(row scanner, extra ...interface{}) (*models.RoomBooking, error) {
	var b models.RoomBooking
	var checkOut sql.NullTime
	var mrp, selling, billed, bedding sql.NullFloat64
	var invoiceNo sql.NullInt64
	var gstEnabled sql.NullBool
	var companyName, addr1, addr2, gstin sql.NullString

	dest := []interface{}{
		&b.ID, &b.RoomID, &b.GuestName, &b.GuestPhone, &b.Adults, &b.Children, &b.IsAC,
		&b.CheckIn, &checkOut, &b.Status, &b.TotalAmount,
		&mrp, &selling, &billed,
		&b.ExtraBeddingIncluded, &bedding,
		&invoiceNo, &gstEnabled, &companyName, &addr1, &addr2, &gstin,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if checkOut.Valid {
		t := checkOut.Time
		b.CheckOut = &t
	}
	b.PricePerNightMRP = nullFloatPtr(mrp)
	b.PricePerNightSelling = nullFloatPtr(selling)
	b.PricePerNightBilled = nullFloatPtr(billed)
	b.ExtraBeddingChargePerNight = nullFloatPtr(bedding)
	if invoiceNo.Valid {
		n := invoiceNo.Int64
		b.InvoiceNo = &n
	}
	if gstEnabled.Valid {
		g := gstEnabled.Bool
		b.GSTEnabled = &g
	}
	b.CompanyName = nullStringPtr(companyName)
	b.CompanyAddressLine1 = nullStringPtr(addr1)
	b.CompanyAddressLine2 = nullStringPtr(addr2)
	b.CustomerGSTIN = nullStringPtr(gstin)
	b.Items = []models.RoomServiceItem{}
	return &b, nil
}

// --- RoomBooking Methods ---

func (r *bookingRepository) CreateBooking(executor SQLExecutor, booking *models.RoomBooking) error {
	query := `INSERT INTO room_bookings
	            (room_id, guest_name, guest_phone, adults, children, is_ac, check_in, check_out, status, total_amount,
	             price_per_night_mrp, price_per_night_selling, price_per_night_billed,
	             extra_bedding_included, extra_bedding_charge_per_night,
	             invoice_no, gst_enabled, company_name, company_address_line1, company_address_line2, customer_gstin,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	          RETURNING id`

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	err := executor.QueryRow(query,
		booking.RoomID, booking.GuestName, booking.GuestPhone, booking.Adults, booking.Children, booking.IsAC,
		booking.CheckIn, booking.CheckOut, booking.Status, booking.TotalAmount,
		booking.PricePerNightMRP, booking.PricePerNightSelling, booking.PricePerNightBilled,
		booking.ExtraBeddingIncluded, booking.ExtraBeddingChargePerNight,
		booking.InvoiceNo, booking.GSTEnabled, booking.CompanyName, booking.CompanyAddressLine1,
		booking.CompanyAddressLine2, booking.CustomerGSTIN,
		booking.CreatedAt, booking.UpdatedAt,
	).Scan(&booking.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == activeBookingIndex {
			return fmt.Errorf("%w (room ID %d)", ErrRoomHasActiveBooking, booking.RoomID)
		}
		return mapWriteError(err, "creating room booking")
	}
	if booking.Items == nil {
		booking.Items = []models.RoomServiceItem{}
	}
	return nil
}

func (r *bookingRepository) GetBookingByID(executor SQLExecutor, bookingID int64, forUpdate bool) (*models.RoomBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM room_bookings b WHERE b.id = $1` + lockClause(forUpdate)
	booking, err := scanBooking(executor.QueryRow(query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting room booking by ID %d: %v", ErrDatabaseError, bookingID, err)
	}

	items, err := r.GetServiceItemsByBookingID(executor, bookingID)
	if err != nil {
		return nil, err
	}
	booking.Items = items
	return booking, nil
}

func (r *bookingRepository) GetActiveBookingByRoomID(executor SQLExecutor, roomID int64, forUpdate bool) (*models.RoomBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM room_bookings b
	          WHERE b.room_id = $1 AND b.status IN ('BOOKED', 'CHECKED_IN')` + lockClause(forUpdate)
	booking, err := scanBooking(executor.QueryRow(query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting active booking for room ID %d: %v", ErrDatabaseError, roomID, err)
	}

	items, err := r.GetServiceItemsByBookingID(executor, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Items = items
	return booking, nil
}

func (r *bookingRepository) GetActiveBookings(executor SQLExecutor) ([]models.RoomBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM room_bookings b
	          WHERE b.status IN ('BOOKED', 'CHECKED_IN') ORDER BY b.check_in`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	bookings := []models.RoomBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning room booking: %v", ErrDatabaseError, err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating room booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, r.attachItems(executor, bookings)
}

func (r *bookingRepository) GetBookings(executor SQLExecutor, filters BookingFilters) ([]models.RoomBooking, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + `,
	        rm.room_number, rm.type,
	        COUNT(*) OVER() as total_count
	    FROM room_bookings b
	    JOIN rooms rm ON rm.id = b.room_id`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("b.room_id = $%d", argCounter))
		args = append(args, *filters.RoomID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY COALESCE(b.check_out, b.check_in) DESC, b.id DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying room bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	bookings := []models.RoomBooking{}
	totalCount := 0
	for rows.Next() {
		var roomNumber string
		var roomType models.RoomType
		b, err := scanBooking(rows, &roomNumber, &roomType, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning room booking: %v", ErrDatabaseError, err)
		}
		b.Room = &models.Room{ID: b.RoomID, RoomNumber: roomNumber, Type: roomType}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating room booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, totalCount, r.attachItems(executor, bookings)
}

func (r *bookingRepository) attachItems(executor SQLExecutor, bookings []models.RoomBooking) error {
	for i := range bookings {
		items, err := r.GetServiceItemsByBookingID(executor, bookings[i].ID)
		if err != nil {
			return err
		}
		bookings[i].Items = items
	}
	return nil
}

func (r *bookingRepository) UpdateBooking(executor SQLExecutor, booking *models.RoomBooking) error {
	query := `UPDATE room_bookings SET
	            guest_name = $1, guest_phone = $2, adults = $3, children = $4, is_ac = $5,
	            check_out = $6, status = $7, total_amount = $8,
	            price_per_night_mrp = $9, price_per_night_selling = $10, price_per_night_billed = $11,
	            extra_bedding_included = $12, extra_bedding_charge_per_night = $13,
	            invoice_no = $14, gst_enabled = $15, company_name = $16,
	            company_address_line1 = $17, company_address_line2 = $18, customer_gstin = $19,
	            updated_at = $20
	          WHERE id = $21`

	booking.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		booking.GuestName, booking.GuestPhone, booking.Adults, booking.Children, booking.IsAC,
		booking.CheckOut, booking.Status, booking.TotalAmount,
		booking.PricePerNightMRP, booking.PricePerNightSelling, booking.PricePerNightBilled,
		booking.ExtraBeddingIncluded, booking.ExtraBeddingChargePerNight,
		booking.InvoiceNo, booking.GSTEnabled, booking.CompanyName,
		booking.CompanyAddressLine1, booking.CompanyAddressLine2, booking.CustomerGSTIN,
		booking.UpdatedAt, booking.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == invoiceNoIndex {
			return fmt.Errorf("%w (booking ID %d)", ErrInvoiceNumberTaken, booking.ID)
		}
		return mapWriteError(err, fmt.Sprintf("updating room booking ID %d", booking.ID))
	}
	return checkAffected(result)
}

// --- RoomServiceItem Methods ---

func (r *bookingRepository) CreateServiceItem(executor SQLExecutor, item *models.RoomServiceItem) error {
	query := `INSERT INTO room_service_items (booking_id, name, category, price, quantity, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	err := executor.QueryRow(query,
		item.BookingID, item.Name, item.Category, item.Price, item.Quantity, item.Timestamp,
	).Scan(&item.ID)
	if err != nil {
		return mapWriteError(err, "creating room service item")
	}
	return nil
}

func (r *bookingRepository) GetServiceItemsByBookingID(executor SQLExecutor, bookingID int64) ([]models.RoomServiceItem, error) {
	query := `SELECT id, booking_id, name, category, price, quantity, timestamp
	          FROM room_service_items WHERE booking_id = $1 ORDER BY timestamp, id`
	rows, err := executor.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying service items for booking ID %d: %v", ErrDatabaseError, bookingID, err)
	}
	defer rows.Close()

	items := []models.RoomServiceItem{}
	for rows.Next() {
		var item models.RoomServiceItem
		if err := rows.Scan(&item.ID, &item.BookingID, &item.Name, &item.Category, &item.Price, &item.Quantity, &item.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scanning service item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}
