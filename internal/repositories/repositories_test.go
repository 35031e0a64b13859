package repositories

import (
	"errors"
	"testing"
	"time"

	"hotel_pos_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlTxRunner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &sqlTxRunner{db: db}, mock
}

func TestSettingRepository_AllocateInvoiceNumber(t *testing.T) {
	runner, mock := newMock(t)
	repo := NewSettingRepository()

	mock.ExpectQuery(`INSERT INTO application_settings .* RETURNING setting_value::BIGINT`).
		WithArgs(models.SettingKeyLastInvoiceNo, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"setting_value"}).AddRow(42))

	n, err := repo.AllocateInvoiceNumber(runner.Executor())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepository_GetSettingMissing(t *testing.T) {
	runner, mock := newMock(t)
	mock.ExpectQuery(`SELECT id, setting_key, setting_value`).
		WithArgs(models.SettingKeyRestaurantOpen).
		WillReturnRows(sqlmock.NewRows([]string{"id", "setting_key", "setting_value", "description", "created_at", "updated_at"}))

	_, err := NewSettingRepository().GetSetting(runner.Executor(), models.SettingKeyRestaurantOpen)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepository_ActiveBookingViolation(t *testing.T) {
	runner, mock := newMock(t)
	repo := NewBookingRepository()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO room_bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: activeBookingIndex})
	mock.ExpectRollback()

	err := runner.WithinTx(func(tx SQLExecutor) error {
		return repo.CreateBooking(tx, &models.RoomBooking{RoomID: 7, GuestName: "A. Guest", Status: models.BookingStatusCheckedIn, CheckIn: time.Now()})
	})
	assert.ErrorIs(t, err, ErrRoomHasActiveBooking)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapWriteError(t *testing.T) {
	assert.ErrorIs(t, mapWriteError(&pq.Error{Code: "23505"}, "op"), ErrDuplicateKey)
	assert.ErrorIs(t, mapWriteError(&pq.Error{Code: "23503"}, "op"), ErrReferenced)
	assert.ErrorIs(t, mapWriteError(errors.New("boom"), "op"), ErrDatabaseError)
}

func TestOrderRepository_GetTableByID(t *testing.T) {
	runner, mock := newMock(t)
	repo := NewOrderRepository()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, capacity, status, guests, start_time, is_takeaway, created_at, updated_at FROM tables WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "status", "guests", "start_time", "is_takeaway", "created_at", "updated_at"}).
			AddRow(3, 4, "OCCUPIED", 2, now, false, now, now))
	mock.ExpectQuery(`FROM order_items WHERE table_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_id", "menu_id", "name", "price", "quantity", "status", "modifications", "created_at", "updated_at"}).
			AddRow(10, 3, 1, "Paneer Tikka", 24.75, 2, "ORDERING", nil, now, now))

	table, err := repo.GetTableByID(runner.Executor(), 3, true)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusOccupied, table.Status)
	require.NotNil(t, table.Guests)
	assert.Equal(t, 2, *table.Guests)
	require.Len(t, table.CurrentOrders, 1)
	assert.Nil(t, table.CurrentOrders[0].Modifications)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetTableByIDNotFound(t *testing.T) {
	runner, mock := newMock(t)
	mock.ExpectQuery(`FROM tables WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewOrderRepository().GetTableByID(runner.Executor(), 99, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTxRunner_CommitsOnSuccess(t *testing.T) {
	runner, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO application_settings`).
		WithArgs(models.SettingKeyRestaurantOpen, "false", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := runner.WithinTx(func(tx SQLExecutor) error {
		return NewSettingRepository().UpsertSetting(tx, models.SettingKeyRestaurantOpen, "false")
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ActiveBookingLockedForItemWrites(t *testing.T) {
	runner, mock := newMock(t)
	mock.ExpectQuery(`WHERE b.room_id = \$1 AND b.status IN \('BOOKED', 'CHECKED_IN'\) FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewBookingRepository().GetActiveBookingByRoomID(runner.Executor(), 7, true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InvoiceNumberTaken(t *testing.T) {
	runner, mock := newMock(t)
	mock.ExpectExec(`UPDATE room_bookings SET`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: invoiceNoIndex})

	invoiceNo := int64(12)
	err := NewBookingRepository().UpdateBooking(runner.Executor(), &models.RoomBooking{ID: 3, BillingDetails: models.BillingDetails{InvoiceNo: &invoiceNo}})
	assert.ErrorIs(t, err, ErrInvoiceNumberTaken)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
