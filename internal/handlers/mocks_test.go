package handlers

import (
	"hotel_pos_backend/internal/billing"
	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/internal/services"

	"github.com/stretchr/testify/mock"
)

type mockOrderService struct{ mock.Mock }

var _ services.OrderService = (*mockOrderService)(nil)

func (m *mockOrderService) table(args mock.Arguments) (*models.Table, error) {
	t, _ := args.Get(0).(*models.Table)
	return t, args.Error(1)
}

func (m *mockOrderService) GetTables() ([]models.Table, error) {
	args := m.Called()
	tables, _ := args.Get(0).([]models.Table)
	return tables, args.Error(1)
}
func (m *mockOrderService) GetTable(tableID int64) (*models.Table, error) {
	return m.table(m.Called(tableID))
}
func (m *mockOrderService) CreateTable(req services.CreateTableRequest) (*models.Table, error) {
	return m.table(m.Called(req))
}
func (m *mockOrderService) UpdateTable(tableID int64, req services.UpdateTableRequest) (*models.Table, error) {
	return m.table(m.Called(tableID, req))
}
func (m *mockOrderService) DeleteTable(tableID int64) error {
	return m.Called(tableID).Error(0)
}
func (m *mockOrderService) OpenTable(tableID int64, guests int) (*models.Table, error) {
	return m.table(m.Called(tableID, guests))
}
func (m *mockOrderService) AddItem(tableID int64, req services.AddItemRequest) (*models.Table, error) {
	return m.table(m.Called(tableID, req))
}
func (m *mockOrderService) RemoveOneUnit(tableID, menuID int64) (*models.Table, error) {
	return m.table(m.Called(tableID, menuID))
}
func (m *mockOrderService) SendToKitchen(tableID int64) (*services.SendToKitchenResult, error) {
	args := m.Called(tableID)
	r, _ := args.Get(0).(*services.SendToKitchenResult)
	return r, args.Error(1)
}
func (m *mockOrderService) AdvanceItemStatus(tableID, itemID int64, newStatus string) (*models.Table, error) {
	return m.table(m.Called(tableID, itemID, newStatus))
}
func (m *mockOrderService) CallWaiter(tableID int64) (*models.Table, error) {
	return m.table(m.Called(tableID))
}
func (m *mockOrderService) RequestBill(tableID int64) (*models.Table, error) {
	return m.table(m.Called(tableID))
}
func (m *mockOrderService) MoveTable(fromID, toID int64) (*services.MoveTableResult, error) {
	args := m.Called(fromID, toID)
	r, _ := args.Get(0).(*services.MoveTableResult)
	return r, args.Error(1)
}
func (m *mockOrderService) Checkout(tableID int64) (*models.Transaction, error) {
	args := m.Called(tableID)
	t, _ := args.Get(0).(*models.Transaction)
	return t, args.Error(1)
}
func (m *mockOrderService) CreateTakeaway(req services.CreateTakeawayRequest) (*models.Table, error) {
	return m.table(m.Called(req))
}

type mockRoomService struct{ mock.Mock }

var _ services.RoomService = (*mockRoomService)(nil)

func (m *mockRoomService) booking(args mock.Arguments) (*models.RoomBooking, error) {
	b, _ := args.Get(0).(*models.RoomBooking)
	return b, args.Error(1)
}

func (m *mockRoomService) GetRooms() ([]models.Room, error) {
	args := m.Called()
	rooms, _ := args.Get(0).([]models.Room)
	return rooms, args.Error(1)
}
func (m *mockRoomService) GetRoom(roomID int64) (*models.Room, error) {
	args := m.Called(roomID)
	r, _ := args.Get(0).(*models.Room)
	return r, args.Error(1)
}
func (m *mockRoomService) CreateRoom(req services.CreateRoomRequest) (*models.Room, error) {
	args := m.Called(req)
	r, _ := args.Get(0).(*models.Room)
	return r, args.Error(1)
}
func (m *mockRoomService) UpdateRoom(roomID int64, req services.UpdateRoomRequest) (*models.Room, error) {
	args := m.Called(roomID, req)
	r, _ := args.Get(0).(*models.Room)
	return r, args.Error(1)
}
func (m *mockRoomService) CheckIn(roomID int64, req services.CheckInRequest) (*models.RoomBooking, error) {
	return m.booking(m.Called(roomID, req))
}
func (m *mockRoomService) AddServiceItem(roomID int64, req services.AddServiceItemRequest) (*models.RoomServiceItem, error) {
	args := m.Called(roomID, req)
	item, _ := args.Get(0).(*models.RoomServiceItem)
	return item, args.Error(1)
}
func (m *mockRoomService) ListActiveItems(roomID int64) (*services.ActiveItemsResult, error) {
	args := m.Called(roomID)
	r, _ := args.Get(0).(*services.ActiveItemsResult)
	return r, args.Error(1)
}
func (m *mockRoomService) Checkout(roomID, bookingID int64, req services.BillingDetailsRequest) (*services.CheckoutResult, error) {
	args := m.Called(roomID, bookingID, req)
	r, _ := args.Get(0).(*services.CheckoutResult)
	return r, args.Error(1)
}
func (m *mockRoomService) CancelBooking(bookingID int64) (*models.RoomBooking, error) {
	return m.booking(m.Called(bookingID))
}
func (m *mockRoomService) UpdateBillingDetails(bookingID int64, req services.BillingDetailsRequest) (*models.RoomBooking, error) {
	return m.booking(m.Called(bookingID, req))
}
func (m *mockRoomService) GetInvoice(bookingID int64) (*billing.Invoice, error) {
	args := m.Called(bookingID)
	inv, _ := args.Get(0).(*billing.Invoice)
	return inv, args.Error(1)
}
func (m *mockRoomService) GetHistory(page, pageSize int) ([]models.RoomBooking, int, error) {
	args := m.Called(page, pageSize)
	b, _ := args.Get(0).([]models.RoomBooking)
	return b, args.Int(1), args.Error(2)
}

type mockAttendanceService struct{ mock.Mock }

var _ services.AttendanceService = (*mockAttendanceService)(nil)

func (m *mockAttendanceService) shift(args mock.Arguments) (*services.ShiftResult, error) {
	r, _ := args.Get(0).(*services.ShiftResult)
	return r, args.Error(1)
}

func (m *mockAttendanceService) StartShift(userID int64) (*services.ShiftResult, error) {
	return m.shift(m.Called(userID))
}
func (m *mockAttendanceService) EndShift(userID int64) (*services.ShiftResult, error) {
	return m.shift(m.Called(userID))
}
func (m *mockAttendanceService) GetShiftStatus(userID int64) (*services.ShiftStatus, error) {
	args := m.Called(userID)
	s, _ := args.Get(0).(*services.ShiftStatus)
	return s, args.Error(1)
}
func (m *mockAttendanceService) ListAttendance(filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	args := m.Called(filters)
	r, _ := args.Get(0).([]models.AttendanceRecord)
	return r, args.Error(1)
}
func (m *mockAttendanceService) MarkAttendance(req services.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	args := m.Called(req)
	r, _ := args.Get(0).(*models.AttendanceRecord)
	return r, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

var _ services.AuthService = (*mockAuthService)(nil)

func (m *mockAuthService) Login(req services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}
func (m *mockAuthService) GetProfile(userID int64) (*models.User, error) {
	args := m.Called(userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *mockAuthService) CreateUser(req services.CreateUserRequest) (*models.User, error) {
	args := m.Called(req)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *mockAuthService) GetUsers() ([]models.User, error) {
	args := m.Called()
	u, _ := args.Get(0).([]models.User)
	return u, args.Error(1)
}
func (m *mockAuthService) UpdateUser(id int64, req services.UpdateUserRequest) (*models.User, error) {
	args := m.Called(id, req)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *mockAuthService) EnsureBootstrapUser(username, password string) (bool, error) {
	args := m.Called(username, password)
	return args.Bool(0), args.Error(1)
}
