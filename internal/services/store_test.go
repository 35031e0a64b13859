package services

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
)

// memStore is an in-memory stand-in for every repository. Each method copies
// values in and out so callers only change state through explicit writes.
type memStore struct {
	mu     sync.Mutex
	nextID int64

	tables       map[int64]models.Table
	orderItems   map[int64]models.OrderItem
	menu         map[int64]models.MenuItem
	txns         map[string]models.Transaction
	rooms        map[int64]models.Room
	bookings     map[int64]models.RoomBooking
	serviceItems map[int64]models.RoomServiceItem
	maintenance  map[int64]models.RoomMaintenanceLog
	staff        map[int64]models.StaffMember
	attendance   map[int64]models.AttendanceRecord
	users        map[int64]models.User
	settings     map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		tables:       map[int64]models.Table{},
		orderItems:   map[int64]models.OrderItem{},
		menu:         map[int64]models.MenuItem{},
		txns:         map[string]models.Transaction{},
		rooms:        map[int64]models.Room{},
		bookings:     map[int64]models.RoomBooking{},
		serviceItems: map[int64]models.RoomServiceItem{},
		maintenance:  map[int64]models.RoomMaintenanceLog{},
		staff:        map[int64]models.StaffMember{},
		attendance:   map[int64]models.AttendanceRecord{},
		users:        map[int64]models.User{},
		settings:     map[string]string{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memStore) snapshot() *memStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memStore{
		nextID:       m.nextID,
		tables:       cloneMap(m.tables),
		orderItems:   cloneMap(m.orderItems),
		menu:         cloneMap(m.menu),
		txns:         cloneMap(m.txns),
		rooms:        cloneMap(m.rooms),
		bookings:     cloneMap(m.bookings),
		serviceItems: cloneMap(m.serviceItems),
		maintenance:  cloneMap(m.maintenance),
		staff:        cloneMap(m.staff),
		attendance:   cloneMap(m.attendance),
		users:        cloneMap(m.users),
		settings:     cloneMap(m.settings),
	}
}

func (m *memStore) restore(s *memStore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID = s.nextID
	m.tables, m.orderItems, m.menu, m.txns = s.tables, s.orderItems, s.menu, s.txns
	m.rooms, m.bookings, m.serviceItems, m.maintenance = s.rooms, s.bookings, s.serviceItems, s.maintenance
	m.staff, m.attendance, m.users, m.settings = s.staff, s.attendance, s.users, s.settings
}

// memRunner serialises transactions and rolls the store back when fn fails.
type memRunner struct {
	store *memStore
	txMu  sync.Mutex
}

func (r *memRunner) Executor() repositories.SQLExecutor { return nil }

func (r *memRunner) WithinTx(fn func(tx repositories.SQLExecutor) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	before := r.store.snapshot()
	if err := fn(nil); err != nil {
		r.store.restore(before)
		return err
	}
	return nil
}

var (
	_ repositories.OrderRepository       = (*memStore)(nil)
	_ repositories.MenuRepository        = (*memStore)(nil)
	_ repositories.TransactionRepository = (*memStore)(nil)
	_ repositories.RoomRepository        = (*memStore)(nil)
	_ repositories.BookingRepository     = (*memStore)(nil)
	_ repositories.MaintenanceRepository = (*memStore)(nil)
	_ repositories.SettingRepository     = (*memStore)(nil)
	_ repositories.StaffRepository       = (*memStore)(nil)
	_ repositories.AuthRepository        = (*memStore)(nil)
	_ repositories.TxRunner              = (*memRunner)(nil)
)

// --- tables and order items ---

func (m *memStore) itemsOf(tableID int64) []models.OrderItem {
	items := []models.OrderItem{}
	for _, it := range m.orderItems {
		if it.TableID == tableID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (m *memStore) CreateTable(_ repositories.SQLExecutor, table *models.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	table.ID = m.id()
	table.CreatedAt, table.UpdatedAt = time.Now(), time.Now()
	stored := *table
	stored.CurrentOrders = nil
	m.tables[table.ID] = stored
	return nil
}

func (m *memStore) GetTableByID(_ repositories.SQLExecutor, tableID int64, _ bool) (*models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[tableID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	t.CurrentOrders = m.itemsOf(tableID)
	return &t, nil
}

func (m *memStore) GetTables(_ repositories.SQLExecutor) ([]models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tables := []models.Table{}
	for _, t := range m.tables {
		t.CurrentOrders = m.itemsOf(t.ID)
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].IsTakeaway != tables[j].IsTakeaway {
			return !tables[i].IsTakeaway
		}
		return tables[i].ID < tables[j].ID
	})
	return tables, nil
}

func (m *memStore) UpdateTable(_ repositories.SQLExecutor, table *models.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *table
	stored.CurrentOrders = nil
	m.tables[table.ID] = stored
	return nil
}

func (m *memStore) DeleteTable(_ repositories.SQLExecutor, tableID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[tableID]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.tables, tableID)
	for id, it := range m.orderItems {
		if it.TableID == tableID {
			delete(m.orderItems, id)
		}
	}
	return nil
}

func (m *memStore) CreateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	m.orderItems[item.ID] = *item
	return nil
}

func (m *memStore) GetOrderItemByID(_ repositories.SQLExecutor, itemID int64, _ bool) (*models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.orderItems[itemID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &it, nil
}

func (m *memStore) GetOrderItemsByTableID(_ repositories.SQLExecutor, tableID int64) ([]models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemsOf(tableID), nil
}

func (m *memStore) UpdateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orderItems[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.orderItems[item.ID] = *item
	return nil
}

func (m *memStore) DeleteOrderItem(_ repositories.SQLExecutor, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orderItems[itemID]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.orderItems, itemID)
	return nil
}

func (m *memStore) DeleteOrderItemsByTableID(_ repositories.SQLExecutor, tableID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, it := range m.orderItems {
		if it.TableID == tableID {
			delete(m.orderItems, id)
		}
	}
	return nil
}

func (m *memStore) MoveOrderItems(_ repositories.SQLExecutor, fromTableID, toTableID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, it := range m.orderItems {
		if it.TableID == fromTableID {
			it.TableID = toTableID
			m.orderItems[id] = it
		}
	}
	return nil
}

// --- menu ---

func (m *memStore) CreateMenuItem(_ repositories.SQLExecutor, item *models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	m.menu[item.ID] = *item
	return nil
}

func (m *memStore) GetMenuItemByID(_ repositories.SQLExecutor, itemID int64) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.menu[itemID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &it, nil
}

func (m *memStore) GetMenuItems(_ repositories.SQLExecutor, filters repositories.MenuFilters) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []models.MenuItem{}
	for _, it := range m.menu {
		if filters.Category != nil && !strings.EqualFold(it.Category, *filters.Category) {
			continue
		}
		if filters.AvailableOnly && !it.Available {
			continue
		}
		if filters.SearchTerm != nil && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(*filters.SearchTerm)) {
			continue
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *memStore) UpdateMenuItem(_ repositories.SQLExecutor, item *models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menu[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.menu[item.ID] = *item
	return nil
}

func (m *memStore) DeleteMenuItem(_ repositories.SQLExecutor, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menu[itemID]; !ok {
		return repositories.ErrNotFound
	}
	for _, it := range m.orderItems {
		if it.MenuID == itemID {
			return repositories.ErrReferenced
		}
	}
	delete(m.menu, itemID)
	return nil
}

// --- transactions ---

func (m *memStore) CreateTransaction(_ repositories.SQLExecutor, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[txn.ID]; ok {
		return repositories.ErrDuplicateKey
	}
	stored := *txn
	stored.Items = append([]models.TransactionItem(nil), txn.Items...)
	for i := range stored.Items {
		stored.Items[i].ID = m.id()
		stored.Items[i].TransactionID = txn.ID
	}
	m.txns[txn.ID] = stored
	return nil
}

func (m *memStore) GetTransactionByID(_ repositories.SQLExecutor, id string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txns[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) GetTransactions(_ repositories.SQLExecutor, filters models.TransactionFilters) ([]models.Transaction, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.Transaction{}
	for _, t := range m.txns {
		if filters.TableID != nil && t.TableID != *filters.TableID {
			continue
		}
		if filters.Takeaway != nil && t.IsTakeaway != *filters.Takeaway {
			continue
		}
		if filters.From != nil && t.Timestamp.Before(*filters.From) {
			continue
		}
		if filters.To != nil && !t.Timestamp.Before(*filters.To) {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })
	return paginate(all, filters.Page, filters.PageSize), len(all), nil
}

func paginate[T any](all []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return all
	}
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []T{}
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// --- rooms and bookings ---

func (m *memStore) activeBooking(roomID int64) (models.RoomBooking, bool) {
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.Status.IsActive() {
			b.Items = m.serviceItemsOf(b.ID)
			return b, true
		}
	}
	return models.RoomBooking{}, false
}

func (m *memStore) serviceItemsOf(bookingID int64) []models.RoomServiceItem {
	items := []models.RoomServiceItem{}
	for _, it := range m.serviceItems {
		if it.BookingID == bookingID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].ID < items[j].ID
		}
		return items[i].Timestamp.Before(items[j].Timestamp)
	})
	return items
}

func (m *memStore) roomNumberTaken(number string, except int64) bool {
	for _, r := range m.rooms {
		if r.RoomNumber == number && r.ID != except {
			return true
		}
	}
	return false
}

func (m *memStore) CreateRoom(_ repositories.SQLExecutor, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roomNumberTaken(room.RoomNumber, 0) {
		return repositories.ErrDuplicateKey
	}
	room.ID = m.id()
	m.rooms[room.ID] = *room
	return nil
}

func (m *memStore) GetRoomByID(_ repositories.SQLExecutor, roomID int64, _ bool) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) GetRooms(_ repositories.SQLExecutor) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := []models.Room{}
	for _, r := range m.rooms {
		if b, ok := m.activeBooking(r.ID); ok {
			r.CurrentBooking = &b
		}
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (m *memStore) UpdateRoom(_ repositories.SQLExecutor, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[room.ID]; !ok {
		return repositories.ErrNotFound
	}
	if m.roomNumberTaken(room.RoomNumber, room.ID) {
		return repositories.ErrDuplicateKey
	}
	stored := *room
	stored.CurrentBooking, stored.Bookings = nil, nil
	m.rooms[room.ID] = stored
	return nil
}

func (m *memStore) UpdateRoomStatus(_ repositories.SQLExecutor, roomID int64, status models.RoomStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return repositories.ErrNotFound
	}
	r.Status = status
	m.rooms[roomID] = r
	return nil
}

func (m *memStore) CreateBooking(_ repositories.SQLExecutor, booking *models.RoomBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activeBooking(booking.RoomID); ok && booking.Status.IsActive() {
		return repositories.ErrRoomHasActiveBooking
	}
	booking.ID = m.id()
	stored := *booking
	stored.Items, stored.Room = nil, nil
	m.bookings[booking.ID] = stored
	return nil
}

func (m *memStore) GetBookingByID(_ repositories.SQLExecutor, bookingID int64, _ bool) (*models.RoomBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	b.Items = m.serviceItemsOf(b.ID)
	return &b, nil
}

func (m *memStore) GetActiveBookingByRoomID(_ repositories.SQLExecutor, roomID int64, _ bool) (*models.RoomBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.activeBooking(roomID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (m *memStore) GetActiveBookings(_ repositories.SQLExecutor) ([]models.RoomBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	active := []models.RoomBooking{}
	for _, b := range m.bookings {
		if b.Status.IsActive() {
			b.Items = m.serviceItemsOf(b.ID)
			active = append(active, b)
		}
	}
	return active, nil
}

func (m *memStore) GetBookings(_ repositories.SQLExecutor, filters repositories.BookingFilters) ([]models.RoomBooking, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.RoomBooking{}
	for _, b := range m.bookings {
		if filters.RoomID != nil && b.RoomID != *filters.RoomID {
			continue
		}
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		b.Items = m.serviceItemsOf(b.ID)
		if r, ok := m.rooms[b.RoomID]; ok {
			b.Room = &models.Room{ID: r.ID, RoomNumber: r.RoomNumber, Type: r.Type}
		}
		all = append(all, b)
	}
	sortKey := func(b models.RoomBooking) time.Time {
		if b.CheckOut != nil {
			return *b.CheckOut
		}
		return b.CheckIn
	}
	sort.Slice(all, func(i, j int) bool {
		ki, kj := sortKey(all[i]), sortKey(all[j])
		if ki.Equal(kj) {
			return all[i].ID > all[j].ID
		}
		return ki.After(kj)
	})
	return paginate(all, filters.Page, filters.PageSize), len(all), nil
}

func (m *memStore) UpdateBooking(_ repositories.SQLExecutor, booking *models.RoomBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repositories.ErrNotFound
	}
	if booking.InvoiceNo != nil {
		for id, other := range m.bookings {
			if id != booking.ID && other.InvoiceNo != nil && *other.InvoiceNo == *booking.InvoiceNo {
				return repositories.ErrInvoiceNumberTaken
			}
		}
	}
	stored := *booking
	stored.Items, stored.Room = nil, nil
	m.bookings[booking.ID] = stored
	return nil
}

func (m *memStore) CreateServiceItem(_ repositories.SQLExecutor, item *models.RoomServiceItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[item.BookingID]; !ok {
		return repositories.ErrReferenced
	}
	item.ID = m.id()
	m.serviceItems[item.ID] = *item
	return nil
}

func (m *memStore) GetServiceItemsByBookingID(_ repositories.SQLExecutor, bookingID int64) ([]models.RoomServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serviceItemsOf(bookingID), nil
}

// --- maintenance ---

func (m *memStore) CreateMaintenanceLog(_ repositories.SQLExecutor, entry *models.RoomMaintenanceLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.id()
	m.maintenance[entry.ID] = *entry
	return nil
}

func (m *memStore) GetMaintenanceLogByID(_ repositories.SQLExecutor, id int64) (*models.RoomMaintenanceLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.maintenance[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (m *memStore) GetMaintenanceLogs(_ repositories.SQLExecutor, filters repositories.MaintenanceFilters) ([]models.RoomMaintenanceLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := []models.RoomMaintenanceLog{}
	for _, e := range m.maintenance {
		if filters.RoomID != nil && e.RoomID != *filters.RoomID {
			continue
		}
		if filters.Status != nil && e.Status != *filters.Status {
			continue
		}
		logs = append(logs, e)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].ReportedAt.After(logs[j].ReportedAt) })
	return logs, nil
}

func (m *memStore) UpdateMaintenanceLog(_ repositories.SQLExecutor, entry *models.RoomMaintenanceLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.maintenance[entry.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.maintenance[entry.ID] = *entry
	return nil
}

// --- settings ---

func (m *memStore) GetSettings(_ repositories.SQLExecutor) ([]models.ApplicationSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := []models.ApplicationSetting{}
	for k, v := range m.settings {
		value := v
		rows = append(rows, models.ApplicationSetting{SettingKey: k, SettingValue: &value})
	}
	return rows, nil
}

func (m *memStore) GetSetting(_ repositories.SQLExecutor, key string) (*models.ApplicationSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.ApplicationSetting{SettingKey: key, SettingValue: &v}, nil
}

func (m *memStore) UpsertSetting(_ repositories.SQLExecutor, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *memStore) lastInvoiceNo() int64 {
	n, _ := strconv.ParseInt(m.settings[models.SettingKeyLastInvoiceNo], 10, 64)
	return n
}

func (m *memStore) AllocateInvoiceNumber(_ repositories.SQLExecutor) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lastInvoiceNo() + 1
	m.settings[models.SettingKeyLastInvoiceNo] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *memStore) AdvanceInvoiceNumber(_ repositories.SQLExecutor, n int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > m.lastInvoiceNo() {
		m.settings[models.SettingKeyLastInvoiceNo] = strconv.FormatInt(n, 10)
	}
	return nil
}

// --- staff and attendance ---

func (m *memStore) CreateStaffMember(_ repositories.SQLExecutor, staff *models.StaffMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	staff.ID = m.id()
	m.staff[staff.ID] = *staff
	return nil
}

func (m *memStore) GetStaffMemberByID(_ repositories.SQLExecutor, id int64) (*models.StaffMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (m *memStore) GetStaffMembers(_ repositories.SQLExecutor) ([]models.StaffMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.StaffMember{}
	for _, s := range m.staff {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (m *memStore) UpdateStaffMember(_ repositories.SQLExecutor, staff *models.StaffMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.staff[staff.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.staff[staff.ID] = *staff
	return nil
}

func (m *memStore) DeleteStaffMember(_ repositories.SQLExecutor, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.staff[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.staff, id)
	for rid, a := range m.attendance {
		if a.StaffID == id {
			delete(m.attendance, rid)
		}
	}
	for uid, u := range m.users {
		if u.StaffID != nil && *u.StaffID == id {
			u.StaffID = nil
			m.users[uid] = u
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (m *memStore) CreateAttendance(_ repositories.SQLExecutor, record *models.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attendance {
		if a.StaffID == record.StaffID && sameDay(a.Date, record.Date) {
			return repositories.ErrDuplicateKey
		}
	}
	record.ID = m.id()
	m.attendance[record.ID] = *record
	return nil
}

func (m *memStore) GetAttendance(_ repositories.SQLExecutor, staffID int64, date time.Time, _ bool) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attendance {
		if a.StaffID == staffID && sameDay(a.Date, date) {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetAttendanceRecords(_ repositories.SQLExecutor, filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := []models.AttendanceRecord{}
	for _, a := range m.attendance {
		if filters.StaffID != nil && a.StaffID != *filters.StaffID {
			continue
		}
		if filters.From != nil && a.Date.Before(*filters.From) {
			continue
		}
		if filters.To != nil && a.Date.After(*filters.To) {
			continue
		}
		if s, ok := m.staff[a.StaffID]; ok {
			a.Staff = &s
		}
		records = append(records, a)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *memStore) UpdateAttendance(_ repositories.SQLExecutor, record *models.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attendance[record.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *record
	stored.Staff = nil
	m.attendance[record.ID] = stored
	return nil
}

// --- users ---

func (m *memStore) CreateUser(_ repositories.SQLExecutor, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = m.id()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) FindUserByUsername(_ repositories.SQLExecutor, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) FindUserByID(_ repositories.SQLExecutor, userID int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) GetUsers(_ repositories.SQLExecutor) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.User{}
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return all, nil
}

func (m *memStore) UpdateUser(_ repositories.SQLExecutor, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) CountUsers(_ repositories.SQLExecutor) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// fakeClock is a controllable replacement for time.Now.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
