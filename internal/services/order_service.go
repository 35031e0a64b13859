package services

import (
	"fmt"
	"time"

	"hotel_pos_backend/internal/billing"
	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// --- Data Transfer Objects (DTOs) ---

// CreateTableRequest adds a physical table.
type CreateTableRequest struct {
	Capacity int `json:"capacity" binding:"required" validate:"min=1,max=50"`
}

// UpdateTableRequest changes table attributes. Absent fields are left alone.
type UpdateTableRequest struct {
	Capacity *int `json:"capacity" validate:"omitempty,min=1,max=50"`
}

// OpenTableRequest seats guests at an EMPTY table.
type OpenTableRequest struct {
	Guests int `json:"guests" binding:"required"`
}

// AddItemRequest appends one unit of a menu item to a table's order.
type AddItemRequest struct {
	MenuID        int64   `json:"menuId" binding:"required" validate:"min=1"`
	Modifications *string `json:"modifications" validate:"omitempty,max=500"`
}

// UpdateItemStatusRequest moves an order line along the kitchen workflow.
type UpdateItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MoveTableRequest relocates a seated party.
type MoveTableRequest struct {
	ToTableID int64 `json:"toTableId" binding:"required" validate:"min=1"`
}

// CreateTakeawayRequest opens a takeaway order straight into the kitchen.
type CreateTakeawayRequest struct {
	MenuIDs []int64 `json:"menuIds" binding:"required" validate:"min=1,dive,min=1"`
}

// SendToKitchenResult reports how many lines were fired. NothingToSend marks
// the idempotent case where the table had no ORDERING lines.
type SendToKitchenResult struct {
	Table         *models.Table `json:"table"`
	SentCount     int           `json:"sentCount"`
	NothingToSend bool          `json:"nothingToSend"`
	Message       string        `json:"message"`
}

// MoveTableResult holds both tables after a move.
type MoveTableResult struct {
	From *models.Table `json:"from"`
	To   *models.Table `json:"to"`
}

// --- OrderService Interface ---

// OrderService is the order lifecycle engine: tables, their order lines and
// settlement into transactions.
type OrderService interface {
	GetTables() ([]models.Table, error)
	GetTable(tableID int64) (*models.Table, error)
	CreateTable(req CreateTableRequest) (*models.Table, error)
	UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error)
	DeleteTable(tableID int64) error

	OpenTable(tableID int64, guests int) (*models.Table, error)
	AddItem(tableID int64, req AddItemRequest) (*models.Table, error)
	RemoveOneUnit(tableID, menuID int64) (*models.Table, error)
	SendToKitchen(tableID int64) (*SendToKitchenResult, error)
	AdvanceItemStatus(tableID, itemID int64, newStatus string) (*models.Table, error)
	CallWaiter(tableID int64) (*models.Table, error)
	RequestBill(tableID int64) (*models.Table, error)
	MoveTable(fromID, toID int64) (*MoveTableResult, error)
	Checkout(tableID int64) (*models.Transaction, error)
	CreateTakeaway(req CreateTakeawayRequest) (*models.Table, error)
}

// --- orderService Implementation ---
type orderService struct {
	runner      repositories.TxRunner
	orderRepo   repositories.OrderRepository
	menuRepo    repositories.MenuRepository
	txnRepo     repositories.TransactionRepository
	settingRepo repositories.SettingRepository
	now         func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	runner repositories.TxRunner,
	orderRepo repositories.OrderRepository,
	menuRepo repositories.MenuRepository,
	txnRepo repositories.TransactionRepository,
	settingRepo repositories.SettingRepository,
) OrderService {
	return &orderService{
		runner:      runner,
		orderRepo:   orderRepo,
		menuRepo:    menuRepo,
		txnRepo:     txnRepo,
		settingRepo: settingRepo,
		now:         time.Now,
	}
}

func (s *orderService) GetTables() ([]models.Table, error) {
	tables, err := s.orderRepo.GetTables(s.runner.Executor())
	if err != nil {
		return nil, repoError(err, nil, "listing tables")
	}
	return tables, nil
}

func (s *orderService) GetTable(tableID int64) (*models.Table, error) {
	table, err := s.orderRepo.GetTableByID(s.runner.Executor(), tableID, false)
	if err != nil {
		return nil, repoError(err, ErrTableNotFound, "getting table")
	}
	return table, nil
}

func (s *orderService) CreateTable(req CreateTableRequest) (*models.Table, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	table := &models.Table{Capacity: req.Capacity, Status: models.TableStatusEmpty, CurrentOrders: []models.OrderItem{}}
	if err := s.orderRepo.CreateTable(s.runner.Executor(), table); err != nil {
		return nil, repoError(err, nil, "creating table")
	}
	log.Info().Int64("table_id", table.ID).Int("capacity", table.Capacity).Msg("Table created")
	return table, nil
}

func (s *orderService) UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		if req.Capacity == nil {
			return nil
		}
		if table.Guests != nil && *table.Guests > *req.Capacity {
			return fmt.Errorf("%w: %d guests seated, capacity %d requested", ErrInvalidGuestCount, *table.Guests, *req.Capacity)
		}
		table.Capacity = *req.Capacity
		return s.orderRepo.UpdateTable(tx, table)
	})
}

func (s *orderService) DeleteTable(tableID int64) error {
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		table, err := s.orderRepo.GetTableByID(tx, tableID, true)
		if err != nil {
			return err
		}
		if table.Status != models.TableStatusEmpty {
			return ErrTableNotEmpty
		}
		return s.orderRepo.DeleteTable(tx, tableID)
	})
	if err != nil {
		return repoError(err, ErrTableNotFound, "deleting table")
	}
	log.Info().Int64("table_id", tableID).Msg("Table deleted")
	return nil
}

// mutateTable loads the table under lock, applies fn and returns the reloaded
// table, all in one transaction.
func (s *orderService) mutateTable(tableID int64, fn func(tx repositories.SQLExecutor, table *models.Table) error) (*models.Table, error) {
	var result *models.Table
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		table, err := s.orderRepo.GetTableByID(tx, tableID, true)
		if err != nil {
			return err
		}
		if err := fn(tx, table); err != nil {
			return err
		}
		result, err = s.orderRepo.GetTableByID(tx, tableID, false)
		return err
	})
	if err != nil {
		return nil, repoError(err, ErrTableNotFound, fmt.Sprintf("table %d", tableID))
	}
	return result, nil
}

func (s *orderService) OpenTable(tableID int64, guests int) (*models.Table, error) {
	if guests < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGuestCount, guests)
	}
	table, err := s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		open, err := restaurantOpen(tx, s.settingRepo)
		if err != nil {
			return err
		}
		if !open {
			return ErrRestaurantClosed
		}
		if table.Status != models.TableStatusEmpty {
			return fmt.Errorf("%w: table %d is %s", ErrTableNotEmpty, table.ID, table.Status)
		}
		if guests > table.Capacity {
			return fmt.Errorf("%w: %d guests for capacity %d", ErrInvalidGuestCount, guests, table.Capacity)
		}
		startTime := s.now()
		table.Status = models.TableStatusOccupied
		table.Guests = &guests
		table.StartTime = &startTime
		return s.orderRepo.UpdateTable(tx, table)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("table_id", tableID).Int("guests", guests).Msg("Table opened")
	return table, nil
}

func (s *orderService) AddItem(tableID int64, req AddItemRequest) (*models.Table, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		if table.Status == models.TableStatusEmpty {
			return fmt.Errorf("%w: table %d", ErrTableNotOccupied, table.ID)
		}
		menuItem, err := s.menuRepo.GetMenuItemByID(tx, req.MenuID)
		if err != nil {
			return repoError(err, ErrMenuItemNotFound, "resolving menu item")
		}
		if !menuItem.Available {
			return fmt.Errorf("%w: %s", ErrMenuItemUnavailable, menuItem.Name)
		}

		status := models.OrderStatusOrdering
		if table.IsTakeaway {
			status = models.OrderStatusPreparing
		}
		item := &models.OrderItem{
			TableID:       table.ID,
			MenuID:        menuItem.ID,
			Name:          menuItem.Name,
			Price:         menuItem.Price,
			Quantity:      1,
			Status:        status,
			Modifications: req.Modifications,
		}
		if err := s.orderRepo.CreateOrderItem(tx, item); err != nil {
			return err
		}

		if table.Status == models.TableStatusNeedsBill {
			table.Status = models.TableStatusOccupied
			return s.orderRepo.UpdateTable(tx, table)
		}
		return nil
	})
}

func (s *orderService) RemoveOneUnit(tableID, menuID int64) (*models.Table, error) {
	return s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		// Lines come back in insertion order; the last match is the newest.
		for i := len(table.CurrentOrders) - 1; i >= 0; i-- {
			item := table.CurrentOrders[i]
			if item.MenuID == menuID && item.Status == models.OrderStatusOrdering {
				return s.orderRepo.DeleteOrderItem(tx, item.ID)
			}
		}
		return nil
	})
}

func (s *orderService) SendToKitchen(tableID int64) (*SendToKitchenResult, error) {
	sent := 0
	table, err := s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		for i := range table.CurrentOrders {
			item := &table.CurrentOrders[i]
			if item.Status != models.OrderStatusOrdering {
				continue
			}
			item.Status = models.OrderStatusPreparing
			if err := s.orderRepo.UpdateOrderItem(tx, item); err != nil {
				return err
			}
			sent++
		}
		if table.Status == models.TableStatusNeedsService {
			table.Status = models.TableStatusOccupied
			return s.orderRepo.UpdateTable(tx, table)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sent == 0 {
		return &SendToKitchenResult{Table: table, NothingToSend: true, Message: "No new items to send"}, nil
	}
	log.Info().Int64("table_id", tableID).Int("items", sent).Msg("Order sent to kitchen")
	return &SendToKitchenResult{Table: table, SentCount: sent, Message: fmt.Sprintf("%d item(s) sent to kitchen", sent)}, nil
}

func (s *orderService) AdvanceItemStatus(tableID, itemID int64, newStatus string) (*models.Table, error) {
	if !models.IsValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	next := models.OrderStatus(newStatus)

	table, err := s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		item, err := s.orderRepo.GetOrderItemByID(tx, itemID, true)
		if err != nil {
			return repoError(err, ErrOrderItemNotFound, "resolving order item")
		}
		if item.TableID != table.ID {
			return fmt.Errorf("%w: item %d is not on table %d", ErrOrderItemNotFound, itemID, table.ID)
		}
		if !item.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, item.Status, next)
		}
		item.Status = next
		return s.orderRepo.UpdateOrderItem(tx, item)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("table_id", tableID).Int64("item_id", itemID).Str("status", newStatus).Msg("Order item status changed")
	return table, nil
}

func (s *orderService) CallWaiter(tableID int64) (*models.Table, error) {
	return s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		switch table.Status {
		case models.TableStatusNeedsService:
			return nil
		case models.TableStatusOccupied:
			table.Status = models.TableStatusNeedsService
			return s.orderRepo.UpdateTable(tx, table)
		default:
			return fmt.Errorf("%w: table %d is %s", ErrTableNotOccupied, table.ID, table.Status)
		}
	})
}

func (s *orderService) RequestBill(tableID int64) (*models.Table, error) {
	table, err := s.mutateTable(tableID, func(tx repositories.SQLExecutor, table *models.Table) error {
		if table.Status == models.TableStatusEmpty {
			return fmt.Errorf("%w: table %d", ErrTableNotOccupied, table.ID)
		}
		for _, item := range table.CurrentOrders {
			if item.Status != models.OrderStatusVoid && item.Status != models.OrderStatusServed {
				return fmt.Errorf("%w: %s is %s", ErrItemsNotAllServed, item.Name, item.Status)
			}
		}
		table.Status = models.TableStatusNeedsBill
		return s.orderRepo.UpdateTable(tx, table)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("table_id", tableID).Msg("Bill requested")
	return table, nil
}

func (s *orderService) MoveTable(fromID, toID int64) (*MoveTableResult, error) {
	if fromID == toID {
		return nil, ErrSameTable
	}

	result := &MoveTableResult{}
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		// Lock in id order so two opposite moves cannot deadlock.
		first, second := fromID, toID
		if first > second {
			first, second = second, first
		}
		locked := map[int64]*models.Table{}
		for _, id := range []int64{first, second} {
			table, err := s.orderRepo.GetTableByID(tx, id, true)
			if err != nil {
				return repoError(err, fmt.Errorf("%w: %d", ErrTableNotFound, id), "locking table")
			}
			locked[id] = table
		}
		from, to := locked[fromID], locked[toID]

		if from.Status == models.TableStatusEmpty {
			return fmt.Errorf("%w: table %d", ErrTableNotOccupied, from.ID)
		}
		if from.IsTakeaway || to.IsTakeaway {
			return ErrTakeawayNotMovable
		}
		for _, item := range from.CurrentOrders {
			if item.Status.KitchenTouched() {
				return fmt.Errorf("%w: %s is %s", ErrTableAnchored, item.Name, item.Status)
			}
		}
		if to.Status != models.TableStatusEmpty {
			return fmt.Errorf("%w: table %d is %s", ErrTargetTableNotEmpty, to.ID, to.Status)
		}
		if from.Guests != nil && *from.Guests > to.Capacity {
			return fmt.Errorf("%w: %d guests, capacity %d", ErrTargetTableTooSmall, *from.Guests, to.Capacity)
		}

		if err := s.orderRepo.MoveOrderItems(tx, from.ID, to.ID); err != nil {
			return err
		}
		to.Status, to.Guests, to.StartTime = from.Status, from.Guests, from.StartTime
		if err := s.orderRepo.UpdateTable(tx, to); err != nil {
			return err
		}
		from.Reset()
		if err := s.orderRepo.UpdateTable(tx, from); err != nil {
			return err
		}

		var err error
		if result.From, err = s.orderRepo.GetTableByID(tx, fromID, false); err != nil {
			return err
		}
		result.To, err = s.orderRepo.GetTableByID(tx, toID, false)
		return err
	})
	if err != nil {
		return nil, repoError(err, ErrTableNotFound, "moving table")
	}
	log.Info().Int64("from_table_id", fromID).Int64("to_table_id", toID).Msg("Table moved")
	return result, nil
}

func (s *orderService) Checkout(tableID int64) (*models.Transaction, error) {
	var txn *models.Transaction
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		table, err := s.orderRepo.GetTableByID(tx, tableID, true)
		if err != nil {
			return err
		}
		if table.Status == models.TableStatusEmpty {
			return fmt.Errorf("%w: table %d", ErrNothingToSettle, table.ID)
		}

		now := s.now()
		txn = &models.Transaction{
			// The table id keeps ids unique when two tables settle in the same millisecond.
			ID:          fmt.Sprintf("TXN-%d-%d", now.UnixMilli(), table.ID),
			TableID:     table.ID,
			IsTakeaway:  table.IsTakeaway,
			Items:       []models.TransactionItem{},
			TotalAmount: billing.OrderItemsTotal(table.CurrentOrders),
			Timestamp:   now,
		}
		for _, item := range table.CurrentOrders {
			if item.Status == models.OrderStatusVoid {
				continue
			}
			txn.Items = append(txn.Items, models.TransactionItem{
				MenuID:        item.MenuID,
				Name:          item.Name,
				Price:         item.Price,
				Quantity:      item.Quantity,
				Status:        item.Status,
				Modifications: item.Modifications,
			})
		}
		if err := s.txnRepo.CreateTransaction(tx, txn); err != nil {
			return err
		}

		if err := s.orderRepo.DeleteOrderItemsByTableID(tx, table.ID); err != nil {
			return err
		}
		if table.IsTakeaway {
			return s.orderRepo.DeleteTable(tx, table.ID)
		}
		table.Reset()
		return s.orderRepo.UpdateTable(tx, table)
	})
	if err != nil {
		return nil, repoError(err, ErrTableNotFound, "checking out table")
	}
	log.Info().Int64("table_id", tableID).Str("transaction_id", txn.ID).Float64("total", txn.TotalAmount).Msg("Table settled")
	return txn, nil
}

func (s *orderService) CreateTakeaway(req CreateTakeawayRequest) (*models.Table, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var table *models.Table
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		open, err := restaurantOpen(tx, s.settingRepo)
		if err != nil {
			return err
		}
		if !open {
			return ErrRestaurantClosed
		}

		guests := 1
		startTime := s.now()
		table = &models.Table{
			Capacity:   1,
			Status:     models.TableStatusOccupied,
			Guests:     &guests,
			StartTime:  &startTime,
			IsTakeaway: true,
		}
		if err := s.orderRepo.CreateTable(tx, table); err != nil {
			return err
		}

		for _, menuID := range req.MenuIDs {
			menuItem, err := s.menuRepo.GetMenuItemByID(tx, menuID)
			if err != nil {
				return repoError(err, fmt.Errorf("%w: %d", ErrMenuItemNotFound, menuID), "resolving menu item")
			}
			if !menuItem.Available {
				return fmt.Errorf("%w: %s", ErrMenuItemUnavailable, menuItem.Name)
			}
			item := &models.OrderItem{
				TableID:  table.ID,
				MenuID:   menuItem.ID,
				Name:     menuItem.Name,
				Price:    menuItem.Price,
				Quantity: 1,
				Status:   models.OrderStatusPreparing,
			}
			if err := s.orderRepo.CreateOrderItem(tx, item); err != nil {
				return err
			}
		}

		table, err = s.orderRepo.GetTableByID(tx, table.ID, false)
		return err
	})
	if err != nil {
		return nil, repoError(err, nil, "creating takeaway")
	}
	log.Info().Int64("table_id", table.ID).Int("items", len(table.CurrentOrders)).Msg("Takeaway order created")
	return table, nil
}
