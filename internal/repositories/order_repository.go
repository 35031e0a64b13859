package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
)

// OrderRepository defines the database operations for restaurant tables and
// the order lines seated at them.
type OrderRepository interface {
	// Table methods
	CreateTable(executor SQLExecutor, table *models.Table) error
	GetTableByID(executor SQLExecutor, tableID int64, forUpdate bool) (*models.Table, error)
	GetTables(executor SQLExecutor) ([]models.Table, error) // tables with their current order lines
	UpdateTable(executor SQLExecutor, table *models.Table) error
	DeleteTable(executor SQLExecutor, tableID int64) error

	// OrderItem methods
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) error
	GetOrderItemByID(executor SQLExecutor, itemID int64, forUpdate bool) (*models.OrderItem, error)
	GetOrderItemsByTableID(executor SQLExecutor, tableID int64) ([]models.OrderItem, error)
	UpdateOrderItem(executor SQLExecutor, item *models.OrderItem) error
	DeleteOrderItem(executor SQLExecutor, itemID int64) error
	DeleteOrderItemsByTableID(executor SQLExecutor, tableID int64) error
	MoveOrderItems(executor SQLExecutor, fromTableID, toTableID int64) error
}

type orderRepository struct{}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

const tableColumns = `id, capacity, status, guests, start_time, is_takeaway, created_at, updated_at`

func scanTable(row scanner) (*models.Table, error) {
	var t models.Table
	var guests sql.NullInt64
	var startTime sql.NullTime
	err := row.Scan(&t.ID, &t.Capacity, &t.Status, &guests, &startTime, &t.IsTakeaway, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if guests.Valid {
		g := int(guests.Int64)
		t.Guests = &g
	}
	if startTime.Valid {
		st := startTime.Time
		t.StartTime = &st
	}
	t.CurrentOrders = []models.OrderItem{}
	return &t, nil
}

// --- Table Methods ---

func (r *orderRepository) CreateTable(executor SQLExecutor, table *models.Table) error {
	query := `INSERT INTO tables (capacity, status, guests, start_time, is_takeaway, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now()
	table.CreatedAt = now
	table.UpdatedAt = now

	err := executor.QueryRow(query,
		table.Capacity, table.Status, table.Guests, table.StartTime, table.IsTakeaway, table.CreatedAt, table.UpdatedAt,
	).Scan(&table.ID)
	if err != nil {
		return mapWriteError(err, "creating table")
	}
	if table.CurrentOrders == nil {
		table.CurrentOrders = []models.OrderItem{}
	}
	return nil
}

func (r *orderRepository) GetTableByID(executor SQLExecutor, tableID int64, forUpdate bool) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1` + lockClause(forUpdate)
	table, err := scanTable(executor.QueryRow(query, tableID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, tableID, err)
	}

	items, err := r.GetOrderItemsByTableID(executor, tableID)
	if err != nil {
		return nil, err
	}
	table.CurrentOrders = items
	return table, nil
}

func (r *orderRepository) GetTables(executor SQLExecutor) ([]models.Table, error) {
	rows, err := executor.Query(`SELECT ` + tableColumns + ` FROM tables ORDER BY is_takeaway, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tables := []models.Table{}
	index := map[int64]int{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		index[t.ID] = len(tables)
		tables = append(tables, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table rows: %v", ErrDatabaseError, err)
	}

	itemRows, err := executor.Query(`SELECT ` + orderItemColumns + ` FROM order_items ORDER BY table_id, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanOrderItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		if i, ok := index[item.TableID]; ok {
			tables[i].CurrentOrders = append(tables[i].CurrentOrders, *item)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *orderRepository) UpdateTable(executor SQLExecutor, table *models.Table) error {
	query := `UPDATE tables SET capacity = $1, status = $2, guests = $3, start_time = $4, updated_at = $5
	          WHERE id = $6`

	table.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		table.Capacity, table.Status, table.Guests, table.StartTime, table.UpdatedAt, table.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating table ID %d", table.ID))
	}
	return checkAffected(result)
}

func (r *orderRepository) DeleteTable(executor SQLExecutor, tableID int64) error {
	result, err := executor.Exec(`DELETE FROM tables WHERE id = $1`, tableID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting table ID %d", tableID))
	}
	return checkAffected(result)
}

// --- OrderItem Methods ---

const orderItemColumns = `id, table_id, menu_id, name, price, quantity, status, modifications, created_at, updated_at`

func scanOrderItem(row scanner) (*models.OrderItem, error) {
	var item models.OrderItem
	var mods sql.NullString
	err := row.Scan(&item.ID, &item.TableID, &item.MenuID, &item.Name, &item.Price, &item.Quantity,
		&item.Status, &mods, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if mods.Valid {
		item.Modifications = &mods.String
	}
	return &item, nil
}

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) error {
	query := `INSERT INTO order_items (table_id, menu_id, name, price, quantity, status, modifications, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := executor.QueryRow(query,
		item.TableID, item.MenuID, item.Name, item.Price, item.Quantity, item.Status, item.Modifications,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return mapWriteError(err, "creating order item")
	}
	return nil
}

func (r *orderRepository) GetOrderItemByID(executor SQLExecutor, itemID int64, forUpdate bool) (*models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1` + lockClause(forUpdate)
	item, err := scanOrderItem(executor.QueryRow(query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *orderRepository) GetOrderItemsByTableID(executor SQLExecutor, tableID int64) ([]models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE table_id = $1 ORDER BY id`
	rows, err := executor.Query(query, tableID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *orderRepository) UpdateOrderItem(executor SQLExecutor, item *models.OrderItem) error {
	query := `UPDATE order_items SET table_id = $1, quantity = $2, status = $3, modifications = $4, updated_at = $5
	          WHERE id = $6`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.TableID, item.Quantity, item.Status, item.Modifications, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating order item ID %d", item.ID))
	}
	return checkAffected(result)
}

func (r *orderRepository) DeleteOrderItem(executor SQLExecutor, itemID int64) error {
	result, err := executor.Exec(`DELETE FROM order_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting order item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return checkAffected(result)
}

func (r *orderRepository) DeleteOrderItemsByTableID(executor SQLExecutor, tableID int64) error {
	if _, err := executor.Exec(`DELETE FROM order_items WHERE table_id = $1`, tableID); err != nil {
		return fmt.Errorf("%w: deleting order items for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return nil
}

func (r *orderRepository) MoveOrderItems(executor SQLExecutor, fromTableID, toTableID int64) error {
	query := `UPDATE order_items SET table_id = $1, updated_at = $2 WHERE table_id = $3`
	if _, err := executor.Exec(query, toTableID, time.Now(), fromTableID); err != nil {
		return fmt.Errorf("%w: moving order items from table %d to %d: %v", ErrDatabaseError, fromTableID, toTableID, err)
	}
	return nil
}
