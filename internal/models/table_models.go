package models

import "time"

// TableStatus is the seating state of a restaurant table.
type TableStatus string

const (
	TableStatusEmpty        TableStatus = "EMPTY"
	TableStatusOccupied     TableStatus = "OCCUPIED"
	TableStatusNeedsService TableStatus = "NEEDS_SERVICE"
	TableStatusNeedsBill    TableStatus = "NEEDS_BILL"
)

// OrderStatus is the kitchen state of a single order line.
type OrderStatus string

const (
	OrderStatusOrdering  OrderStatus = "ORDERING" // in the cart, not yet sent to the kitchen
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusVoid      OrderStatus = "VOID"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOrdering:  {OrderStatusPreparing, OrderStatusVoid},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusVoid},
	OrderStatusReady:     {OrderStatusServed, OrderStatusVoid},
	OrderStatusServed:    {},
	OrderStatusVoid:      {},
}

// IsValidOrderStatus reports whether s names a known order status.
func IsValidOrderStatus(s string) bool {
	_, ok := orderTransitions[OrderStatus(s)]
	return ok
}

// CanTransitionTo reports whether an order line may move from s to next.
// SERVED and VOID are final.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// KitchenTouched reports whether the kitchen has started on the line.
func (s OrderStatus) KitchenTouched() bool {
	return s == OrderStatusPreparing || s == OrderStatusReady || s == OrderStatusServed
}

// Table is a physical seating unit or a virtual takeaway slot.
type Table struct {
	ID            int64       `json:"id" db:"id"`
	Capacity      int         `json:"capacity" db:"capacity"`
	Status        TableStatus `json:"status" db:"status"`
	Guests        *int        `json:"guests,omitempty" db:"guests"`
	StartTime     *time.Time  `json:"startTime,omitempty" db:"start_time"`
	IsTakeaway    bool        `json:"isTakeaway" db:"is_takeaway"`
	CurrentOrders []OrderItem `json:"currentOrders"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// Reset clears the occupancy fields, leaving the table EMPTY.
func (t *Table) Reset() {
	t.Status = TableStatusEmpty
	t.Guests = nil
	t.StartTime = nil
	t.CurrentOrders = []OrderItem{}
}

// OrderItem is one line of a table's order. Name and Price are a snapshot of the
// menu item taken when the line was added.
type OrderItem struct {
	ID            int64       `json:"id" db:"id"`
	TableID       int64       `json:"tableId" db:"table_id"`
	MenuID        int64       `json:"menuId" db:"menu_id"`
	Name          string      `json:"name" db:"name"`
	Price         float64     `json:"price" db:"price"`
	Quantity      int         `json:"quantity" db:"quantity"`
	Status        OrderStatus `json:"status" db:"status"`
	Modifications *string     `json:"modifications,omitempty" db:"modifications"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// MenuItem is a catalogue entry.
type MenuItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Available   bool      `json:"available" db:"available"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Transaction is the immutable settlement record written at table checkout.
type Transaction struct {
	ID          string            `json:"id" db:"id"`
	TableID     int64             `json:"tableId" db:"table_id"`
	IsTakeaway  bool              `json:"isTakeaway" db:"is_takeaway"`
	Items       []TransactionItem `json:"items"`
	TotalAmount float64           `json:"totalAmount" db:"total_amount"`
	Timestamp   time.Time         `json:"timestamp" db:"timestamp"`
}

// TransactionItem is the frozen copy of a settled order line.
type TransactionItem struct {
	ID            int64       `json:"id" db:"id"`
	TransactionID string      `json:"transactionId" db:"transaction_id"`
	MenuID        int64       `json:"menuId" db:"menu_id"`
	Name          string      `json:"name" db:"name"`
	Price         float64     `json:"price" db:"price"`
	Quantity      int         `json:"quantity" db:"quantity"`
	Status        OrderStatus `json:"status" db:"status"`
	Modifications *string     `json:"modifications,omitempty" db:"modifications"`
}

// TransactionFilters narrows the transaction history listing.
type TransactionFilters struct {
	TableID  *int64 `form:"table_id"`
	Takeaway *bool  `form:"takeaway"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`

	// From is inclusive, To exclusive. Set by the sales report, not bound from queries.
	From *time.Time `form:"-"`
	To   *time.Time `form:"-"`
}
