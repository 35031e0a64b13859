package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hotel_pos_backend/internal/models"
)

// TransactionRepository stores the immutable settlement records written at
// table checkout.
type TransactionRepository interface {
	CreateTransaction(executor SQLExecutor, txn *models.Transaction) error
	GetTransactionByID(executor SQLExecutor, id string) (*models.Transaction, error)
	GetTransactions(executor SQLExecutor, filters models.TransactionFilters) ([]models.Transaction, int, error)
}

type transactionRepository struct{}

// NewTransactionRepository creates a new instance of TransactionRepository.
func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) CreateTransaction(executor SQLExecutor, txn *models.Transaction) error {
	_, err := executor.Exec(
		`INSERT INTO transactions (id, table_id, is_takeaway, total_amount, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		txn.ID, txn.TableID, txn.IsTakeaway, txn.TotalAmount, txn.Timestamp,
	)
	if err != nil {
		return mapWriteError(err, "creating transaction "+txn.ID)
	}

	itemQuery := `INSERT INTO transaction_items (transaction_id, menu_id, name, price, quantity, status, modifications)
	              VALUES ($1, $2, $3, $4, $5, $6, $7)
	              RETURNING id`
	for i := range txn.Items {
		item := &txn.Items[i]
		item.TransactionID = txn.ID
		err := executor.QueryRow(itemQuery,
			item.TransactionID, item.MenuID, item.Name, item.Price, item.Quantity, item.Status, item.Modifications,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("%w: creating transaction item for %s: %v", ErrDatabaseError, txn.ID, err)
		}
	}
	return nil
}

func (r *transactionRepository) GetTransactionByID(executor SQLExecutor, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := executor.QueryRow(
		`SELECT id, table_id, is_takeaway, total_amount, timestamp FROM transactions WHERE id = $1`, id,
	).Scan(&txn.ID, &txn.TableID, &txn.IsTakeaway, &txn.TotalAmount, &txn.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting transaction %s: %v", ErrDatabaseError, id, err)
	}

	items, err := r.getItems(executor, []string{id})
	if err != nil {
		return nil, err
	}
	txn.Items = items[id]
	if txn.Items == nil {
		txn.Items = []models.TransactionItem{}
	}
	return &txn, nil
}

func (r *transactionRepository) GetTransactions(executor SQLExecutor, filters models.TransactionFilters) ([]models.Transaction, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, table_id, is_takeaway, total_amount, timestamp, COUNT(*) OVER() as total_count
	                          FROM transactions`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.TableID != nil {
		conditions = append(conditions, fmt.Sprintf("table_id = $%d", argCounter))
		args = append(args, *filters.TableID)
		argCounter++
	}
	if filters.Takeaway != nil {
		conditions = append(conditions, fmt.Sprintf("is_takeaway = $%d", argCounter))
		args = append(args, *filters.Takeaway)
		argCounter++
	}
	if filters.From != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", argCounter))
		args = append(args, *filters.From)
		argCounter++
	}
	if filters.To != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp < $%d", argCounter))
		args = append(args, *filters.To)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY timestamp DESC")

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
		return nil, 0, fmt.Errorf("%w: querying transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	totalCount := 0
	var ids []string
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.ID, &txn.TableID, &txn.IsTakeaway, &txn.TotalAmount, &txn.Timestamp, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		txns = append(txns, txn)
		ids = append(ids, txn.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating transaction rows: %v", ErrDatabaseError, err)
	}
	if len(ids) == 0 {
		return txns, totalCount, nil
	}

	items, err := r.getItems(executor, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range txns {
		txns[i].Items = items[txns[i].ID]
		if txns[i].Items == nil {
			txns[i].Items = []models.TransactionItem{}
		}
	}
	return txns, totalCount, nil
}

func (r *transactionRepository) getItems(executor SQLExecutor, ids []string) (map[string][]models.TransactionItem, error) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT id, transaction_id, menu_id, name, price, quantity, status, modifications
	          FROM transaction_items WHERE transaction_id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY id`

	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying transaction items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	byTxn := map[string][]models.TransactionItem{}
	for rows.Next() {
		var item models.TransactionItem
		var mods sql.NullString
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.MenuID, &item.Name, &item.Price, &item.Quantity, &item.Status, &mods); err != nil {
			return nil, fmt.Errorf("%w: scanning transaction item: %v", ErrDatabaseError, err)
		}
		if mods.Valid {
			item.Modifications = &mods.String
		}
		byTxn[item.TransactionID] = append(byTxn[item.TransactionID], item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transaction item rows: %v", ErrDatabaseError, err)
	}
	return byTxn, nil
}
