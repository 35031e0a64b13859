package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_pos_backend/internal/models"
)

// MenuFilters narrows the menu listing.
type MenuFilters struct {
	Category      *string
	AvailableOnly bool
	SearchTerm    *string
}

// MenuRepository defines the database operations for the menu catalogue.
type MenuRepository interface {
	CreateMenuItem(executor SQLExecutor, item *models.MenuItem) error
	GetMenuItemByID(executor SQLExecutor, itemID int64) (*models.MenuItem, error)
	GetMenuItems(executor SQLExecutor, filters MenuFilters) ([]models.MenuItem, error)
	UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error
	DeleteMenuItem(executor SQLExecutor, itemID int64) error
}

type menuRepository struct{}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository() MenuRepository {
	return &menuRepository{}
}

const menuItemColumns = `id, name, category, price, available, description, created_at, updated_at`

func scanMenuItem(row scanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var description sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.Available, &description,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

func (r *menuRepository) CreateMenuItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `INSERT INTO menu_items (name, category, price, available, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := executor.QueryRow(query,
		item.Name, item.Category, item.Price, item.Available, item.Description, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return mapWriteError(err, "creating menu item")
	}
	return nil
}

func (r *menuRepository) GetMenuItemByID(executor SQLExecutor, itemID int64) (*models.MenuItem, error) {
	item, err := scanMenuItem(executor.QueryRow(`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *menuRepository) GetMenuItems(executor SQLExecutor, filters MenuFilters) ([]models.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + menuItemColumns + ` FROM menu_items`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.AvailableOnly {
		conditions = append(conditions, "available = TRUE")
	}
	if filters.SearchTerm != nil && *filters.SearchTerm != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCounter))
		args = append(args, "%"+*filters.SearchTerm+"%")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY category, name")

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *menuRepository) UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items SET name = $1, category = $2, price = $3, available = $4, description = $5, updated_at = $6
	          WHERE id = $7`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.Name, item.Category, item.Price, item.Available, item.Description, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating menu item ID %d", item.ID))
	}
	return checkAffected(result)
}

func (r *menuRepository) DeleteMenuItem(executor SQLExecutor, itemID int64) error {
	result, err := executor.Exec(`DELETE FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting menu item ID %d", itemID))
	}
	return checkAffected(result)
}
