package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_pos_backend/internal/models"
)

// MaintenanceFilters narrows the maintenance log listing.
type MaintenanceFilters struct {
	RoomID *int64
	Status *models.MaintenanceStatus
}

// MaintenanceRepository defines the database operations for room maintenance tickets.
type MaintenanceRepository interface {
	CreateMaintenanceLog(executor SQLExecutor, entry *models.RoomMaintenanceLog) error
	GetMaintenanceLogByID(executor SQLExecutor, id int64) (*models.RoomMaintenanceLog, error)
	GetMaintenanceLogs(executor SQLExecutor, filters MaintenanceFilters) ([]models.RoomMaintenanceLog, error)
	UpdateMaintenanceLog(executor SQLExecutor, entry *models.RoomMaintenanceLog) error
}

type maintenanceRepository struct{}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository.
func NewMaintenanceRepository() MaintenanceRepository {
	return &maintenanceRepository{}
}

const maintenanceSelect = `SELECT m.id, m.room_id, rm.room_number, m.issue, m.notes, m.status, m.reported_at, m.resolved_at
	FROM room_maintenance_logs m
	JOIN rooms rm ON rm.id = m.room_id`

func scanMaintenanceLog(row scanner) (*models.RoomMaintenanceLog, error) {
	var entry models.RoomMaintenanceLog
	var notes sql.NullString
	var resolvedAt sql.NullTime
	err := row.Scan(&entry.ID, &entry.RoomID, &entry.RoomNumber, &entry.Issue, &notes, &entry.Status,
		&entry.ReportedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	entry.Notes = nullStringPtr(notes)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		entry.ResolvedAt = &t
	}
	return &entry, nil
}

func (r *maintenanceRepository) CreateMaintenanceLog(executor SQLExecutor, entry *models.RoomMaintenanceLog) error {
	query := `INSERT INTO room_maintenance_logs (room_id, issue, notes, status, reported_at, resolved_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if entry.ReportedAt.IsZero() {
		entry.ReportedAt = time.Now()
	}
	err := executor.QueryRow(query,
		entry.RoomID, entry.Issue, entry.Notes, entry.Status, entry.ReportedAt, entry.ResolvedAt,
	).Scan(&entry.ID)
	if err != nil {
		return mapWriteError(err, "creating maintenance log")
	}
	return nil
}

func (r *maintenanceRepository) GetMaintenanceLogByID(executor SQLExecutor, id int64) (*models.RoomMaintenanceLog, error) {
	entry, err := scanMaintenanceLog(executor.QueryRow(maintenanceSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting maintenance log by ID %d: %v", ErrDatabaseError, id, err)
	}
	return entry, nil
}

func (r *maintenanceRepository) GetMaintenanceLogs(executor SQLExecutor, filters MaintenanceFilters) ([]models.RoomMaintenanceLog, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(maintenanceSelect)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("m.room_id = $%d", argCounter))
		args = append(args, *filters.RoomID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("m.status = $%d", argCounter))
		args = append(args, *filters.Status)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY m.reported_at DESC")

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying maintenance logs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.RoomMaintenanceLog{}
	for rows.Next() {
		entry, err := scanMaintenanceLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning maintenance log: %v", ErrDatabaseError, err)
		}
		entries = append(entries, *entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating maintenance log rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

func (r *maintenanceRepository) UpdateMaintenanceLog(executor SQLExecutor, entry *models.RoomMaintenanceLog) error {
	query := `UPDATE room_maintenance_logs SET issue = $1, notes = $2, status = $3, resolved_at = $4 WHERE id = $5`
	result, err := executor.Exec(query, entry.Issue, entry.Notes, entry.Status, entry.ResolvedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("%w: updating maintenance log ID %d: %v", ErrDatabaseError, entry.ID, err)
	}
	return checkAffected(result)
}
