package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_pos_backend/internal/models"
)

// dateLayout is how attendance dates cross the DATE column boundary. Sending a
// plain date keeps the session time zone out of the conversion.
const dateLayout = "2006-01-02"

// AttendanceFilters narrows the attendance listing. From and To are inclusive dates.
type AttendanceFilters struct {
	StaffID *int64
	From    *time.Time
	To      *time.Time
}

// StaffRepository defines the interface for staff and attendance related database operations.
type StaffRepository interface {
	// StaffMember methods
	CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) error
	GetStaffMemberByID(executor SQLExecutor, id int64) (*models.StaffMember, error)
	GetStaffMembers(executor SQLExecutor) ([]models.StaffMember, error)
	UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) error
	DeleteStaffMember(executor SQLExecutor, id int64) error

	// Attendance methods
	CreateAttendance(executor SQLExecutor, record *models.AttendanceRecord) error
	GetAttendance(executor SQLExecutor, staffID int64, date time.Time, forUpdate bool) (*models.AttendanceRecord, error)
	GetAttendanceRecords(executor SQLExecutor, filters AttendanceFilters) ([]models.AttendanceRecord, error)
	UpdateAttendance(executor SQLExecutor, record *models.AttendanceRecord) error
}

type staffRepository struct{}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository() StaffRepository {
	return &staffRepository{}
}

// --- StaffMember Methods ---

func (r *staffRepository) CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) error {
	query := `INSERT INTO staff_members (name, role, avatar, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	staff.CreatedAt = currentTime
	staff.UpdatedAt = currentTime

	err := executor.QueryRow(query, staff.Name, staff.Role, staff.Avatar, staff.CreatedAt, staff.UpdatedAt).Scan(&staff.ID)
	if err != nil {
		return mapWriteError(err, "creating staff member")
	}
	return nil
}

func (r *staffRepository) GetStaffMemberByID(executor SQLExecutor, id int64) (*models.StaffMember, error) {
	var staff models.StaffMember
	query := `SELECT id, name, role, avatar, created_at, updated_at FROM staff_members WHERE id = $1`
	err := executor.QueryRow(query, id).Scan(&staff.ID, &staff.Name, &staff.Role, &staff.Avatar, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &staff, nil
}

func (r *staffRepository) GetStaffMembers(executor SQLExecutor) ([]models.StaffMember, error) {
	rows, err := executor.Query(`SELECT id, name, role, avatar, created_at, updated_at FROM staff_members ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	staffMembers := []models.StaffMember{}
	for rows.Next() {
		var staff models.StaffMember
		if err := rows.Scan(&staff.ID, &staff.Name, &staff.Role, &staff.Avatar, &staff.CreatedAt, &staff.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning staff member from list: %v", ErrDatabaseError, err)
		}
		staffMembers = append(staffMembers, staff)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff member rows: %v", ErrDatabaseError, err)
	}
	return staffMembers, nil
}

func (r *staffRepository) UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) error {
	query := `UPDATE staff_members SET name = $1, role = $2, avatar = $3, updated_at = $4 WHERE id = $5`

	staff.UpdatedAt = time.Now()
	result, err := executor.Exec(query, staff.Name, staff.Role, staff.Avatar, staff.UpdatedAt, staff.ID)
	if err != nil {
		return fmt.Errorf("%w: updating staff member ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	return checkAffected(result)
}

func (r *staffRepository) DeleteStaffMember(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting staff member ID %d", id))
	}
	return checkAffected(result)
}

// --- Attendance Methods ---

const attendanceColumns = `a.id, a.staff_id, a.date, a.status, a.check_in, a.check_out, a.created_at, a.updated_at`

func scanAttendance(row scanner, extra ...interface{}) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	var checkIn, checkOut sql.NullTime
	dest := []interface{}{
		&record.ID, &record.StaffID, &record.Date, &record.Status, &checkIn, &checkOut,
		&record.CreatedAt, &record.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if checkIn.Valid {
		t := checkIn.Time
		record.CheckIn = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		record.CheckOut = &t
	}
	return &record, nil
}

func (r *staffRepository) CreateAttendance(executor SQLExecutor, record *models.AttendanceRecord) error {
	query := `INSERT INTO attendance_records (staff_id, date, status, check_in, check_out, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	record.CreatedAt = currentTime
	record.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		record.StaffID, record.Date.Format(dateLayout), record.Status, record.CheckIn, record.CheckOut,
		record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("creating attendance for staff ID %d", record.StaffID))
	}
	return nil
}

func (r *staffRepository) GetAttendance(executor SQLExecutor, staffID int64, date time.Time, forUpdate bool) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records a
	          WHERE a.staff_id = $1 AND a.date = $2` + lockClause(forUpdate)
	record, err := scanAttendance(executor.QueryRow(query, staffID, date.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting attendance for staff ID %d: %v", ErrDatabaseError, staffID, err)
	}
	return record, nil
}

func (r *staffRepository) GetAttendanceRecords(executor SQLExecutor, filters AttendanceFilters) ([]models.AttendanceRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + attendanceColumns + `, sm.name, sm.role, sm.avatar
	    FROM attendance_records a
	    JOIN staff_members sm ON sm.id = a.staff_id`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("a.staff_id = $%d", argCounter))
		args = append(args, *filters.StaffID)
		argCounter++
	}
	if filters.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argCounter))
		args = append(args, filters.From.Format(dateLayout))
		argCounter++
	}
	if filters.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argCounter))
		args = append(args, filters.To.Format(dateLayout))
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY a.date DESC, sm.name ASC")

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		staff := &models.StaffMember{}
		record, err := scanAttendance(rows, &staff.Name, &staff.Role, &staff.Avatar)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning attendance record: %v", ErrDatabaseError, err)
		}
		staff.ID = record.StaffID
		record.Staff = staff
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *staffRepository) UpdateAttendance(executor SQLExecutor, record *models.AttendanceRecord) error {
	query := `UPDATE attendance_records SET status = $1, check_in = $2, check_out = $3, updated_at = $4 WHERE id = $5`

	record.UpdatedAt = time.Now()
	result, err := executor.Exec(query, record.Status, record.CheckIn, record.CheckOut, record.UpdatedAt, record.ID)
	if err != nil {
		return fmt.Errorf("%w: updating attendance ID %d: %v", ErrDatabaseError, record.ID, err)
	}
	return checkAffected(result)
}
