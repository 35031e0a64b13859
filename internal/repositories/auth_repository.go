package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
)

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) error
	FindUserByUsername(executor SQLExecutor, username string) (*models.User, error)
	FindUserByID(executor SQLExecutor, userID int64) (*models.User, error)
	GetUsers(executor SQLExecutor) ([]models.User, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	CountUsers(executor SQLExecutor) (int, error)
}

type authRepository struct{}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository() AuthRepository {
	return &authRepository{}
}

const userColumns = `id, username, password_hash, name, email, role, staff_id, is_active, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	var name, email sql.NullString
	var staffID sql.NullInt64
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &name, &email, &user.Role, &staffID,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.Name = nullStringPtr(name)
	user.Email = nullStringPtr(email)
	if staffID.Valid {
		id := staffID.Int64
		user.StaffID = &id
	}
	return &user, nil
}

// CreateUser inserts a new user. PasswordHash must already be hashed.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) error {
	query := `INSERT INTO users (username, password_hash, name, email, role, staff_id, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	user.CreatedAt = currentTime
	user.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		user.Username, user.PasswordHash, user.Name, user.Email, user.Role, user.StaffID, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return mapWriteError(err, "creating user "+user.Username)
	}
	return nil
}

// FindUserByUsername retrieves a user, password hash included, by username.
func (r *authRepository) FindUserByUsername(executor SQLExecutor, username string) (*models.User, error) {
	user, err := scanUser(executor.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

// FindUserByID retrieves a user by their ID.
func (r *authRepository) FindUserByID(executor SQLExecutor, userID int64) (*models.User, error) {
	user, err := scanUser(executor.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

func (r *authRepository) GetUsers(executor SQLExecutor) ([]models.User, error) {
	rows, err := executor.Query(`SELECT ` + userColumns + ` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

// UpdateUser saves every mutable column, password hash included.
func (r *authRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET password_hash = $1, name = $2, email = $3, role = $4, staff_id = $5,
	                 is_active = $6, updated_at = $7
	          WHERE id = $8`

	user.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		user.PasswordHash, user.Name, user.Email, user.Role, user.StaffID, user.IsActive, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating user ID %d", user.ID))
	}
	return checkAffected(result)
}

func (r *authRepository) CountUsers(executor SQLExecutor) (int, error) {
	var n int
	if err := executor.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting users: %v", ErrDatabaseError, err)
	}
	return n, nil
}
