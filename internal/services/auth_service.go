package services

import (
	"errors"
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// CreateUserRequest DTO. Role defaults to STAFF.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required" validate:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required" validate:"required,min=6,max=72"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     string  `json:"role"`
	StaffID  *int64  `json:"staffId" validate:"omitempty,min=1"`
}

// UpdateUserRequest DTO. Absent fields are left alone.
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role"`
	StaffID  *int64  `json:"staffId" validate:"omitempty,min=1"`
	IsActive *bool   `json:"isActive"`
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// TokenIssuer signs access tokens. utils.TokenManager satisfies it.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, username string, role string) (string, time.Time, error)
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	GetProfile(userID int64) (*models.User, error)
	CreateUser(req CreateUserRequest) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id int64, req UpdateUserRequest) (*models.User, error)
	EnsureBootstrapUser(username, password string) (bool, error)
}

// --- authService Implementation ---
type authService struct {
	runner    repositories.TxRunner
	authRepo  repositories.AuthRepository
	staffRepo repositories.StaffRepository
	tokens    TokenIssuer
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(runner repositories.TxRunner, authRepo repositories.AuthRepository, staffRepo repositories.StaffRepository, tokens TokenIssuer) AuthService {
	return &authService{runner: runner, authRepo: authRepo, staffRepo: staffRepo, tokens: tokens}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Login checks the credentials and issues an access token. Unknown users,
// deactivated users and wrong passwords all fail the same way.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.authRepo.FindUserByUsername(s.runner.Executor(), req.Username)
	if err != nil {
		return nil, repoError(err, ErrInvalidCredentials, "finding user")
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return &AuthResponse{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) GetProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(s.runner.Executor(), userID)
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, "getting user profile")
	}
	return user, nil
}

func (s *authService) CreateUser(req CreateUserRequest) (*models.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	role := models.RoleStaff
	if req.Role != "" {
		if !models.IsValidRole(req.Role) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
		}
		role = models.Role(req.Role)
	}
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		StaffID:      req.StaffID,
		IsActive:     true,
	}
	err = s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		if user.StaffID != nil {
			if _, err := s.staffRepo.GetStaffMemberByID(tx, *user.StaffID); err != nil {
				return repoError(err, ErrStaffNotFound, "checking staff link")
			}
		}
		return s.authRepo.CreateUser(tx, user)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, repoError(err, nil, "creating user")
	}
	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

func (s *authService) GetUsers() ([]models.User, error) {
	users, err := s.authRepo.GetUsers(s.runner.Executor())
	if err != nil {
		return nil, repoError(err, nil, "listing users")
	}
	return users, nil
}

func (s *authService) UpdateUser(id int64, req UpdateUserRequest) (*models.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Role != nil && !models.IsValidRole(*req.Role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, *req.Role)
	}

	var user *models.User
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		user, err = s.authRepo.FindUserByID(tx, id)
		if err != nil {
			return repoError(err, ErrUserNotFound, "loading user")
		}
		if req.Password != nil {
			if user.PasswordHash, err = hashPassword(*req.Password); err != nil {
				return err
			}
		}
		if req.Name != nil {
			user.Name = req.Name
		}
		if req.Email != nil {
			user.Email = req.Email
		}
		if req.Role != nil {
			user.Role = models.Role(*req.Role)
		}
		if req.StaffID != nil {
			if _, err := s.staffRepo.GetStaffMemberByID(tx, *req.StaffID); err != nil {
				return repoError(err, ErrStaffNotFound, "checking staff link")
			}
			user.StaffID = req.StaffID
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		return s.authRepo.UpdateUser(tx, user)
	})
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, "updating user")
	}
	log.Info().Int64("user_id", user.ID).Msg("User updated")
	return user, nil
}

// EnsureBootstrapUser creates an OWNER account when no user exists yet.
// It reports whether an account was created.
func (s *authService) EnsureBootstrapUser(username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	n, err := s.authRepo.CountUsers(s.runner.Executor())
	if err != nil {
		return false, repoError(err, nil, "counting users")
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.CreateUser(CreateUserRequest{Username: username, Password: password, Role: string(models.RoleOwner)}); err != nil {
		return false, err
	}
	log.Warn().Str("username", username).Msg("Bootstrap owner account created")
	return true, nil
}
