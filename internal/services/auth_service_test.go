package services

import (
	"errors"
	"testing"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateAccessToken(userID int64, username string, role string) (string, time.Time, error) {
	args := m.Called(userID, username, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func newAuthFixture(t *testing.T, tokens TokenIssuer) (*memStore, AuthService) {
	t.Helper()
	store := newMemStore()
	return store, NewAuthService(&memRunner{store: store}, store, store, tokens)
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	manager, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	_, svc := newAuthFixture(t, manager)

	created, err := svc.CreateUser(CreateUserRequest{Username: "captain1", Password: "s3cret!!", Role: "CAPTAIN"})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!!", created.PasswordHash)

	resp, err := svc.Login(LoginRequest{Username: "captain1", Password: "s3cret!!"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.User.ID)

	claims, err := manager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, "CAPTAIN", claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	tokens := new(mockTokenIssuer)
	_, svc := newAuthFixture(t, tokens)

	user, err := svc.CreateUser(CreateUserRequest{Username: "billing", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role, "role defaults to STAFF")

	_, err = svc.Login(LoginRequest{Username: "billing", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Username: "ghost", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactive := false
	_, err = svc.UpdateUser(user.ID, UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Login(LoginRequest{Username: "billing", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_LoginTokenError(t *testing.T) {
	tokens := new(mockTokenIssuer)
	_, svc := newAuthFixture(t, tokens)
	user, err := svc.CreateUser(CreateUserRequest{Username: "manager", Password: "password1", Role: "MANAGER"})
	require.NoError(t, err)

	signErr := errors.New("signing failed")
	tokens.On("GenerateAccessToken", user.ID, "manager", "MANAGER").Return("", time.Time{}, signErr).Once()

	_, err = svc.Login(LoginRequest{Username: "manager", Password: "password1"})
	assert.ErrorIs(t, err, signErr)
	tokens.AssertExpectations(t)
}

func TestAuthService_CreateUserValidation(t *testing.T) {
	store, svc := newAuthFixture(t, new(mockTokenIssuer))

	_, err := svc.CreateUser(CreateUserRequest{Username: "cook1", Password: "password1", Role: "CHEF"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(CreateUserRequest{Username: "waiter", Password: "pw"})
	assert.ErrorIs(t, err, ErrValidation)

	missing := int64(404)
	_, err = svc.CreateUser(CreateUserRequest{Username: "waiter", Password: "password1", StaffID: &missing})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = svc.CreateUser(CreateUserRequest{Username: "waiter", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.CreateUser(CreateUserRequest{Username: "waiter", Password: "password2"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	assert.Len(t, store.users, 1)
}

func TestAuthService_UpdateUserLinksStaff(t *testing.T) {
	store, svc := newAuthFixture(t, new(mockTokenIssuer))
	staff := &models.StaffMember{Name: "Ravi", Role: "Waiter"}
	require.NoError(t, store.CreateStaffMember(nil, staff))
	user, err := svc.CreateUser(CreateUserRequest{Username: "ravi", Password: "password1"})
	require.NoError(t, err)

	role := "CAPTAIN"
	updated, err := svc.UpdateUser(user.ID, UpdateUserRequest{StaffID: &staff.ID, Role: &role})
	require.NoError(t, err)
	require.NotNil(t, updated.StaffID)
	assert.Equal(t, staff.ID, *updated.StaffID)
	assert.Equal(t, models.RoleCaptain, updated.Role)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaptain, profile.Role)

	_, err = svc.UpdateUser(999, UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_EnsureBootstrapUser(t *testing.T) {
	store, svc := newAuthFixture(t, new(mockTokenIssuer))

	created, err := svc.EnsureBootstrapUser("", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureBootstrapUser("owner", "change-me")
	require.NoError(t, err)
	assert.True(t, created)

	owner, err := store.FindUserByUsername(nil, "owner")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, owner.Role)

	created, err = svc.EnsureBootstrapUser("other", "change-me")
	require.NoError(t, err)
	assert.False(t, created, "only seeds an empty users table")
}
