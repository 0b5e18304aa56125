//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

const (
	testProfileID = "7b8d6e5f-4c3b-4a29-9e18-0f1e2d3c4b5a"
	testEmail     = "sara@samiatarot.com"
)

func TestAccountMaintenanceService_FixMissingPasswords_HashesOnce(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	profiles := []*accounts.Profile{
		{ID: "id-1", Email: "a@samiatarot.com"},
		{ID: "id-2", Email: "b@samiatarot.com"},
	}
	mockProfiles.On("ListMissingPasswordHash", mock.Anything).Return(profiles, nil)

	var hashes []string
	mockProfiles.On("UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { hashes = append(hashes, args.String(2)) }).
		Return(nil).Times(2)

	result, err := service.FixMissingPasswords(context.Background(), accounts.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Examined)
	assert.Equal(t, 2, result.Updated)
	require.Len(t, result.Password, 16)

	// One bcrypt run serves every row, and the returned plaintext verifies
	// against it.
	require.Len(t, hashes, 2)
	assert.Equal(t, hashes[0], hashes[1])
	assert.NoError(t, accounts.VerifyPassword(hashes[0], result.Password))
}

func TestAccountMaintenanceService_FixMissingPasswords_FixedPassword(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockProfiles.On("ListMissingPasswordHash", mock.Anything).
		Return([]*accounts.Profile{{ID: "id-1", Email: testEmail}}, nil)

	var hash string
	mockProfiles.On("UpdatePasswordHash", mock.Anything, "id-1", mock.Anything).
		Run(func(args mock.Arguments) { hash = args.String(2) }).
		Return(nil)

	result, err := service.FixMissingPasswords(context.Background(), accounts.FixOptions{TempPassword: "Velvet7Moon7Rise"})
	require.NoError(t, err)

	assert.Equal(t, "Velvet7Moon7Rise", result.Password)
	assert.NoError(t, accounts.VerifyPassword(hash, "Velvet7Moon7Rise"))
}

func TestAccountMaintenanceService_FixMissingPasswords_DryRun(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockProfiles.On("ListMissingPasswordHash", mock.Anything).
		Return([]*accounts.Profile{{ID: "id-1", Email: testEmail}}, nil)

	result, err := service.FixMissingPasswords(context.Background(), accounts.FixOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Examined)
	assert.Equal(t, 0, result.Updated)
	assert.Empty(t, result.Password)
	mockProfiles.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountMaintenanceService_FixMissingPasswords_CountsRowFailures(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	profiles := []*accounts.Profile{
		{ID: "id-1", Email: "a@samiatarot.com"},
		{ID: "id-2", Email: "b@samiatarot.com"},
	}
	mockProfiles.On("ListMissingPasswordHash", mock.Anything).Return(profiles, nil)
	mockProfiles.On("UpdatePasswordHash", mock.Anything, "id-1", mock.Anything).Return(errors.New("connection reset"))
	mockProfiles.On("UpdatePasswordHash", mock.Anything, "id-2", mock.Anything).Return(nil)

	result, err := service.FixMissingPasswords(context.Background(), accounts.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)
}

func TestAccountMaintenanceService_FixMissingPasswords_NothingToDo(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockProfiles.On("ListMissingPasswordHash", mock.Anything).Return([]*accounts.Profile{}, nil)

	result, err := service.FixMissingPasswords(context.Background(), accounts.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Examined)
	assert.Empty(t, result.Password)
}

func TestAccountMaintenanceService_ResetPassword(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	profile := &accounts.Profile{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin}
	verified := &accounts.Profile{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin}

	mockProfiles.On("GetByEmail", mock.Anything, testEmail).Return(profile, nil).Once()
	mockAuth.On("UpdateUserPassword", mock.Anything, testProfileID, "NewSecret42x").Return(nil)
	mockProfiles.On("UpdatePasswordHash", mock.Anything, testProfileID, mock.Anything).
		Run(func(args mock.Arguments) { verified.PasswordHash = args.String(2) }).
		Return(nil)
	mockProfiles.On("GetByEmail", mock.Anything, testEmail).Return(verified, nil).Once()

	err = service.ResetPassword(context.Background(), testEmail, "NewSecret42x")
	require.NoError(t, err)
	mockAuth.AssertExpectations(t)
	mockProfiles.AssertExpectations(t)
}

func TestAccountMaintenanceService_ResetPassword_AuthFailure(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	profile := &accounts.Profile{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin}
	mockProfiles.On("GetByEmail", mock.Anything, testEmail).Return(profile, nil)
	mockAuth.On("UpdateUserPassword", mock.Anything, testProfileID, mock.Anything).
		Return(errors.New("401 unauthorized"))

	err = service.ResetPassword(context.Background(), testEmail, "NewSecret42x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update auth password")
	mockProfiles.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountMaintenanceService_ResetPassword_ProfileUpdateFails(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	profile := &accounts.Profile{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin}
	mockProfiles.On("GetByEmail", mock.Anything, testEmail).Return(profile, nil)
	mockAuth.On("UpdateUserPassword", mock.Anything, testProfileID, mock.Anything).Return(nil)
	mockProfiles.On("UpdatePasswordHash", mock.Anything, testProfileID, mock.Anything).
		Return(errors.New("connection reset"))

	err = service.ResetPassword(context.Background(), testEmail, "NewSecret42x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth password updated but profile update failed")
}

func TestAccountMaintenanceService_ResetPassword_UnknownEmail_Error(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockProfiles.On("GetByEmail", mock.Anything, "nobody@samiatarot.com").
		Return(nil, accounts.ErrProfileNotFound)

	err = service.ResetPassword(context.Background(), "nobody@samiatarot.com", "NewSecret42x")
	require.Error(t, err)
	assert.ErrorIs(t, err, accounts.ErrProfileNotFound)
	mockAuth.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountMaintenanceService_CreateUser(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	adminUser := &accounts.AdminUser{ID: testProfileID, Email: testEmail, Role: accounts.RoleMonitor, Confirmed: true}
	mockAuth.On("CreateUser", mock.Anything, testEmail, "NewSecret42x", accounts.RoleMonitor).Return(adminUser, nil)
	mockProfiles.On("GetByEmail", mock.Anything, testEmail).Return(nil, accounts.ErrProfileNotFound)

	var created *accounts.Profile
	mockProfiles.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*accounts.Profile) }).
		Return(nil)

	user, err := service.CreateUser(context.Background(), testEmail, "NewSecret42x", accounts.RoleMonitor)
	require.NoError(t, err)

	assert.Equal(t, testProfileID, user.ID)
	require.NotNil(t, created)
	assert.Equal(t, testProfileID, created.ID)
	assert.Equal(t, accounts.RoleMonitor, created.Role)
	assert.NoError(t, accounts.VerifyPassword(created.PasswordHash, "NewSecret42x"))
}

func TestAccountMaintenanceService_CreateUser_ExistingProfileKept(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	adminUser := &accounts.AdminUser{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin, Confirmed: true}
	mockAuth.On("CreateUser", mock.Anything, testEmail, mock.Anything, accounts.RoleAdmin).Return(adminUser, nil)
	mockProfiles.On("GetByEmail", mock.Anything, testEmail).
		Return(&accounts.Profile{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin}, nil)

	user, err := service.CreateUser(context.Background(), testEmail, "NewSecret42x", accounts.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, testProfileID, user.ID)
	mockProfiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountMaintenanceService_CreateUser_ProfileCreateFails(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	adminUser := &accounts.AdminUser{ID: testProfileID, Email: testEmail, Role: accounts.RoleAdmin, Confirmed: true}
	mockAuth.On("CreateUser", mock.Anything, testEmail, mock.Anything, accounts.RoleAdmin).Return(adminUser, nil)
	mockProfiles.On("GetByEmail", mock.Anything, testEmail).Return(nil, accounts.ErrProfileNotFound)
	mockProfiles.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	user, err := service.CreateUser(context.Background(), testEmail, "NewSecret42x", accounts.RoleAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth user created but profile creation failed")

	// The auth user exists despite the failure, so the caller still gets it.
	require.NotNil(t, user)
	assert.Equal(t, testProfileID, user.ID)
}

func TestAccountMaintenanceService_CreateUser_AuthFailure(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAuth := new(MockAuthAdminConnector)

	service, err := NewAccountMaintenanceService(mockProfiles, mockAuth, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockAuth.On("CreateUser", mock.Anything, testEmail, mock.Anything, accounts.RoleAdmin).
		Return(nil, errors.New("422 email already registered"))

	_, err = service.CreateUser(context.Background(), testEmail, "NewSecret42x", accounts.RoleAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create auth user")
	mockProfiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
