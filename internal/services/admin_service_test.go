package services

import (
	"context"
	"testing"

	"github.com/bookwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminUserRepository is a mock implementation of AdminUserRepository
type mockAdminUserRepository struct {
	user          *models.User
	users         []models.User
	getByIDErr    error
	getAllErr     error
	updateRoleErr error
	updatedRole   models.Role
}

func (m *mockAdminUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.user, nil
}

func (m *mockAdminUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.users, nil
}

func (m *mockAdminUserRepository) UpdateRole(ctx context.Context, userID int, role models.Role) error {
	if m.updateRoleErr != nil {
		return m.updateRoleErr
	}
	m.updatedRole = role
	m.user.Role = role
	return nil
}

func newAdminService(repo *mockAdminUserRepository) *adminService {
	logger, _ := zap.NewDevelopment()
	return NewAdminService(repo, logger, testMasterAdminEmail)
}

func TestAdminService_GetAllUsers(t *testing.T) {
	tests := []struct {
		name          string
		actingRole    models.Role
		repo          *mockAdminUserRepository
		expectedCount int
		expectedError error
	}{
		{
			name:       "admin sees all users",
			actingRole: models.RoleAdmin,
			repo: &mockAdminUserRepository{users: []models.User{
				{ID: 1, Email: testMasterAdminEmail, Role: models.RoleAdmin},
				{ID: 2, Email: "reader@example.com", Role: models.RoleUser},
			}},
			expectedCount: 2,
		},
		{
			name:          "regular user is rejected",
			actingRole:    models.RoleUser,
			repo:          &mockAdminUserRepository{},
			expectedError: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAdminService(tt.repo)

			users, err := svc.GetAllUsers(context.Background(), tt.actingRole)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, users)
				return
			}

			require.NoError(t, err)
			assert.Len(t, users, tt.expectedCount)
		})
	}
}

func TestAdminService_PromoteOrDemote(t *testing.T) {
	tests := []struct {
		name            string
		actingRole      models.Role
		repo            *mockAdminUserRepository
		expectedRole    models.Role
		expectedMessage string
		expectedError   error
	}{
		{
			name:       "user is promoted to admin",
			actingRole: models.RoleAdmin,
			repo: &mockAdminUserRepository{user: &models.User{
				ID: 2, Email: "reader@example.com", Role: models.RoleUser,
			}},
			expectedRole:    models.RoleAdmin,
			expectedMessage: MessagePromoted,
		},
		{
			name:       "admin is demoted to user",
			actingRole: models.RoleAdmin,
			repo: &mockAdminUserRepository{user: &models.User{
				ID: 2, Email: "reader@example.com", Role: models.RoleAdmin,
			}},
			expectedRole:    models.RoleUser,
			expectedMessage: MessageDemoted,
		},
		{
			name:          "regular user is rejected",
			actingRole:    models.RoleUser,
			repo:          &mockAdminUserRepository{},
			expectedError: models.ErrForbidden,
		},
		{
			name:          "target not found",
			actingRole:    models.RoleAdmin,
			repo:          &mockAdminUserRepository{getByIDErr: models.ErrUserNotFound},
			expectedError: models.ErrUserNotFound,
		},
		{
			name:       "master admin cannot be modified",
			actingRole: models.RoleAdmin,
			repo: &mockAdminUserRepository{user: &models.User{
				ID: 1, Email: testMasterAdminEmail, Role: models.RoleAdmin,
			}},
			expectedError: models.ErrProtectedUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAdminService(tt.repo)

			user, message, err := svc.PromoteOrDemote(context.Background(), tt.actingRole, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, tt.expectedRole, user.Role)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}

func TestAdminService_PromoteOrDemote_RoundTrip(t *testing.T) {
	// Flipping twice restores the original role
	repo := &mockAdminUserRepository{user: &models.User{
		ID: 2, Email: "reader@example.com", Role: models.RoleUser,
	}}
	svc := newAdminService(repo)

	user, message, err := svc.PromoteOrDemote(context.Background(), models.RoleAdmin, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, MessagePromoted, message)

	user, message, err = svc.PromoteOrDemote(context.Background(), models.RoleAdmin, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, MessageDemoted, message)
}
