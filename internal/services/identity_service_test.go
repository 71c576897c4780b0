package services

import (
	"context"
	"testing"

	"github.com/bookwise/backend/internal/auth/service"
	"github.com/bookwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testMasterAdminEmail = "owner@bookwise.com"

// mockIdentityUserRepository is a mock implementation of IdentityUserRepository
type mockIdentityUserRepository struct {
	user                *models.User
	getByEmailErr       error
	createErr           error
	updateRoleErr       error
	updateProfileErr    error
	createdUser         *models.User
	updatedRole         models.Role
	updatedRoleUserID   int
	updateRoleCalls     int
	updatedPicture      string
	updatedProfileRole  models.Role
	updateProfileCalls  int
	getByEmailAfterRace *models.User
	getByEmailCalls     int
}

func (m *mockIdentityUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.createdUser = user
	return nil
}

func (m *mockIdentityUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.getByEmailCalls++
	// After the first lookup a racing Create may have inserted the row
	if m.getByEmailCalls > 1 && m.getByEmailAfterRace != nil {
		return m.getByEmailAfterRace, nil
	}
	if m.getByEmailErr != nil {
		return nil, m.getByEmailErr
	}
	return m.user, nil
}

func (m *mockIdentityUserRepository) UpdateRole(ctx context.Context, userID int, role models.Role) error {
	if m.updateRoleErr != nil {
		return m.updateRoleErr
	}
	m.updateRoleCalls++
	m.updatedRoleUserID = userID
	m.updatedRole = role
	return nil
}

func (m *mockIdentityUserRepository) UpdateGoogleProfile(ctx context.Context, userID int, picture string, role models.Role) error {
	if m.updateProfileErr != nil {
		return m.updateProfileErr
	}
	m.updateProfileCalls++
	m.updatedPicture = picture
	m.updatedProfileRole = role
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newIdentityService(repo *mockIdentityUserRepository) *identityService {
	logger, _ := zap.NewDevelopment()
	tokenGen := service.NewTokenGenerator("test-secret")
	return NewIdentityService(repo, tokenGen, logger, testMasterAdminEmail)
}

func TestIdentityService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.SignupRequest
		repo          *mockIdentityUserRepository
		expectedRole  models.Role
		expectedError error
	}{
		{
			name: "regular user gets user role",
			req: &models.SignupRequest{
				Email:     "reader@example.com",
				Password:  "Password123!",
				FirstName: "Alice",
				LastName:  "Reader",
			},
			repo:         &mockIdentityUserRepository{},
			expectedRole: models.RoleUser,
		},
		{
			name: "master admin email gets admin role",
			req: &models.SignupRequest{
				Email:     testMasterAdminEmail,
				Password:  "Password123!",
				FirstName: "Owner",
				LastName:  "Admin",
			},
			repo:         &mockIdentityUserRepository{},
			expectedRole: models.RoleAdmin,
		},
		{
			name: "duplicate email",
			req: &models.SignupRequest{
				Email:     "reader@example.com",
				Password:  "Password123!",
				FirstName: "Alice",
				LastName:  "Reader",
			},
			repo:          &mockIdentityUserRepository{createErr: models.ErrDuplicateEmail},
			expectedError: models.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newIdentityService(tt.repo)

			err := svc.Signup(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, tt.repo.createdUser)
			assert.Equal(t, tt.expectedRole, tt.repo.createdUser.Role)
			assert.Equal(t, models.AuthMethodLocal, tt.repo.createdUser.AuthMethod)

			// The stored hash must verify against the original password
			// and never equal it
			assert.NotEqual(t, tt.req.Password, tt.repo.createdUser.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(tt.repo.createdUser.PasswordHash), []byte(tt.req.Password)))
		})
	}
}

func TestIdentityService_Login(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.LoginRequest
		repo          func(t *testing.T) *mockIdentityUserRepository
		expectedRole  models.Role
		expectedError error
	}{
		{
			name: "success",
			req:  &models.LoginRequest{Email: "reader@example.com", Password: "Password123!"},
			repo: func(t *testing.T) *mockIdentityUserRepository {
				return &mockIdentityUserRepository{user: &models.User{
					ID:           7,
					Email:        "reader@example.com",
					FirstName:    "Alice",
					PasswordHash: hashPassword(t, "Password123!"),
					Role:         models.RoleUser,
				}}
			},
			expectedRole: models.RoleUser,
		},
		{
			name: "unknown email",
			req:  &models.LoginRequest{Email: "nobody@example.com", Password: "Password123!"},
			repo: func(t *testing.T) *mockIdentityUserRepository {
				return &mockIdentityUserRepository{getByEmailErr: models.ErrUserNotFound}
			},
			expectedError: models.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  &models.LoginRequest{Email: "reader@example.com", Password: "wrong"},
			repo: func(t *testing.T) *mockIdentityUserRepository {
				return &mockIdentityUserRepository{user: &models.User{
					ID:           7,
					Email:        "reader@example.com",
					PasswordHash: hashPassword(t, "Password123!"),
					Role:         models.RoleUser,
				}}
			},
			expectedError: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newIdentityService(tt.repo(t))

			result, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotEmpty(t, result.Token)
			assert.Equal(t, tt.expectedRole, result.Role)
			assert.Equal(t, "Welcome Alice! to BookWise", result.Message)
		})
	}
}

func TestIdentityService_Login_ErrorsAreIndistinguishable(t *testing.T) {
	// Unknown email and wrong password must produce the same error so the
	// response cannot be used to probe which emails are registered
	missingRepo := &mockIdentityUserRepository{getByEmailErr: models.ErrUserNotFound}
	wrongRepo := &mockIdentityUserRepository{user: &models.User{
		ID:           7,
		Email:        "reader@example.com",
		PasswordHash: hashPassword(t, "Password123!"),
		Role:         models.RoleUser,
	}}

	_, missingErr := newIdentityService(missingRepo).Login(context.Background(),
		&models.LoginRequest{Email: "nobody@example.com", Password: "Password123!"})
	_, wrongErr := newIdentityService(wrongRepo).Login(context.Background(),
		&models.LoginRequest{Email: "reader@example.com", Password: "wrong"})

	require.Error(t, missingErr)
	require.Error(t, wrongErr)
	assert.Equal(t, missingErr.Error(), wrongErr.Error())
}

func TestIdentityService_Login_MasterAdminSelfHeal(t *testing.T) {
	// The master admin identity logs in as admin even if the stored role
	// drifted to user
	repo := &mockIdentityUserRepository{user: &models.User{
		ID:           1,
		Email:        testMasterAdminEmail,
		FirstName:    "Owner",
		PasswordHash: hashPassword(t, "Password123!"),
		Role:         models.RoleUser,
	}}
	svc := newIdentityService(repo)

	result, err := svc.Login(context.Background(),
		&models.LoginRequest{Email: testMasterAdminEmail, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.Equal(t, 1, repo.updateRoleCalls)
	assert.Equal(t, models.RoleAdmin, repo.updatedRole)
	assert.Equal(t, 1, repo.updatedRoleUserID)
}

func TestIdentityService_GoogleLogin(t *testing.T) {
	googleReq := &models.GoogleAuthRequest{
		Email:     "reader@example.com",
		FirstName: "Alice",
		LastName:  "Reader",
		Picture:   "https://lh3.example.com/photo.jpg",
	}

	t.Run("first login creates the account", func(t *testing.T) {
		repo := &mockIdentityUserRepository{getByEmailErr: models.ErrUserNotFound}
		svc := newIdentityService(repo)

		result, err := svc.GoogleLogin(context.Background(), googleReq)

		require.NoError(t, err)
		require.NotNil(t, repo.createdUser)
		assert.Equal(t, models.AuthMethodGoogle, repo.createdUser.AuthMethod)
		assert.Equal(t, models.RoleUser, repo.createdUser.Role)
		assert.Equal(t, googleReq.Picture, repo.createdUser.Picture)
		assert.Equal(t, models.RoleUser, result.Role)
		assert.Equal(t, "Welcome Alice! to BookWise", result.Message)
	})

	t.Run("repeat login merges into the existing account", func(t *testing.T) {
		repo := &mockIdentityUserRepository{user: &models.User{
			ID:         7,
			Email:      "reader@example.com",
			FirstName:  "Alice",
			AuthMethod: models.AuthMethodLocal,
			Role:       models.RoleUser,
			Picture:    "https://lh3.example.com/old.jpg",
		}}
		svc := newIdentityService(repo)

		result, err := svc.GoogleLogin(context.Background(), googleReq)

		require.NoError(t, err)
		assert.Nil(t, repo.createdUser)
		assert.Equal(t, 1, repo.updateProfileCalls)
		assert.Equal(t, googleReq.Picture, repo.updatedPicture)
		assert.Equal(t, models.RoleUser, repo.updatedProfileRole)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("master admin is promoted toward admin", func(t *testing.T) {
		repo := &mockIdentityUserRepository{user: &models.User{
			ID:    1,
			Email: testMasterAdminEmail,
			Role:  models.RoleUser,
		}}
		svc := newIdentityService(repo)

		result, err := svc.GoogleLogin(context.Background(), &models.GoogleAuthRequest{
			Email:     testMasterAdminEmail,
			FirstName: "Owner",
		})

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, result.Role)
		assert.Equal(t, models.RoleAdmin, repo.updatedProfileRole)
	})

	t.Run("lost create race merges into the winner", func(t *testing.T) {
		repo := &mockIdentityUserRepository{
			getByEmailErr: models.ErrUserNotFound,
			createErr:     models.ErrDuplicateEmail,
			getByEmailAfterRace: &models.User{
				ID:        7,
				Email:     "reader@example.com",
				FirstName: "Alice",
				Role:      models.RoleUser,
			},
		}
		svc := newIdentityService(repo)

		result, err := svc.GoogleLogin(context.Background(), googleReq)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.updateProfileCalls)
		assert.NotEmpty(t, result.Token)
	})
}
