package services

import (
	"context"
	"errors"

	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
)

// Messages returned by the role flip, also asserted by the frontend
const (
	MessagePromoted = "User was Promoted to Admin"
	MessageDemoted  = "User was Demoted to User"
)

// AdminUserRepository is the interface that wraps the User table operations
// the admin service needs
type AdminUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// Returns models.ErrUserNotFound together with "nil" value when no such
	// user exists.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetAll retrieves all users without password hashes.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method UpdateRole sets the role of the user with the given ID.
	UpdateRole(ctx context.Context, userID int, role models.Role) error
}

// adminService implements the admin-only operations
type adminService struct {
	userRepo         AdminUserRepository
	logger           *zap.Logger
	masterAdminEmail string
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserRepository, logger *zap.Logger, masterAdminEmail string) *adminService {
	return &adminService{
		userRepo:         userRepo,
		logger:           logger,
		masterAdminEmail: masterAdminEmail,
	}
}

// GetAllUsers returns every user. Password hashes never leave the repository.
func (s *adminService) GetAllUsers(ctx context.Context, actingRole models.Role) ([]models.User, error) {
	if actingRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}

	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, mapUnavailable(err)
	}

	return users, nil
}

// PromoteOrDemote flips the target's role one step: user becomes admin,
// admin becomes user. Calling it twice restores the original role. The
// master admin identity is immutable through this path.
func (s *adminService) PromoteOrDemote(ctx context.Context, actingRole models.Role, targetUserID int) (*models.User, string, error) {
	// The router gates admin routes already; this check keeps the rule
	// with the state machine instead of trusting the transport layer.
	if actingRole != models.RoleAdmin {
		return nil, "", models.ErrForbidden
	}

	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrUserNotFound
		}
		return nil, "", mapUnavailable(err)
	}

	if user.Email == s.masterAdminEmail {
		return nil, "", models.ErrProtectedUser
	}

	newRole := models.RoleAdmin
	message := MessagePromoted
	if user.Role != models.RoleUser {
		newRole = models.RoleUser
		message = MessageDemoted
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, newRole); err != nil {
		return nil, "", mapUnavailable(err)
	}
	user.Role = newRole

	s.logger.Info("user role changed",
		zap.Int("userID", user.ID),
		zap.String("role", string(newRole)),
	)

	return user, message, nil
}
