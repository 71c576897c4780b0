package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookwise/backend/internal/auth/service"
	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the bcrypt work factor for password hashing
const bcryptCost = 10

// IdentityUserRepository is the interface that wraps the User table
// operations the identity service needs
type IdentityUserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// Returns models.ErrDuplicateEmail when the unique email constraint is
	// violated; any other error is returned as is.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by exact email match.
	//
	// Returns models.ErrUserNotFound together with "nil" value when no such
	// user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method UpdateRole sets the role of the user with the given ID.
	UpdateRole(ctx context.Context, userID int, role models.Role) error
	// Method UpdateGoogleProfile switches the user to google authentication,
	// refreshes the picture and sets the role in one update.
	UpdateGoogleProfile(ctx context.Context, userID int, picture string, role models.Role) error
}

// identityService implements signup, login and google login
type identityService struct {
	userRepo         IdentityUserRepository
	tokenGenerator   *service.TokenGenerator
	logger           *zap.Logger
	masterAdminEmail string
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	userRepo IdentityUserRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
	masterAdminEmail string,
) *identityService {
	return &identityService{
		userRepo:         userRepo,
		tokenGenerator:   tokenGenerator,
		logger:           logger,
		masterAdminEmail: masterAdminEmail,
	}
}

// roleFor applies the master admin rule: the sentinel email is always
// admin, everyone else starts as a regular user
func (s *identityService) roleFor(email string) models.Role {
	if email == s.masterAdminEmail {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// Signup creates a local-credential account. It does not log the user in.
func (s *identityService) Signup(ctx context.Context, req *models.SignupRequest) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(passwordHash),
		AuthMethod:   models.AuthMethodLocal,
		Role:         s.roleFor(req.Email),
	}

	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	// Duplicate emails are rejected by the store's unique constraint, so
	// there is no lookup-then-insert window to race through.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return mapUnavailable(err)
	}

	return nil
}

// Login verifies the password and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *identityService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, mapUnavailable(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	// Self-heal: the master admin identity always logs in as admin, even
	// if the stored role drifted
	if user.Email == s.masterAdminEmail && user.Role != models.RoleAdmin {
		if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return nil, mapUnavailable(err)
		}
		user.Role = models.RoleAdmin
		s.logger.Info("restored master admin role", zap.Int("userID", user.ID))
	}

	return s.issueToken(user)
}

// GoogleLogin signs a federated user in, creating or merging the account.
// Repeated calls converge: auth method and picture are overwritten, and the
// master admin role only ever moves toward admin.
func (s *identityService) GoogleLogin(ctx context.Context, req *models.GoogleAuthRequest) (*models.AuthResult, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		user = &models.User{
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Picture:    req.Picture,
			AuthMethod: models.AuthMethodGoogle,
			Role:       s.roleFor(req.Email),
		}

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return s.issueToken(user)
		}
		if !errors.Is(err, models.ErrDuplicateEmail) {
			return nil, mapUnavailable(err)
		}

		// Lost a race with a concurrent first login for the same email;
		// fetch the winner's record and merge into it instead.
		user, err = s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, mapUnavailable(err)
		}
	} else if err != nil {
		return nil, mapUnavailable(err)
	}

	role := user.Role
	if user.Email == s.masterAdminEmail && role != models.RoleAdmin {
		role = models.RoleAdmin
	}

	if err := s.userRepo.UpdateGoogleProfile(ctx, user.ID, req.Picture, role); err != nil {
		return nil, mapUnavailable(err)
	}
	user.AuthMethod = models.AuthMethodGoogle
	user.Picture = req.Picture
	user.Role = role

	return s.issueToken(user)
}

// issueToken builds the login response for a verified user
func (s *identityService) issueToken(user *models.User) (*models.AuthResult, error) {
	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResult{
		Token:   token,
		Role:    user.Role,
		Message: fmt.Sprintf("Welcome %s! to BookWise", user.FirstName),
	}, nil
}
