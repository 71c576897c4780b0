package services

import (
	"context"
	"errors"

	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
)

// Favorite toggle messages
const (
	MessageFavoriteAdded   = "Book added to favorites"
	MessageFavoriteRemoved = "Book removed from favorites"
)

// ProfileUserRepository is the interface that wraps the User table
// operations the user service needs
type ProfileUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// Returns models.ErrUserNotFound together with "nil" value when no such
	// user exists.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method AddReport records reporterID in targetID's reporter set;
	// repeated reports are no-ops. Returns models.ErrUserNotFound when the
	// target does not exist.
	AddReport(ctx context.Context, targetID, reporterID int) error
	// Method ListReporters returns the set of user IDs that reported targetID.
	ListReporters(ctx context.Context, targetID int) ([]int, error)
	// Method AddFavorite inserts a favorite-book membership row.
	AddFavorite(ctx context.Context, userID, bookID int) error
	// Method RemoveFavorite deletes a favorite-book membership row and
	// reports whether a row was removed.
	RemoveFavorite(ctx context.Context, userID, bookID int) (bool, error)
	// Method GetFavoriteBooks returns the user's favorite books.
	GetFavoriteBooks(ctx context.Context, userID int) ([]models.Book, error)
}

// CatalogRepository is the boundary to the book catalog collaborator
type CatalogRepository interface {
	// Method GetByID retrieves a book by ID.
	//
	// Returns models.ErrBookNotFound together with "nil" value when no such
	// book exists.
	GetByID(ctx context.Context, bookID int) (*models.Book, error)
}

// userService implements reporting, favorites and profile reads
type userService struct {
	userRepo ProfileUserRepository
	bookRepo CatalogRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ProfileUserRepository, bookRepo CatalogRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// ReportUser adds reporterID to the target's reporter set. Reporting the
// same user twice leaves a single entry.
func (s *userService) ReportUser(ctx context.Context, reporterID, targetID int) error {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if err := s.userRepo.AddReport(ctx, targetID, reporterID); err != nil {
		return mapUnavailable(err)
	}

	return nil
}

// ToggleFavorite flips the membership of bookID in the user's favorites and
// returns the book together with the direction taken. Toggling twice
// restores the original state.
func (s *userService) ToggleFavorite(ctx context.Context, userID, bookID int) (*models.Book, string, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrUserNotFound
		}
		return nil, "", mapUnavailable(err)
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			return nil, "", models.ErrBookNotFound
		}
		return nil, "", mapUnavailable(err)
	}

	removed, err := s.userRepo.RemoveFavorite(ctx, userID, bookID)
	if err != nil {
		return nil, "", mapUnavailable(err)
	}
	if removed {
		return book, MessageFavoriteRemoved, nil
	}

	if err := s.userRepo.AddFavorite(ctx, userID, bookID); err != nil {
		return nil, "", mapUnavailable(err)
	}

	return book, MessageFavoriteAdded, nil
}

// GetFavoriteBooks returns the user's favorite books populated from the catalog
func (s *userService) GetFavoriteBooks(ctx context.Context, userID int) ([]models.Book, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, mapUnavailable(err)
	}

	books, err := s.userRepo.GetFavoriteBooks(ctx, userID)
	if err != nil {
		return nil, mapUnavailable(err)
	}

	return books, nil
}

// GetUser returns a user profile with the reporter set populated. The
// password hash stays behind the json:"-" tag and is never serialized.
func (s *userService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, mapUnavailable(err)
	}

	reporters, err := s.userRepo.ListReporters(ctx, userID)
	if err != nil {
		return nil, mapUnavailable(err)
	}
	user.ReportedBy = reporters

	return user, nil
}
