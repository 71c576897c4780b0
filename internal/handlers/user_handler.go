package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	authMiddleware "github.com/bookwise/backend/internal/auth/middleware"
	"github.com/bookwise/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps profile, reporting and favorites logic
type UserService interface {
	// Method ReportUser adds reporterID to the target's reporter set;
	// repeated reports are no-ops.
	ReportUser(ctx context.Context, reporterID, targetID int) error
	// Method ToggleFavorite flips bookID's membership in the user's
	// favorites and returns the book with the direction message.
	ToggleFavorite(ctx context.Context, userID, bookID int) (*models.Book, string, error)
	// Method GetFavoriteBooks returns the user's favorite books.
	GetFavoriteBooks(ctx context.Context, userID int) ([]models.Book, error)
	// Method GetUser returns a user profile without the password hash.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// ToggleFavoriteRequest carries the book to toggle
type ToggleFavoriteRequest struct {
	BookID int `json:"bookId"`
}

// UserHandler handles authenticated user HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers the authenticated user routes under /users
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.GetMe)
	r.Get("/users/favourites", h.GetFavouriteBooks)
	r.Post("/users/favourites/toggle", h.ToggleFavouriteBook)
	r.Post("/users/report/{userId}", h.ReportUser)
	r.Get("/users/{userId}", h.GetUser)
}

// GetMe handles GET /users/me
// @Summary Get current user
// @Description Return the authenticated user's profile.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]models.User "Current user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// GetUser handles GET /users/{userId}
// @Summary Get user by ID
// @Description Return a user's profile by ID.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]models.User "User"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(r.Context(), targetID)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// ReportUser handles POST /users/report/{userId}
// @Summary Report a user
// @Description Add the authenticated user to the target's reporter set. Idempotent.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "Reported user ID"
// @Success 200 {object} map[string]string "User Reported"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/report/{userId} [post]
func (h *UserHandler) ReportUser(w http.ResponseWriter, r *http.Request) {
	reporterID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	targetID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.ReportUser(r.Context(), reporterID, targetID); err != nil {
		h.Logger.Warn("report user failed", zap.Error(err), zap.Int("targetID", targetID))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "User Reported"})
}

// ToggleFavouriteBook handles POST /users/favourites/toggle
// @Summary Toggle a favorite book
// @Description Flip the book's membership in the authenticated user's favorites.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ToggleFavoriteRequest true "Toggle request"
// @Success 200 {object} map[string]any "Direction message and the book"
// @Failure 400 {object} map[string]string "Book ID is required"
// @Failure 404 {object} map[string]string "User or book not found"
// @Router /users/favourites/toggle [post]
func (h *UserHandler) ToggleFavouriteBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookID == 0 {
		h.RespondError(w, http.StatusBadRequest, "Book ID is required")
		return
	}

	book, message, err := h.userService.ToggleFavorite(r.Context(), userID, req.BookID)
	if err != nil {
		h.Logger.Warn("toggle favorite failed", zap.Error(err), zap.Int("bookID", req.BookID))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"book":    book,
	})
}

// GetFavouriteBooks handles GET /users/favourites
// @Summary List favorite books
// @Description Return the authenticated user's favorite books.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.Book "Favorite books"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/favourites [get]
func (h *UserHandler) GetFavouriteBooks(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	books, err := h.userService.GetFavoriteBooks(r.Context(), userID)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	if books == nil {
		books = []models.Book{}
	}

	h.RespondJSON(w, http.StatusOK, map[string][]models.Book{"books": books})
}
