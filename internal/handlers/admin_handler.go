package handlers

import (
	"context"
	"net/http"
	"strconv"

	authMiddleware "github.com/bookwise/backend/internal/auth/middleware"
	"github.com/bookwise/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps admin-only business logic
type AdminService interface {
	// Method GetAllUsers returns every user without password hashes.
	// Returns models.ErrForbidden unless actingRole is admin.
	GetAllUsers(ctx context.Context, actingRole models.Role) ([]models.User, error)
	// Method PromoteOrDemote flips the target's role one step. Returns
	// models.ErrProtectedUser when the target is the master admin.
	PromoteOrDemote(ctx context.Context, actingRole models.Role, targetUserID int) (*models.User, string, error)
}

// AdminHandler handles admin-only HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers the admin routes under /users. The router wraps
// these with the admin role middleware.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.GetAllUsers)
	r.Patch("/users/promote/{userId}", h.PromoteUser)
}

// GetAllUsers handles GET /users
// @Summary List all users
// @Description Return every user. Admin only; password hashes are never included.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.User "Users"
// @Failure 401 {object} map[string]string "Not authorized"
// @Router /users [get]
func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	role, ok := authMiddleware.GetRole(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	users, err := h.adminService.GetAllUsers(r.Context(), role)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	h.RespondJSON(w, http.StatusOK, map[string][]models.User{"users": users})
}

// PromoteUser handles PATCH /users/promote/{userId}
// @Summary Promote or demote a user
// @Description Flip the target's role between user and admin. The master admin cannot be modified.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "Target user ID"
// @Success 200 {object} map[string]any "Direction message and the updated user"
// @Failure 401 {object} map[string]string "Not authorized or protected identity"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/promote/{userId} [patch]
func (h *AdminHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	role, ok := authMiddleware.GetRole(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	targetID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, message, err := h.adminService.PromoteOrDemote(r.Context(), role, targetID)
	if err != nil {
		h.Logger.Warn("promote or demote failed", zap.Error(err), zap.Int("targetID", targetID))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"user":    user,
	})
}
