package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bookwise/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// IdentityService is the interface that wraps authentication business logic
type IdentityService interface {
	// Method Signup performs the local-credential account creation.
	//
	// "req" parameter contains email, password, first name and last name.
	//
	// Returns models.ErrDuplicateEmail when the email is taken; the user is
	// not logged in on success.
	Signup(ctx context.Context, req *models.SignupRequest) error
	// Method Login verifies the password and issues a session token.
	//
	// Returns models.ErrInvalidCredentials for unknown email and for wrong
	// password alike.
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error)
	// Method GoogleLogin signs a federated user in, creating or merging the
	// account, then issues a session token like Login.
	GoogleLogin(ctx context.Context, req *models.GoogleAuthRequest) (*models.AuthResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	identityService IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService IdentityService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		identityService: identityService,
	}
}

// RegisterRoutes registers all auth handler routes under /users
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users/signup", h.Signup)
	r.Post("/users/login", h.Login)
	r.Post("/users/google-auth", h.GoogleAuth)
}

// Signup handles POST /users/signup
// @Summary Sign up a new user
// @Description Create a local-credential account with email, password, first and last name.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} map[string]string "User created successfully"
// @Failure 400 {object} map[string]string "Invalid request body or email already exists"
// @Router /users/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if err := h.identityService.Signup(r.Context(), &req); err != nil {
		h.Logger.Warn("signup failed", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

// Login handles POST /users/login
// @Summary Log in
// @Description Authenticate with email and password. Returns a session token, the role and a welcome message.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResult "Login successful"
// @Failure 400 {object} map[string]string "Invalid credentials"
// @Router /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.identityService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("login failed", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GoogleAuth handles POST /users/google-auth
// @Summary Log in with Google
// @Description Federated login with provider-supplied profile fields. Creates the account on first login, merges on subsequent ones.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.GoogleAuthRequest true "Google auth request"
// @Success 200 {object} models.AuthResult "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /users/google-auth [post]
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		h.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	result, err := h.identityService.GoogleLogin(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("google auth failed", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
