package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/bookwise/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VisitorService is the interface that wraps visit logging logic
type VisitorService interface {
	// Method LogVisit counts a visit for the IP and returns updated totals.
	LogVisit(ctx context.Context, ip, userAgent string) (*models.VisitResult, error)
}

// LogVisitRequest carries the client-reported user agent
type LogVisitRequest struct {
	UserAgent string `json:"userAgent"`
}

// VisitHandler handles visit logging
type VisitHandler struct {
	BaseHandler
	visitorService VisitorService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitorService VisitorService, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		visitorService: visitorService,
	}
}

// RegisterRoutes registers the visit logging route
func (h *VisitHandler) RegisterRoutes(r chi.Router) {
	r.Post("/log-visit", h.LogVisit)
}

// LogVisit handles POST /log-visit
// @Summary Log a visit
// @Description Count a visit for the caller's IP and return the updated totals.
// @Tags visits
// @Accept json
// @Produce json
// @Param request body LogVisitRequest false "Visit info"
// @Success 200 {object} models.VisitResult "Visit logged"
// @Router /log-visit [post]
func (h *VisitHandler) LogVisit(w http.ResponseWriter, r *http.Request) {
	var req LogVisitRequest
	// Body is optional; a missing user agent is fine
	json.NewDecoder(r.Body).Decode(&req)
	if req.UserAgent == "" {
		req.UserAgent = r.UserAgent()
	}

	result, err := h.visitorService.LogVisit(r.Context(), clientIP(r), req.UserAgent)
	if err != nil {
		h.Logger.Warn("log visit failed", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// clientIP prefers the X-Forwarded-For chain set by the proxy, falling back
// to the connection's remote address
func clientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
