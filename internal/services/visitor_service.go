package services

import (
	"context"

	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
)

// VisitorRepository is the interface that wraps the visitor table operations
type VisitorRepository interface {
	// Method Upsert records a visit for the IP atomically and reports
	// whether the IP was seen for the first time.
	Upsert(ctx context.Context, ip, userAgent string) (bool, error)
	// Method GetByIP retrieves a visitor record by IP.
	GetByIP(ctx context.Context, ip string) (*models.Visitor, error)
	// Method CountVisitors returns the number of distinct visitors.
	CountVisitors(ctx context.Context) (int, error)
}

// visitorService implements visit logging
type visitorService struct {
	visitorRepo VisitorRepository
	logger      *zap.Logger
}

// NewVisitorService creates a new visitor service
func NewVisitorService(visitorRepo VisitorRepository, logger *zap.Logger) *visitorService {
	return &visitorService{
		visitorRepo: visitorRepo,
		logger:      logger,
	}
}

// LogVisit counts a visit for the given IP and returns the updated totals
func (s *visitorService) LogVisit(ctx context.Context, ip, userAgent string) (*models.VisitResult, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	newVisitor, err := s.visitorRepo.Upsert(ctx, ip, userAgent)
	if err != nil {
		return nil, mapUnavailable(err)
	}

	visitor, err := s.visitorRepo.GetByIP(ctx, ip)
	if err != nil {
		return nil, mapUnavailable(err)
	}

	totalVisitors, err := s.visitorRepo.CountVisitors(ctx)
	if err != nil {
		return nil, mapUnavailable(err)
	}

	message := "Visit logged"
	if newVisitor {
		message = "New visitor created"
	}

	return &models.VisitResult{
		Message:       message,
		NewVisitor:    newVisitor,
		TotalVisitors: totalVisitors,
		TotalVisits:   visitor.VisitCount,
	}, nil
}
