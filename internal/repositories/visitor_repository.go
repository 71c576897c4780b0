package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
)

// visitorRepository tracks per-IP visit counts
type visitorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(db *sql.DB, logger *zap.Logger) *visitorRepository {
	return &visitorRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert records a visit for the given IP. A single statement keeps
// concurrent visits from the same IP from losing counts. Returns true when
// the IP was seen for the first time.
func (r *visitorRepository) Upsert(ctx context.Context, ip, userAgent string) (bool, error) {
	query := `
		INSERT INTO visitors (ip, user_agent, visit_count)
		VALUES (?, ?, 1)
		ON DUPLICATE KEY UPDATE visit_count = visit_count + 1, user_agent = VALUES(user_agent)
	`

	result, err := r.db.ExecContext(ctx, query, ip, userAgent)
	if err != nil {
		r.logger.Error("failed to upsert visitor", zap.Error(err), zap.String("ip", ip))
		return false, fmt.Errorf("failed to upsert visitor: %w", err)
	}

	// MySQL reports 1 affected row for an insert, 2 for an update
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// GetByIP retrieves a visitor record by IP
func (r *visitorRepository) GetByIP(ctx context.Context, ip string) (*models.Visitor, error) {
	query := `
		SELECT id, ip, user_agent, visit_count
		FROM visitors
		WHERE ip = ?
		LIMIT 1
	`

	visitor := &models.Visitor{}
	err := r.db.QueryRowContext(ctx, query, ip).Scan(
		&visitor.ID,
		&visitor.IP,
		&visitor.UserAgent,
		&visitor.VisitCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("visitor not found")
	}
	if err != nil {
		r.logger.Error("failed to get visitor", zap.Error(err), zap.String("ip", ip))
		return nil, fmt.Errorf("failed to get visitor: %w", err)
	}

	return visitor, nil
}

// CountVisitors returns the number of distinct visitors
func (r *visitorRepository) CountVisitors(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM visitors`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		r.logger.Error("failed to count visitors", zap.Error(err))
		return 0, fmt.Errorf("failed to count visitors: %w", err)
	}

	return count, nil
}
