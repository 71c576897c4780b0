package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
)

// bookRepository reads books from the catalog tables. The catalog is owned
// by another service; this repository exists only so favorites can be
// validated and populated.
type bookRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB, logger *zap.Logger) *bookRepository {
	return &bookRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a book by ID
func (r *bookRepository) GetByID(ctx context.Context, bookID int) (*models.Book, error) {
	query := `
		SELECT id, title, author, cover
		FROM books
		WHERE id = ?
		LIMIT 1
	`

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Cover,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBookNotFound
	}
	if err != nil {
		r.logger.Error("failed to get book", zap.Error(err), zap.Int("bookID", bookID))
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}
