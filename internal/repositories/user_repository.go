package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookwise/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQL server error numbers we translate into domain errors
const (
	mysqlErrDuplicateEntry      = 1062
	mysqlErrForeignKeyViolation = 1452
)

// userRepository implements the user store on MySQL
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user. Email uniqueness is enforced by the UNIQUE
// index, not by a prior existence check, so concurrent signups for the same
// email cannot both succeed; the loser gets models.ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, password_hash, auth_method, role, picture)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.AuthMethod, user.Role, user.Picture,
	)
	if err != nil {
		if isMySQLError(err, mysqlErrDuplicateEntry) {
			return models.ErrDuplicateEmail
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByEmail retrieves a user by email (exact match)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, auth_method, role, picture
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, auth_method, role, picture
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, userID))
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.AuthMethod,
		&user.Role,
		&user.Picture,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetAll retrieves all users. Password hashes are never selected here.
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, auth_method, role, picture
		FROM users
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.AuthMethod,
			&user.Role,
			&user.Picture,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateRole sets a user's role in a single atomic statement
func (r *userRepository) UpdateRole(ctx context.Context, userID int, role models.Role) error {
	query := `UPDATE users SET role = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, role, userID); err != nil {
		r.logger.Error("failed to update user role", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to update user role: %w", err)
	}

	return nil
}

// UpdateGoogleProfile marks the account as google-authenticated, refreshes
// the picture and sets the role, all in one statement
func (r *userRepository) UpdateGoogleProfile(ctx context.Context, userID int, picture string, role models.Role) error {
	query := `UPDATE users SET auth_method = ?, picture = ?, role = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, models.AuthMethodGoogle, picture, role, userID); err != nil {
		r.logger.Error("failed to update google profile", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to update google profile: %w", err)
	}

	return nil
}

// AddReport records that reporterID reported targetID. A plain INSERT is
// used so the foreign key check still fires for unknown targets; a repeat
// report hits the composite primary key instead and is a no-op.
func (r *userRepository) AddReport(ctx context.Context, targetID, reporterID int) error {
	query := `INSERT INTO user_reports (user_id, reporter_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, targetID, reporterID); err != nil {
		if isMySQLError(err, mysqlErrDuplicateEntry) {
			return nil
		}
		if isMySQLError(err, mysqlErrForeignKeyViolation) {
			return models.ErrUserNotFound
		}
		r.logger.Error("failed to add report", zap.Error(err), zap.Int("targetID", targetID))
		return fmt.Errorf("failed to add report: %w", err)
	}

	return nil
}

// ListReporters returns the set of user IDs that reported targetID
func (r *userRepository) ListReporters(ctx context.Context, targetID int) ([]int, error) {
	query := `SELECT reporter_id FROM user_reports WHERE user_id = ? ORDER BY reporter_id`

	rows, err := r.db.QueryContext(ctx, query, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reporters: %w", err)
	}
	defer rows.Close()

	var reporters []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan reporter: %w", err)
		}
		reporters = append(reporters, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reporters: %w", err)
	}

	return reporters, nil
}

// AddFavorite inserts a favorite-book membership row
func (r *userRepository) AddFavorite(ctx context.Context, userID, bookID int) error {
	query := `INSERT IGNORE INTO user_favorites (user_id, book_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, userID, bookID); err != nil {
		r.logger.Error("failed to add favorite", zap.Error(err), zap.Int("userID", userID), zap.Int("bookID", bookID))
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite deletes a favorite-book membership row and reports whether
// a row was actually removed, so callers can toggle
func (r *userRepository) RemoveFavorite(ctx context.Context, userID, bookID int) (bool, error) {
	query := `DELETE FROM user_favorites WHERE user_id = ? AND book_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, bookID)
	if err != nil {
		r.logger.Error("failed to remove favorite", zap.Error(err), zap.Int("userID", userID), zap.Int("bookID", bookID))
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetFavoriteBooks returns the user's favorite books populated from the catalog
func (r *userRepository) GetFavoriteBooks(ctx context.Context, userID int) ([]models.Book, error) {
	query := `
		SELECT b.id, b.title, b.author, b.cover
		FROM user_favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.user_id = ?
		ORDER BY b.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get favorite books", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to get favorite books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Cover); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite books: %w", err)
	}

	return books, nil
}

// isMySQLError reports whether err is a MySQL server error with the given number
func isMySQLError(err error, number uint16) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == number
}
