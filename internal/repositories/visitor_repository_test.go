package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupVisitorTestRepository(t *testing.T) (*visitorRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, _ := zap.NewDevelopment()
	repo := NewVisitorRepository(db, logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestVisitorRepository_Upsert(t *testing.T) {
	t.Run("first visit inserts", func(t *testing.T) {
		repo, mock, cleanup := setupVisitorTestRepository(t)
		defer cleanup()

		// MySQL reports 1 affected row for an insert
		mock.ExpectExec(`INSERT INTO visitors`).
			WithArgs("203.0.113.9", "test-agent").
			WillReturnResult(sqlmock.NewResult(1, 1))

		newVisitor, err := repo.Upsert(context.Background(), "203.0.113.9", "test-agent")

		require.NoError(t, err)
		assert.True(t, newVisitor)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat visit updates", func(t *testing.T) {
		repo, mock, cleanup := setupVisitorTestRepository(t)
		defer cleanup()

		// and 2 for an ON DUPLICATE KEY update
		mock.ExpectExec(`INSERT INTO visitors`).
			WithArgs("203.0.113.9", "test-agent").
			WillReturnResult(sqlmock.NewResult(0, 2))

		newVisitor, err := repo.Upsert(context.Background(), "203.0.113.9", "test-agent")

		require.NoError(t, err)
		assert.False(t, newVisitor)
	})
}

func TestVisitorRepository_GetByIP(t *testing.T) {
	repo, mock, cleanup := setupVisitorTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, ip, user_agent, visit_count FROM visitors WHERE ip = \?`).
		WithArgs("203.0.113.9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ip", "user_agent", "visit_count"}).
			AddRow(1, "203.0.113.9", "test-agent", 4))

	visitor, err := repo.GetByIP(context.Background(), "203.0.113.9")

	require.NoError(t, err)
	assert.Equal(t, 4, visitor.VisitCount)
}

func TestVisitorRepository_CountVisitors(t *testing.T) {
	repo, mock, cleanup := setupVisitorTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM visitors`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountVisitors(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
