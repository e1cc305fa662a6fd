package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/logger"
)

func TestFollowRepository_Follow_Idempotent(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowRepository(db, logger.NewLogger("test"))
	ctx := context.Background()

	// duplicate edges are absorbed by ON CONFLICT DO NOTHING
	mock.ExpectExec("^INSERT INTO follows .+ ON CONFLICT DO NOTHING").
		WithArgs(int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^INSERT INTO follows .+ ON CONFLICT DO NOTHING").
		WithArgs(int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Follow(ctx, 7, 9))
	require.NoError(t, repo.Follow(ctx, 7, 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Follow_UnknownUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowRepository(db, logger.NewLogger("test"))

	mock.ExpectExec("^INSERT INTO follows").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	err := repo.Follow(context.Background(), 7, 404)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Unfollow_MissingEdgeIsNoop(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowRepository(db, logger.NewLogger("test"))

	mock.ExpectExec("^DELETE FROM follows").
		WithArgs(int64(9), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Unfollow(context.Background(), 7, 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_FolloweeIDs(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^SELECT followee_id FROM follows").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}).AddRow(int64(9)).AddRow(int64(13)))

	ids, err := repo.FolloweeIDs(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 13}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Counts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowRepository(db, logger.NewLogger("test"))
	ctx := context.Background()

	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM follows").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM follows").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	followers, err := repo.CountFollowers(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), followers)

	following, err := repo.CountFollowing(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), following)
	require.NoError(t, mock.ExpectationsWereMet())
}
