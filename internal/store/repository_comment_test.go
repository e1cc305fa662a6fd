package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/models"
)

var commentRowColumns = []string{
	"comment_id", "post_id", "author_id", "content",
	"created_at", "updated_at", "user_id", "username", "email",
}

func TestCommentRepository_GetComment(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	now := time.Now()
	mock.ExpectQuery("^SELECT .+ FROM comments c JOIN users u").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(int64(3), int64(11), int64(7), "nice", now, now, int64(7), "reader_one", "reader@example.com"))

	comment, err := repo.GetComment(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(11), comment.PostID)
	assert.Equal(t, "nice", comment.Content)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "reader_one", comment.Author.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetComment_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^SELECT .+ FROM comments c JOIN users u").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(commentRowColumns))

	_, err := repo.GetComment(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_CreateComment_PostGone(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^INSERT INTO comments").
		WithArgs(int64(404), int64(7), "orphan").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	_, err := repo.CreateComment(context.Background(), models.Comment{PostID: 404, AuthorID: 7, Content: "orphan"})
	assert.ErrorIs(t, err, ErrPostNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListCommentsByPost_OldestFirst(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	now := time.Now()
	rows := sqlmock.NewRows(commentRowColumns).
		AddRow(int64(3), int64(11), int64(7), "first", now.Add(-time.Hour), now, int64(7), "reader_one", "reader@example.com").
		AddRow(int64(4), int64(11), int64(8), "second", now, now, int64(8), "reader_two", "two@example.com")

	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM comments").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery("ORDER BY c.created_at ASC, c.comment_id ASC").
		WithArgs(int64(11)).
		WillReturnRows(rows)

	comments, total, err := repo.ListCommentsByPost(context.Background(), 11, models.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_UpdateComment_NothingToUpdate(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	_, err := repo.UpdateComment(context.Background(), 3, models.CommentUpdate{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestCommentRepository_DeleteComment(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	mock.ExpectExec("^DELETE FROM comments").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteComment(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteComment_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCommentRepository(db, logger.NewLogger("test"))

	mock.ExpectExec("^DELETE FROM comments").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteComment(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
