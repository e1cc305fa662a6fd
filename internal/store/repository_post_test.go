package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/models"
)

var postRowColumns = []string{
	"post_id", "author_id", "title", "content", "created_at", "updated_at",
	"user_id", "username", "email",
}

func postRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(postRowColumns).
		AddRow(int64(11), int64(7), "First post", "hello", now, now, int64(7), "reader_one", "reader@example.com")
}

func TestPostRepository_CreatePost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))
	now := time.Now()

	mock.ExpectQuery("^INSERT INTO posts").
		WithArgs(int64(7), "First post", "hello").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "author_id", "title", "content", "created_at", "updated_at"}).
			AddRow(int64(11), int64(7), "First post", "hello", now, now))

	saved, err := repo.CreatePost(context.Background(), models.Post{AuthorID: 7, Title: "First post", Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), saved.PostID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetPost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^SELECT .+ FROM posts p JOIN users u").
		WithArgs(int64(11)).
		WillReturnRows(postRow(time.Now()))

	post, err := repo.GetPost(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "First post", post.Title)
	require.NotNil(t, post.Author)
	assert.Equal(t, "reader_one", post.Author.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetPost_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^SELECT .+ FROM posts p JOIN users u").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err := repo.GetPost(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPostNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListPosts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM posts p JOIN users u").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("^SELECT .+ FROM posts p JOIN users u .+ ORDER BY p.created_at DESC, p.post_id DESC").
		WillReturnRows(postRow(time.Now()))

	posts, total, err := repo.ListPosts(context.Background(), models.PostFilter{}, models.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListPosts_SearchFilter(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM posts p JOIN users u .+ ILIKE").
		WithArgs("%go%", "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery("^SELECT .+ FROM posts p JOIN users u .+ ILIKE").
		WithArgs("%go%", "%go%").
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	posts, total, err := repo.ListPosts(context.Background(), models.PostFilter{Search: "go"}, models.DefaultPageParams())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdatePost_NothingToUpdate(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	_, err := repo.UpdatePost(context.Background(), 11, models.PostUpdate{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestPostRepository_UpdatePost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	title := "Edited"
	mock.ExpectExec("^UPDATE posts SET title = .+ updated_at = CURRENT_TIMESTAMP").
		WithArgs("Edited", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("^SELECT .+ FROM posts p JOIN users u").
		WithArgs(int64(11)).
		WillReturnRows(postRow(time.Now()))

	_, err := repo.UpdatePost(context.Background(), 11, models.PostUpdate{Title: &title})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeletePost_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.NewLogger("test"))

	mock.ExpectExec("^DELETE FROM posts").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeletePost(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPostNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
