package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/avdeenko/bookclub/models"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// FollowRepository maintains the directed follow graph between users.
type FollowRepository interface {
	// Follow inserts a follower→followee edge. Inserting an existing edge is
	// a no-op so the operation is idempotent.
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error

	// FolloweeIDs returns the IDs of every user the given user follows.
	FolloweeIDs(ctx context.Context, followerID int64) ([]int64, error)

	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
}

// PostRepository persists posts. Reads join the owning user so results carry
// the author summary.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, postID int64, update models.PostUpdate) (models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

// CommentRepository persists comments attached to posts.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, commentID int64) (models.Comment, error)

	// ListCommentsByPost returns the post's comments oldest first.
	ListCommentsByPost(ctx context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error)

	UpdateComment(ctx context.Context, commentID int64, update models.CommentUpdate) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

// AuthorRepository persists catalog authors. Reads include the computed
// book_count and average_rating columns.
type AuthorRepository interface {
	CreateAuthor(ctx context.Context, author models.Author) (models.Author, error)
	GetAuthor(ctx context.Context, authorID int64) (models.Author, error)
	ListAuthors(ctx context.Context, filter models.AuthorFilter, page models.PageParams) ([]models.Author, int64, error)
	UpdateAuthor(ctx context.Context, authorID int64, update models.AuthorUpdate) (models.Author, error)
	DeleteAuthor(ctx context.Context, authorID int64) error

	// GetAuthorStatistics aggregates genre, year and price distributions over
	// the author's books.
	GetAuthorStatistics(ctx context.Context, authorID int64) (models.AuthorStatistics, error)

	// TopRated returns up to limit authors having at least one book, ordered
	// by average book rating descending.
	TopRated(ctx context.Context, limit int) ([]models.Author, error)
}

// BookRepository persists catalog books. Reads join the owning author so
// results carry the author name.
type BookRepository interface {
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
	GetBook(ctx context.Context, bookID int64) (models.Book, error)
	ListBooks(ctx context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error)
	UpdateBook(ctx context.Context, bookID int64, update models.BookUpdate) (models.Book, error)
	DeleteBook(ctx context.Context, bookID int64) error

	// LatestByAuthors returns, per author, the reference of the book with the
	// highest publication year. Authors without books are absent from the map.
	LatestByAuthors(ctx context.Context, authorIDs []int64) (map[int64]models.BookRef, error)
}
