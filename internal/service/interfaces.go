package service

import (
	"context"

	"github.com/avdeenko/bookclub/models"
)

type AuthService interface {
	// Register creates an account from the username, email, password and bio
	// carried by user. The password is bcrypt-hashed before persistence.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the username/password pair and returns the stored user.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CurrentUser resolves the account behind an authenticated request.
	CurrentUser(ctx context.Context, userID int64) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type PostService interface {
	CreatePost(ctx context.Context, authorID int64, post models.Post) (models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error)

	// UpdatePost and DeletePost enforce ownership: only the post's author may
	// mutate it, regardless of role.
	UpdatePost(ctx context.Context, actorID, postID int64, update models.PostUpdate) (models.Post, error)
	DeletePost(ctx context.Context, actorID, postID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, authorID, postID int64, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, commentID int64) (models.Comment, error)
	ListComments(ctx context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error)
	UpdateComment(ctx context.Context, actorID, commentID int64, update models.CommentUpdate) (models.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID int64) error
}

type ProfileService interface {
	// GetProfile resolves a public profile with follower counters.
	GetProfile(ctx context.Context, username string) (models.Profile, error)

	// Follow and Unfollow are idempotent. Self-follow is rejected.
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error

	// Feed lists posts authored by users the caller follows, newest first.
	Feed(ctx context.Context, userID int64, page models.PageParams) ([]models.Post, int64, error)
}

type AuthorService interface {
	CreateAuthor(ctx context.Context, actor models.User, author models.Author) (models.Author, error)
	GetAuthor(ctx context.Context, authorID int64) (models.Author, error)
	ListAuthors(ctx context.Context, filter models.AuthorFilter, page models.PageParams) ([]models.Author, int64, error)
	UpdateAuthor(ctx context.Context, actor models.User, authorID int64, update models.AuthorUpdate) (models.Author, error)
	DeleteAuthor(ctx context.Context, actor models.User, authorID int64) error

	GetAuthorStatistics(ctx context.Context, authorID int64) (models.AuthorStatistics, error)
	TopRatedAuthors(ctx context.Context, limit int) ([]models.Author, error)

	// ListAuthorBooks lists one author's books; the book filter applies on
	// top of the author restriction.
	ListAuthorBooks(ctx context.Context, authorID int64, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error)
}

type BookService interface {
	// CreateBook builds a book from the sparse document, applying defaults
	// (genre "other", in stock) for absent fields, then validates and
	// persists it.
	CreateBook(ctx context.Context, actor models.User, doc models.BookUpdate) (models.Book, error)
	GetBook(ctx context.Context, bookID int64) (models.Book, error)
	ListBooks(ctx context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error)
	UpdateBook(ctx context.Context, actor models.User, bookID int64, update models.BookUpdate) (models.Book, error)
	DeleteBook(ctx context.Context, actor models.User, bookID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
