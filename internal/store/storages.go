package store

import "github.com/avdeenko/bookclub/internal/logger"

// Storages bundles every repository behind one constructor so the service
// layer receives a single dependency.
type Storages struct {
	UserRepository    UserRepository
	FollowRepository  FollowRepository
	PostRepository    PostRepository
	CommentRepository CommentRepository
	AuthorRepository  AuthorRepository
	BookRepository    BookRepository
}

// NewStorages constructs all repositories over the given connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		FollowRepository:  NewFollowRepository(db, log),
		PostRepository:    NewPostRepository(db, log),
		CommentRepository: NewCommentRepository(db, log),
		AuthorRepository:  NewAuthorRepository(db, log),
		BookRepository:    NewBookRepository(db, log),
	}
}
