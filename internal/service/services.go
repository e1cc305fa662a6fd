package service

import (
	"github.com/avdeenko/bookclub/internal/config"
	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/store"
)

type Services struct {
	AuthService    AuthService
	PostService    PostService
	CommentService CommentService
	ProfileService ProfileService
	AuthorService  AuthorService
	BookService    BookService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.Auth, logger),
		PostService:    NewPostService(storages.PostRepository, logger),
		CommentService: NewCommentService(storages.CommentRepository, storages.PostRepository, logger),
		ProfileService: NewProfileService(storages.UserRepository, storages.FollowRepository, storages.PostRepository, logger),
		AuthorService:  NewAuthorService(storages.AuthorRepository, storages.BookRepository, logger),
		BookService:    NewBookService(storages.BookRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
