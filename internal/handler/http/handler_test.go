package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/avdeenko/bookclub/internal/config"
	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/service"
	"github.com/avdeenko/bookclub/models"
)

// Service stubs with function fields. Tests set only the calls they expect;
// an unexpected call panics and fails the test loudly.

type authServiceStub struct {
	RegisterFunc    func(ctx context.Context, user models.User) (models.User, error)
	LoginFunc       func(ctx context.Context, user models.User) (models.User, error)
	CurrentUserFunc func(ctx context.Context, userID int64) (models.User, error)
	CreateTokenFunc func(ctx context.Context, user models.User) (models.Token, error)
	ParseTokenFunc  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (s *authServiceStub) Register(ctx context.Context, user models.User) (models.User, error) {
	return s.RegisterFunc(ctx, user)
}

func (s *authServiceStub) Login(ctx context.Context, user models.User) (models.User, error) {
	return s.LoginFunc(ctx, user)
}

func (s *authServiceStub) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return s.CurrentUserFunc(ctx, userID)
}

func (s *authServiceStub) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return s.CreateTokenFunc(ctx, user)
}

func (s *authServiceStub) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return s.ParseTokenFunc(ctx, tokenString)
}

type postServiceStub struct {
	CreatePostFunc func(ctx context.Context, authorID int64, post models.Post) (models.Post, error)
	GetPostFunc    func(ctx context.Context, postID int64) (models.Post, error)
	ListPostsFunc  func(ctx context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error)
	UpdatePostFunc func(ctx context.Context, actorID, postID int64, update models.PostUpdate) (models.Post, error)
	DeletePostFunc func(ctx context.Context, actorID, postID int64) error
}

func (s *postServiceStub) CreatePost(ctx context.Context, authorID int64, post models.Post) (models.Post, error) {
	return s.CreatePostFunc(ctx, authorID, post)
}

func (s *postServiceStub) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	return s.GetPostFunc(ctx, postID)
}

func (s *postServiceStub) ListPosts(ctx context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error) {
	return s.ListPostsFunc(ctx, filter, page)
}

func (s *postServiceStub) UpdatePost(ctx context.Context, actorID, postID int64, update models.PostUpdate) (models.Post, error) {
	return s.UpdatePostFunc(ctx, actorID, postID, update)
}

func (s *postServiceStub) DeletePost(ctx context.Context, actorID, postID int64) error {
	return s.DeletePostFunc(ctx, actorID, postID)
}

type commentServiceStub struct {
	CreateCommentFunc func(ctx context.Context, authorID, postID int64, comment models.Comment) (models.Comment, error)
	GetCommentFunc    func(ctx context.Context, commentID int64) (models.Comment, error)
	ListCommentsFunc  func(ctx context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error)
	UpdateCommentFunc func(ctx context.Context, actorID, commentID int64, update models.CommentUpdate) (models.Comment, error)
	DeleteCommentFunc func(ctx context.Context, actorID, commentID int64) error
}

func (s *commentServiceStub) CreateComment(ctx context.Context, authorID, postID int64, comment models.Comment) (models.Comment, error) {
	return s.CreateCommentFunc(ctx, authorID, postID, comment)
}

func (s *commentServiceStub) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	return s.GetCommentFunc(ctx, commentID)
}

func (s *commentServiceStub) ListComments(ctx context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error) {
	return s.ListCommentsFunc(ctx, postID, page)
}

func (s *commentServiceStub) UpdateComment(ctx context.Context, actorID, commentID int64, update models.CommentUpdate) (models.Comment, error) {
	return s.UpdateCommentFunc(ctx, actorID, commentID, update)
}

func (s *commentServiceStub) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	return s.DeleteCommentFunc(ctx, actorID, commentID)
}

type profileServiceStub struct {
	GetProfileFunc func(ctx context.Context, username string) (models.Profile, error)
	FollowFunc     func(ctx context.Context, followerID, followeeID int64) error
	UnfollowFunc   func(ctx context.Context, followerID, followeeID int64) error
	FeedFunc       func(ctx context.Context, userID int64, page models.PageParams) ([]models.Post, int64, error)
}

func (s *profileServiceStub) GetProfile(ctx context.Context, username string) (models.Profile, error) {
	return s.GetProfileFunc(ctx, username)
}

func (s *profileServiceStub) Follow(ctx context.Context, followerID, followeeID int64) error {
	return s.FollowFunc(ctx, followerID, followeeID)
}

func (s *profileServiceStub) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return s.UnfollowFunc(ctx, followerID, followeeID)
}

func (s *profileServiceStub) Feed(ctx context.Context, userID int64, page models.PageParams) ([]models.Post, int64, error) {
	return s.FeedFunc(ctx, userID, page)
}

type authorServiceStub struct {
	CreateAuthorFunc        func(ctx context.Context, actor models.User, author models.Author) (models.Author, error)
	GetAuthorFunc           func(ctx context.Context, authorID int64) (models.Author, error)
	ListAuthorsFunc         func(ctx context.Context, filter models.AuthorFilter, page models.PageParams) ([]models.Author, int64, error)
	UpdateAuthorFunc        func(ctx context.Context, actor models.User, authorID int64, update models.AuthorUpdate) (models.Author, error)
	DeleteAuthorFunc        func(ctx context.Context, actor models.User, authorID int64) error
	GetAuthorStatisticsFunc func(ctx context.Context, authorID int64) (models.AuthorStatistics, error)
	TopRatedAuthorsFunc     func(ctx context.Context, limit int) ([]models.Author, error)
	ListAuthorBooksFunc     func(ctx context.Context, authorID int64, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error)
}

func (s *authorServiceStub) CreateAuthor(ctx context.Context, actor models.User, author models.Author) (models.Author, error) {
	return s.CreateAuthorFunc(ctx, actor, author)
}

func (s *authorServiceStub) GetAuthor(ctx context.Context, authorID int64) (models.Author, error) {
	return s.GetAuthorFunc(ctx, authorID)
}

func (s *authorServiceStub) ListAuthors(ctx context.Context, filter models.AuthorFilter, page models.PageParams) ([]models.Author, int64, error) {
	return s.ListAuthorsFunc(ctx, filter, page)
}

func (s *authorServiceStub) UpdateAuthor(ctx context.Context, actor models.User, authorID int64, update models.AuthorUpdate) (models.Author, error) {
	return s.UpdateAuthorFunc(ctx, actor, authorID, update)
}

func (s *authorServiceStub) DeleteAuthor(ctx context.Context, actor models.User, authorID int64) error {
	return s.DeleteAuthorFunc(ctx, actor, authorID)
}

func (s *authorServiceStub) GetAuthorStatistics(ctx context.Context, authorID int64) (models.AuthorStatistics, error) {
	return s.GetAuthorStatisticsFunc(ctx, authorID)
}

func (s *authorServiceStub) TopRatedAuthors(ctx context.Context, limit int) ([]models.Author, error) {
	return s.TopRatedAuthorsFunc(ctx, limit)
}

func (s *authorServiceStub) ListAuthorBooks(ctx context.Context, authorID int64, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error) {
	return s.ListAuthorBooksFunc(ctx, authorID, filter, page)
}

type bookServiceStub struct {
	CreateBookFunc func(ctx context.Context, actor models.User, doc models.BookUpdate) (models.Book, error)
	GetBookFunc    func(ctx context.Context, bookID int64) (models.Book, error)
	ListBooksFunc  func(ctx context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error)
	UpdateBookFunc func(ctx context.Context, actor models.User, bookID int64, update models.BookUpdate) (models.Book, error)
	DeleteBookFunc func(ctx context.Context, actor models.User, bookID int64) error
}

func (s *bookServiceStub) CreateBook(ctx context.Context, actor models.User, doc models.BookUpdate) (models.Book, error) {
	return s.CreateBookFunc(ctx, actor, doc)
}

func (s *bookServiceStub) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	return s.GetBookFunc(ctx, bookID)
}

func (s *bookServiceStub) ListBooks(ctx context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error) {
	return s.ListBooksFunc(ctx, filter, page)
}

func (s *bookServiceStub) UpdateBook(ctx context.Context, actor models.User, bookID int64, update models.BookUpdate) (models.Book, error) {
	return s.UpdateBookFunc(ctx, actor, bookID, update)
}

func (s *bookServiceStub) DeleteBook(ctx context.Context, actor models.User, bookID int64) error {
	return s.DeleteBookFunc(ctx, actor, bookID)
}

type appInfoServiceStub struct {
	GetAppVersionFunc func(ctx context.Context) string
}

func (s *appInfoServiceStub) GetAppVersion(ctx context.Context) string {
	return s.GetAppVersionFunc(ctx)
}

type pingerStub struct {
	err error
}

func (p pingerStub) PingContext(context.Context) error { return p.err }

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:            ":0",
		RateLimitPerMinute:     10000,
		AuthRateLimitPerMinute: 10000,
		CORSAllowedOrigins:     []string{"*"},
	}
}

// newTestHandler builds a Handler around the given service stubs with a
// healthy database stub.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	return NewHandler(services, testServerConfig(), models.NewAppBuildInfo("test", "N/A", "N/A"), pingerStub{}, logger.NewLogger("test"))
}

// parseToken stub accepting the fixed token "valid" on behalf of userID.
func acceptToken(userID int64) func(ctx context.Context, tokenString string) (models.Token, error) {
	return func(_ context.Context, tokenString string) (models.Token, error) {
		if tokenString != "valid" {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		}
		return models.Token{UserID: userID, SignedString: tokenString}, nil
	}
}

func bearer(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer valid")
	return r
}
