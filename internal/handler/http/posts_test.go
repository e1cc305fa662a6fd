package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/service"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/models"
)

func TestListPosts(t *testing.T) {
	posts := &postServiceStub{
		ListPostsFunc: func(_ context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error) {
			assert.Equal(t, "reader_one", filter.AuthorUsername)
			assert.Equal(t, "go", filter.Search)
			assert.Equal(t, models.PageParams{Page: 2, PageSize: 10}, page)
			return []models.Post{{PostID: 11, Title: "First post"}}, 25, nil
		},
	}
	router := newTestHandler(t, &service.Services{PostService: posts}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts?author=reader_one&search=go&page=2&page_size=10", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var page models.Page[models.Post]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Results, 1)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=3")
	assert.Contains(t, *page.Next, "search=go")
	require.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=1")
}

func TestListPosts_BadPageParam(t *testing.T) {
	router := newTestHandler(t, &service.Services{PostService: &postServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts?page=abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost_RequiresAuth(t *testing.T) {
	router := newTestHandler(t, &service.Services{PostService: &postServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"First post"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePost(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	posts := &postServiceStub{
		CreatePostFunc: func(_ context.Context, authorID int64, post models.Post) (models.Post, error) {
			assert.Equal(t, int64(7), authorID)
			assert.Equal(t, "First post", post.Title)
			post.PostID = 11
			post.AuthorID = authorID
			return post, nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, PostService: posts}).Init()

	body := `{"title":"First post","content":"hello"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("POST", "/api/posts", strings.NewReader(body))))

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(11), created.PostID)
}

func TestGetPost_EmbedsComments(t *testing.T) {
	posts := &postServiceStub{
		GetPostFunc: func(_ context.Context, postID int64) (models.Post, error) {
			assert.Equal(t, int64(11), postID)
			return models.Post{PostID: 11, Title: "First post"}, nil
		},
	}
	comments := &commentServiceStub{
		ListCommentsFunc: func(_ context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error) {
			assert.Equal(t, int64(11), postID)
			assert.Equal(t, models.MaxPageSize, page.PageSize)
			return []models.Comment{{CommentID: 3, Content: "nice"}}, 1, nil
		},
	}
	router := newTestHandler(t, &service.Services{PostService: posts, CommentService: comments}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts/11", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "nice", post.Comments[0].Content)
}

func TestGetPost_NotFound(t *testing.T) {
	posts := &postServiceStub{
		GetPostFunc: func(context.Context, int64) (models.Post, error) {
			return models.Post{}, store.ErrPostNotFound
		},
	}
	router := newTestHandler(t, &service.Services{PostService: posts}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts/404", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")
}

func TestGetPost_InvalidID(t *testing.T) {
	router := newTestHandler(t, &service.Services{PostService: &postServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePost_NotOwner(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(99)}
	posts := &postServiceStub{
		UpdatePostFunc: func(_ context.Context, actorID, postID int64, _ models.PostUpdate) (models.Post, error) {
			assert.Equal(t, int64(99), actorID)
			assert.Equal(t, int64(11), postID)
			return models.Post{}, service.ErrPermissionDenied
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, PostService: posts}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("PATCH", "/api/posts/11", strings.NewReader(`{"title":"Hijacked"}`))))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePost(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	posts := &postServiceStub{
		DeletePostFunc: func(_ context.Context, actorID, postID int64) error {
			assert.Equal(t, int64(7), actorID)
			assert.Equal(t, int64(11), postID)
			return nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, PostService: posts}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("DELETE", "/api/posts/11", nil)))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListUserPosts(t *testing.T) {
	posts := &postServiceStub{
		ListPostsFunc: func(_ context.Context, filter models.PostFilter, _ models.PageParams) ([]models.Post, int64, error) {
			assert.Equal(t, "reader_one", filter.AuthorUsername)
			return []models.Post{}, 0, nil
		},
	}
	router := newTestHandler(t, &service.Services{PostService: posts}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/users/reader_one/posts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
