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

func TestCreateComment(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	comments := &commentServiceStub{
		CreateCommentFunc: func(_ context.Context, authorID, postID int64, comment models.Comment) (models.Comment, error) {
			assert.Equal(t, int64(7), authorID)
			assert.Equal(t, int64(11), postID)
			assert.Equal(t, "nice", comment.Content)
			comment.CommentID = 3
			comment.PostID = postID
			return comment, nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, CommentService: comments}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("POST", "/api/posts/11/comments", strings.NewReader(`{"content":"nice"}`))))

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(3), created.CommentID)
	assert.Equal(t, int64(11), created.PostID)
}

func TestCreateComment_RequiresAuth(t *testing.T) {
	router := newTestHandler(t, &service.Services{CommentService: &commentServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/posts/11/comments", strings.NewReader(`{"content":"nice"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListComments(t *testing.T) {
	comments := &commentServiceStub{
		ListCommentsFunc: func(_ context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error) {
			assert.Equal(t, int64(11), postID)
			assert.Equal(t, models.DefaultPageParams(), page)
			return []models.Comment{{CommentID: 3, Content: "nice"}}, 1, nil
		},
	}
	router := newTestHandler(t, &service.Services{CommentService: comments}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts/11/comments", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var page models.Page[models.Comment]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.Results, 1)
}

func TestGetComment_NotFound(t *testing.T) {
	comments := &commentServiceStub{
		GetCommentFunc: func(context.Context, int64) (models.Comment, error) {
			return models.Comment{}, store.ErrCommentNotFound
		},
	}
	router := newTestHandler(t, &service.Services{CommentService: comments}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/comments/404", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "comment not found")
}

func TestUpdateComment_NotOwner(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(99)}
	comments := &commentServiceStub{
		UpdateCommentFunc: func(_ context.Context, actorID, commentID int64, _ models.CommentUpdate) (models.Comment, error) {
			assert.Equal(t, int64(99), actorID)
			assert.Equal(t, int64(3), commentID)
			return models.Comment{}, service.ErrPermissionDenied
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, CommentService: comments}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("PATCH", "/api/comments/3", strings.NewReader(`{"content":"hijacked"}`))))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteComment(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	comments := &commentServiceStub{
		DeleteCommentFunc: func(_ context.Context, actorID, commentID int64) error {
			assert.Equal(t, int64(7), actorID)
			assert.Equal(t, int64(3), commentID)
			return nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, CommentService: comments}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("DELETE", "/api/comments/3", nil)))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
