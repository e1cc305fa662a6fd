package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/service"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/models"
)

func TestGetProfile(t *testing.T) {
	profiles := &profileServiceStub{
		GetProfileFunc: func(_ context.Context, username string) (models.Profile, error) {
			assert.Equal(t, "reader_one", username)
			return models.Profile{
				User:           models.UserSummary{UserID: 7, Username: "reader_one"},
				FollowersCount: 3,
				FollowingCount: 5,
			}, nil
		},
	}
	router := newTestHandler(t, &service.Services{ProfileService: profiles}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/profiles/reader_one", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, int64(3), profile.FollowersCount)
	assert.Equal(t, int64(5), profile.FollowingCount)
}

func TestGetProfile_NotFound(t *testing.T) {
	profiles := &profileServiceStub{
		GetProfileFunc: func(context.Context, string) (models.Profile, error) {
			return models.Profile{}, store.ErrNoUserWasFound
		},
	}
	router := newTestHandler(t, &service.Services{ProfileService: profiles}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/profiles/ghost", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestFollow(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	profiles := &profileServiceStub{
		FollowFunc: func(_ context.Context, followerID, followeeID int64) error {
			assert.Equal(t, int64(7), followerID)
			assert.Equal(t, int64(9), followeeID)
			return nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, ProfileService: profiles}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("POST", "/api/follow/9", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "now following")
}

func TestFollow_Self(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	profiles := &profileServiceStub{
		FollowFunc: func(context.Context, int64, int64) error {
			return service.ErrCannotFollowSelf
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, ProfileService: profiles}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("POST", "/api/follow/7", nil)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollow_RequiresAuth(t *testing.T) {
	router := newTestHandler(t, &service.Services{ProfileService: &profileServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/follow/9", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFollow_InvalidUserID(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	router := newTestHandler(t, &service.Services{AuthService: auth, ProfileService: &profileServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("POST", "/api/follow/abc", nil)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnfollow(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	profiles := &profileServiceStub{
		UnfollowFunc: func(_ context.Context, followerID, followeeID int64) error {
			assert.Equal(t, int64(7), followerID)
			assert.Equal(t, int64(9), followeeID)
			return nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, ProfileService: profiles}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("POST", "/api/unfollow/9", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unfollowed")
}

func TestFeed(t *testing.T) {
	auth := &authServiceStub{ParseTokenFunc: acceptToken(7)}
	profiles := &profileServiceStub{
		FeedFunc: func(_ context.Context, userID int64, page models.PageParams) ([]models.Post, int64, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, models.DefaultPageParams(), page)
			return []models.Post{{PostID: 11, Title: "From a followee"}}, 1, nil
		},
	}
	router := newTestHandler(t, &service.Services{AuthService: auth, ProfileService: profiles}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearer(httptest.NewRequest("GET", "/api/feed", nil)))

	assert.Equal(t, http.StatusOK, w.Code)

	var page models.Page[models.Post]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "From a followee", page.Results[0].Title)
}

func TestFeed_RequiresAuth(t *testing.T) {
	router := newTestHandler(t, &service.Services{ProfileService: &profileServiceStub{}}).Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/feed", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
