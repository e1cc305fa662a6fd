package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/service"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/internal/validators"
	"github.com/avdeenko/bookclub/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad query param", err: fmt.Errorf("%w: page=%q", errBadQueryParam, "abc"), want: http.StatusBadRequest},
		{name: "invalid data", err: service.ErrInvalidDataProvided, want: http.StatusBadRequest},
		{name: "wrong password", err: service.ErrWrongPassword, want: http.StatusUnauthorized},
		{name: "permission denied", err: service.ErrPermissionDenied, want: http.StatusForbidden},
		{name: "self follow", err: service.ErrCannotFollowSelf, want: http.StatusBadRequest},
		{name: "duplicate username", err: store.ErrUsernameAlreadyExists, want: http.StatusConflict},
		{name: "duplicate isbn", err: store.ErrISBNAlreadyExists, want: http.StatusConflict},
		{name: "bad author reference wrapped", err: fmt.Errorf("create: %w", store.ErrAuthorReferenceInvalid), want: http.StatusBadRequest},
		{name: "post not found", err: store.ErrPostNotFound, want: http.StatusNotFound},
		{name: "book not found wrapped", err: fmt.Errorf("get: %w", store.ErrBookNotFound), want: http.StatusNotFound},
		{name: "nothing to update", err: store.ErrNothingToUpdate, want: http.StatusBadRequest},
		{name: "query failure", err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestRespondError_InternalTextNeverLeaks(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/books", nil)

	respondError(w, r, errors.New("pq: relation \"books\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Error)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestRespondError_ValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/books", nil)

	fieldErrs := &validators.FieldErrors{Fields: map[string]string{
		"isbn":  "must be exactly 13 digits",
		"title": "must be at least 1 character long",
	}}
	respondError(w, r, errors.Join(service.ErrInvalidDataProvided, fieldErrs))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "must be exactly 13 digits", body.Fields["isbn"])
	assert.Len(t, body.Fields, 2)
}

func TestRespondError_MessageOverrides(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		{err: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized, wantBody: "invalid username/password"},
		{err: fmt.Errorf("login: %w", store.ErrNoUserWasFound), wantStatus: http.StatusNotFound, wantBody: "user not found"},
		{err: store.ErrBookAlreadyExists, wantStatus: http.StatusConflict, wantBody: "this author already has a book with this title and publication year"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/books", nil)

		respondError(w, r, tt.err)

		assert.Equal(t, tt.wantStatus, w.Code)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.wantBody, body.Error)
	}
}
