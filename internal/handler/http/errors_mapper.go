package http

import (
	"errors"
	"net/http"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/service"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/internal/validators"
	"github.com/avdeenko/bookclub/models"
)

var errorStatusMap = map[error]int{
	errBadQueryParam: http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrPermissionDenied:        http.StatusForbidden,
	service.ErrCannotFollowSelf:        http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,

	store.ErrUsernameAlreadyExists:  http.StatusConflict,
	store.ErrISBNAlreadyExists:      http.StatusConflict,
	store.ErrBookAlreadyExists:      http.StatusConflict,
	store.ErrAuthorReferenceInvalid: http.StatusBadRequest,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrPostNotFound:           http.StatusNotFound,
	store.ErrCommentNotFound:        http.StatusNotFound,
	store.ErrAuthorNotFound:         http.StatusNotFound,
	store.ErrBookNotFound:           http.StatusNotFound,
	store.ErrNothingToUpdate:        http.StatusBadRequest,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

// errorMessageMap overrides the response message for errors whose internal
// text should not leak to clients verbatim.
var errorMessageMap = map[error]string{
	service.ErrWrongPassword:        "invalid username/password",
	store.ErrNoUserWasFound:         "user not found",
	store.ErrUsernameAlreadyExists:  "username already exists",
	store.ErrISBNAlreadyExists:      "a book with this ISBN already exists",
	store.ErrBookAlreadyExists:      "this author already has a book with this title and publication year",
	store.ErrAuthorReferenceInvalid: "author does not exist",
	store.ErrPostNotFound:           "post not found",
	store.ErrCommentNotFound:        "comment not found",
	store.ErrAuthorNotFound:         "author not found",
	store.ErrBookNotFound:           "book not found",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError maps err onto a status code and writes the JSON error body.
// Validation failures carry their per-field messages; 5xx responses never
// expose internal error text.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed with internal error")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, status)
		return
	}

	var fieldErrs *validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		utils.WriteJSON(w, models.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fieldErrs.Fields,
		}, status)
		return
	}

	message := err.Error()
	for target, override := range errorMessageMap {
		if errors.Is(err, target) {
			message = override
			break
		}
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, http.StatusUnauthorized)
}
