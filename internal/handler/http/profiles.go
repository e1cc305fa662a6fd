package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.services.ProfileService.GetProfile(ctx, chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	followerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	followeeID, ok := idFromURL(r, "userID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid user id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.ProfileService.Follow(ctx, followerID, followeeID); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "now following"}, http.StatusOK)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	followerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	followeeID, ok := idFromURL(r, "userID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid user id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.ProfileService.Unfollow(ctx, followerID, followeeID); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "unfollowed"}, http.StatusOK)
}

// feed lists posts authored by users the caller follows, newest first.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	posts, total, err := h.services.ProfileService.Feed(ctx, userID, page)
	if err != nil {
		respondError(w, r, err)
		return
	}

	envelope := models.NewPage(posts, total, page)
	attachPageLinks(&envelope, r)
	utils.WriteJSON(w, envelope, http.StatusOK)
}
