// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

// idFromURL reads a positive integer path parameter.
func idFromURL(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	filter := parsePostFilter(r)

	posts, total, err := h.services.PostService.ListPosts(ctx, filter, page)
	if err != nil {
		respondError(w, r, err)
		return
	}

	envelope := models.NewPage(posts, total, page)
	attachPageLinks(&envelope, r)
	utils.WriteJSON(w, envelope, http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	created, err := h.services.PostService.CreatePost(ctx, userID, post)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// getPost returns the detail view with embedded comments, oldest first.
func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := idFromURL(r, "postID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid post id"}, http.StatusBadRequest)
		return
	}

	post, err := h.services.PostService.GetPost(ctx, postID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	comments, _, err := h.services.CommentService.ListComments(ctx, postID, models.PageParams{Page: 1, PageSize: models.MaxPageSize})
	if err != nil {
		respondError(w, r, err)
		return
	}
	post.Comments = comments

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	postID, ok := idFromURL(r, "postID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid post id"}, http.StatusBadRequest)
		return
	}

	var update models.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.PostService.UpdatePost(ctx, userID, postID, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	postID, ok := idFromURL(r, "postID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid post id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.PostService.DeletePost(ctx, userID, postID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listUserPosts lists a single user's posts, newest first.
func (h *Handler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter := models.PostFilter{AuthorUsername: chi.URLParam(r, "username")}

	posts, total, err := h.services.PostService.ListPosts(ctx, filter, page)
	if err != nil {
		respondError(w, r, err)
		return
	}

	envelope := models.NewPage(posts, total, page)
	attachPageLinks(&envelope, r)
	utils.WriteJSON(w, envelope, http.StatusOK)
}
