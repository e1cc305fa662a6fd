package http

import (
	"encoding/json"
	"net/http"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

func (h *Handler) listPostComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := idFromURL(r, "postID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid post id"}, http.StatusBadRequest)
		return
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	comments, total, err := h.services.CommentService.ListComments(ctx, postID, page)
	if err != nil {
		respondError(w, r, err)
		return
	}

	envelope := models.NewPage(comments, total, page)
	attachPageLinks(&envelope, r)
	utils.WriteJSON(w, envelope, http.StatusOK)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
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

	var comment models.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	created, err := h.services.CommentService.CreateComment(ctx, userID, postID, comment)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	commentID, ok := idFromURL(r, "commentID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid comment id"}, http.StatusBadRequest)
		return
	}

	comment, err := h.services.CommentService.GetComment(ctx, commentID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, comment, http.StatusOK)
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	commentID, ok := idFromURL(r, "commentID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid comment id"}, http.StatusBadRequest)
		return
	}

	var update models.CommentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.CommentService.UpdateComment(ctx, userID, commentID, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	commentID, ok := idFromURL(r, "commentID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid comment id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.CommentService.DeleteComment(ctx, userID, commentID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
