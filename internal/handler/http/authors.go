// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

const defaultTopRatedLimit = 10

// actorFromContext resolves the full account of the authenticated caller so
// the service layer can check its role.
func (h *Handler) actorFromContext(ctx context.Context) (models.User, bool) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.User{}, false
	}

	actor, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		return models.User{}, false
	}

	return actor, true
}

func (h *Handler) listAuthors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter, err := parseAuthorFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	authors, total, err := h.services.AuthorService.ListAuthors(ctx, filter, page)
	if err != nil {
		respondError(w, r, err)
		return
	}

	envelope := models.NewPage(authors, total, page)
	attachPageLinks(&envelope, r)
	utils.WriteJSON(w, envelope, http.StatusOK)
}

func (h *Handler) createAuthor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := h.actorFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	var author models.Author
	if err := json.NewDecoder(r.Body).Decode(&author); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	created, err := h.services.AuthorService.CreateAuthor(ctx, actor, author)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getAuthor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authorID, ok := idFromURL(r, "authorID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid author id"}, http.StatusBadRequest)
		return
	}

	author, err := h.services.AuthorService.GetAuthor(ctx, authorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, author, http.StatusOK)
}

func (h *Handler) updateAuthor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := h.actorFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	authorID, ok := idFromURL(r, "authorID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid author id"}, http.StatusBadRequest)
		return
	}

	var update models.AuthorUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.AuthorService.UpdateAuthor(ctx, actor, authorID, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := h.actorFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	authorID, ok := idFromURL(r, "authorID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid author id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthorService.DeleteAuthor(ctx, actor, authorID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listAuthorBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authorID, ok := idFromURL(r, "authorID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid author id"}, http.StatusBadRequest)
		return
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter, err := parseBookFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	books, total, err := h.services.AuthorService.ListAuthorBooks(ctx, authorID, filter, page)
	if err != nil {
		respondError(w, r, err)
		return
	}

	items := make([]models.BookListItem, 0, len(books))
	for _, book := range books {
		items = append(items, book.ListItem())
	}

	envelope := models.NewPage(items, total, page)
	attachPageLinks(&envelope, r)
	utils.WriteJSON(w, envelope, http.StatusOK)
}

func (h *Handler) getAuthorStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authorID, ok := idFromURL(r, "authorID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid author id"}, http.StatusBadRequest)
		return
	}

	stats, err := h.services.AuthorService.GetAuthorStatistics(ctx, authorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) topRatedAuthors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultTopRatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			utils.WriteJSON(w, models.ErrorResponse{Error: "invalid limit"}, http.StatusBadRequest)
			return
		}
		limit = value
	}

	authors, err := h.services.AuthorService.TopRatedAuthors(ctx, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, authors, http.StatusOK)
}
