// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

const (
	defaultRecentYears   = 2
	defaultPriceRangeMin = 0
	defaultPriceRangeMax = 1000
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

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

	h.writeBookListPage(w, r, ctx, filter, page)
}

// writeBookListPage runs the list query and writes the compact paginated
// envelope. Shared by every book list endpoint.
func (h *Handler) writeBookListPage(w http.ResponseWriter, r *http.Request, ctx context.Context, filter models.BookFilter, page models.PageParams) {
	books, total, err := h.services.BookService.ListBooks(ctx, filter, page)
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

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := h.actorFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	var doc models.BookUpdate
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	created, err := h.services.BookService.CreateBook(ctx, actor, doc)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID, ok := idFromURL(r, "bookID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid book id"}, http.StatusBadRequest)
		return
	}

	book, err := h.services.BookService.GetBook(ctx, bookID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, book, http.StatusOK)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := h.actorFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	bookID, ok := idFromURL(r, "bookID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid book id"}, http.StatusBadRequest)
		return
	}

	var update models.BookUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.BookService.UpdateBook(ctx, actor, bookID, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := h.actorFromContext(ctx)
	if !ok {
		respondUnauthorized(w, "authentication required")
		return
	}

	bookID, ok := idFromURL(r, "bookID")
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid book id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.BookService.DeleteBook(ctx, actor, bookID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recentBooks lists books published within the last N years (default 2).
func (h *Handler) recentBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	years := defaultRecentYears
	if raw := r.URL.Query().Get("years"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			utils.WriteJSON(w, models.ErrorResponse{Error: "invalid years"}, http.StatusBadRequest)
			return
		}
		years = value
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	yearMin := time.Now().Year() - years
	filter := models.BookFilter{YearMin: &yearMin}

	h.writeBookListPage(w, r, ctx, filter, page)
}

func (h *Handler) inStockBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	inStock := true
	filter := models.BookFilter{InStock: &inStock}

	h.writeBookListPage(w, r, ctx, filter, page)
}

// booksByGenre requires a valid genre query parameter.
func (h *Handler) booksByGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	genre := r.URL.Query().Get("genre")
	if genre == "" || !models.IsValidGenre(genre) {
		utils.WriteJSON(w, models.ErrorResponse{Error: "missing or invalid genre"}, http.StatusBadRequest)
		return
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.writeBookListPage(w, r, ctx, models.BookFilter{Genre: genre}, page)
}

// booksByPriceRange lists books with prices inside [min_price, max_price],
// defaulting to 0..1000.
func (h *Handler) booksByPriceRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()

	priceMin := float64(defaultPriceRangeMin)
	priceMax := float64(defaultPriceRangeMax)

	if raw := query.Get("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			utils.WriteJSON(w, models.ErrorResponse{Error: "invalid min_price"}, http.StatusBadRequest)
			return
		}
		priceMin = value
	}
	if raw := query.Get("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			utils.WriteJSON(w, models.ErrorResponse{Error: "invalid max_price"}, http.StatusBadRequest)
			return
		}
		priceMax = value
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter := models.BookFilter{PriceMin: &priceMin, PriceMax: &priceMax}

	h.writeBookListPage(w, r, ctx, filter, page)
}

// searchBooks matches q against title, author name, description and ISBN,
// with optional genre/rating/price bounds on top.
func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	q := query.Get("q")
	if q == "" {
		utils.WriteJSON(w, models.ErrorResponse{Error: "missing q"}, http.StatusBadRequest)
		return
	}

	page, err := parsePageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter := models.BookFilter{
		Search: q,
		Genre:  query.Get("genre"),
	}
	if filter.Genre != "" && !models.IsValidGenre(filter.Genre) {
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid genre"}, http.StatusBadRequest)
		return
	}

	if filter.RatingMin, err = optionalFloat(query, "rating_min"); err != nil {
		respondError(w, r, err)
		return
	}
	if filter.RatingMax, err = optionalFloat(query, "rating_max"); err != nil {
		respondError(w, r, err)
		return
	}
	if filter.PriceMin, err = optionalFloat(query, "price_min"); err != nil {
		respondError(w, r, err)
		return
	}
	if filter.PriceMax, err = optionalFloat(query, "price_max"); err != nil {
		respondError(w, r, err)
		return
	}

	h.writeBookListPage(w, r, ctx, filter, page)
}
