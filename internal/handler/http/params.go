// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avdeenko/bookclub/models"
)

const dateLayout = "2006-01-02"

// errBadQueryParam marks malformed query parameters; it maps onto 400.
var errBadQueryParam = errors.New("invalid query parameter")

// parsePageParams reads page/page_size. Absent values get defaults,
// oversized page_size clamps, non-numeric or non-positive values are
// rejected.
func parsePageParams(r *http.Request) (models.PageParams, error) {
	page := models.DefaultPageParams()
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return models.PageParams{}, fmt.Errorf("%w: page=%q", errBadQueryParam, raw)
		}
		page.Page = value
	}
	if raw := query.Get("page_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return models.PageParams{}, fmt.Errorf("%w: page_size=%q", errBadQueryParam, raw)
		}
		page.PageSize = value
	}

	return page.Normalize(), nil
}

func parsePostFilter(r *http.Request) models.PostFilter {
	query := r.URL.Query()
	return models.PostFilter{
		AuthorUsername: query.Get("author"),
		Search:         query.Get("search"),
		Ordering:       query.Get("ordering"),
	}
}

func parseAuthorFilter(r *http.Request) (models.AuthorFilter, error) {
	query := r.URL.Query()

	filter := models.AuthorFilter{
		Name:        query.Get("name"),
		Bio:         query.Get("bio"),
		Nationality: query.Get("nationality"),
		Search:      query.Get("search"),
		BookGenre:   query.Get("book_genre"),
		Ordering:    query.Get("ordering"),
	}

	var err error
	if filter.BirthDateAfter, err = optionalDate(query, "birth_date_after"); err != nil {
		return models.AuthorFilter{}, err
	}
	if filter.BirthDateBefore, err = optionalDate(query, "birth_date_before"); err != nil {
		return models.AuthorFilter{}, err
	}
	if filter.HasBooks, err = optionalBool(query, "has_books"); err != nil {
		return models.AuthorFilter{}, err
	}
	if filter.MinBooks, err = optionalInt(query, "min_books"); err != nil {
		return models.AuthorFilter{}, err
	}
	if filter.MaxBooks, err = optionalInt(query, "max_books"); err != nil {
		return models.AuthorFilter{}, err
	}

	return filter, nil
}

func parseBookFilter(r *http.Request) (models.BookFilter, error) {
	query := r.URL.Query()

	filter := models.BookFilter{
		Title:       query.Get("title"),
		Description: query.Get("description"),
		ISBN:        query.Get("isbn"),
		Genre:       query.Get("genre"),
		AuthorName:  query.Get("author_name"),
		Search:      query.Get("search"),
		Ordering:    query.Get("ordering"),
	}

	if filter.Genre != "" && !models.IsValidGenre(filter.Genre) {
		return models.BookFilter{}, fmt.Errorf("%w: genre=%q", errBadQueryParam, filter.Genre)
	}

	var err error
	if filter.AuthorID, err = optionalInt64(query, "author_id"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.InStock, err = optionalBool(query, "in_stock"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.PriceMin, err = optionalFloat(query, "price_min"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.PriceMax, err = optionalFloat(query, "price_max"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.RatingMin, err = optionalFloat(query, "rating_min"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.RatingMax, err = optionalFloat(query, "rating_max"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.PagesMin, err = optionalInt(query, "pages_min"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.PagesMax, err = optionalInt(query, "pages_max"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.Year, err = optionalInt(query, "publication_year"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.YearMin, err = optionalInt(query, "publication_year_min"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.YearMax, err = optionalInt(query, "publication_year_max"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.CreatedAfter, err = optionalTime(query, "created_after"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.CreatedBefore, err = optionalTime(query, "created_before"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.UpdatedAfter, err = optionalTime(query, "updated_after"); err != nil {
		return models.BookFilter{}, err
	}
	if filter.UpdatedBefore, err = optionalTime(query, "updated_before"); err != nil {
		return models.BookFilter{}, err
	}

	return filter, nil
}

func optionalInt(query url.Values, key string) (*int, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errBadQueryParam, key, raw)
	}
	return &value, nil
}

func optionalInt64(query url.Values, key string) (*int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errBadQueryParam, key, raw)
	}
	return &value, nil
}

func optionalFloat(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errBadQueryParam, key, raw)
	}
	return &value, nil
}

func optionalBool(query url.Values, key string) (*bool, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errBadQueryParam, key, raw)
	}
	return &value, nil
}

// optionalDate parses YYYY-MM-DD values.
func optionalDate(query url.Values, key string) (*time.Time, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errBadQueryParam, key, raw)
	}
	return &value, nil
}

// optionalTime parses RFC 3339 timestamps, falling back to bare dates.
func optionalTime(query url.Values, key string) (*time.Time, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		value, err = time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", errBadQueryParam, key, raw)
		}
	}
	return &value, nil
}

// attachPageLinks fills Next/Previous with absolute-path URLs derived from
// the request, preserving every other query parameter.
func attachPageLinks[T any](page *models.Page[T], r *http.Request) {
	if page.CurrentPage < page.TotalPages {
		page.Next = pageLink(r, page.CurrentPage+1)
	}
	if page.CurrentPage > 1 {
		page.Previous = pageLink(r, page.CurrentPage-1)
	}
}

func pageLink(r *http.Request, pageNumber int) *string {
	u := *r.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(pageNumber))
	u.RawQuery = query.Encode()
	link := u.String()
	return &link
}
