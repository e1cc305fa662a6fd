package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avdeenko/bookclub/models"
)

// BookListOptions are the query parameters of the book list endpoint.
// Zero values are omitted from the request.
type BookListOptions struct {
	Title    string
	Genre    string
	Search   string
	InStock  *bool
	Ordering string
	Page     int
	PageSize int
}

func (o BookListOptions) query() map[string]string {
	params := map[string]string{}
	if o.Title != "" {
		params["title"] = o.Title
	}
	if o.Genre != "" {
		params["genre"] = o.Genre
	}
	if o.Search != "" {
		params["search"] = o.Search
	}
	if o.InStock != nil {
		params["in_stock"] = strconv.FormatBool(*o.InStock)
	}
	if o.Ordering != "" {
		params["ordering"] = o.Ordering
	}
	if o.Page > 0 {
		params["page"] = strconv.Itoa(o.Page)
	}
	if o.PageSize > 0 {
		params["page_size"] = strconv.Itoa(o.PageSize)
	}
	return params
}

func (c *Client) ListBooks(ctx context.Context, opts BookListOptions) (models.Page[models.BookListItem], error) {
	var page models.Page[models.BookListItem]

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(opts.query()).
		SetResult(&page).
		Get("/api/books")
	if err != nil {
		return models.Page[models.BookListItem]{}, fmt.Errorf("list books request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page[models.BookListItem]{}, err
	}

	return page, nil
}

// SearchBooks matches q against title, author name, description and ISBN.
func (c *Client) SearchBooks(ctx context.Context, q string, opts BookListOptions) (models.Page[models.BookListItem], error) {
	var page models.Page[models.BookListItem]

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(opts.query()).
		SetQueryParam("q", q).
		SetResult(&page).
		Get("/api/books/search")
	if err != nil {
		return models.Page[models.BookListItem]{}, fmt.Errorf("search books request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page[models.BookListItem]{}, err
	}

	return page, nil
}

// CreateBook creates a book from a sparse document; absent fields take
// server-side defaults.
func (c *Client) CreateBook(ctx context.Context, doc models.BookUpdate) (models.Book, error) {
	var created models.Book

	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		SetResult(&created).
		Post("/api/books")
	if err != nil {
		return models.Book{}, fmt.Errorf("create book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}

	return created, nil
}

func (c *Client) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	var book models.Book

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&book).
		Get(fmt.Sprintf("/api/books/%d", bookID))
	if err != nil {
		return models.Book{}, fmt.Errorf("get book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}

	return book, nil
}

func (c *Client) UpdateBook(ctx context.Context, bookID int64, update models.BookUpdate) (models.Book, error) {
	var updated models.Book

	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&updated).
		Patch(fmt.Sprintf("/api/books/%d", bookID))
	if err != nil {
		return models.Book{}, fmt.Errorf("update book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}

	return updated, nil
}

func (c *Client) DeleteBook(ctx context.Context, bookID int64) error {
	resp, err := c.authorized().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/books/%d", bookID))
	if err != nil {
		return fmt.Errorf("delete book request: %w", err)
	}

	return mapHTTPError(resp)
}
