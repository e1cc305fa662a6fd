// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/internal/validators"
	"github.com/avdeenko/bookclub/models"
)

// bookService is the concrete implementation of BookService. Writes are
// role-gated the same way as authors: editors and admins create and update,
// only admins delete.
type bookService struct {
	bookRepository store.BookRepository

	logger *logger.Logger
}

func NewBookService(bookRepository store.BookRepository, logger *logger.Logger) BookService {
	return &bookService{
		bookRepository: bookRepository,
		logger:         logger,
	}
}

// CreateBook builds a book from the sparse document, applying defaults for
// absent fields, validates it and persists it. Uniqueness of the ISBN and of
// (title, author, year) is enforced by the database; violations surface as
// store sentinel errors.
func (s *bookService) CreateBook(ctx context.Context, actor models.User, doc models.BookUpdate) (models.Book, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanEditCatalog() {
		log.Warn().Int64("actor_id", actor.UserID).Str("role", string(actor.Role)).Msg("book creation denied")
		return models.Book{}, ErrPermissionDenied
	}

	// price has no server-side default; the zero value would otherwise pass
	// the gte=0 check on Book
	if doc.Price == nil {
		log.Error().Msg("book created without a price")
		fieldErrs := &validators.FieldErrors{Fields: map[string]string{"price": "price is required"}}
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	book := bookFromDocument(doc)
	if fieldErrs := validators.ValidateStruct(book); fieldErrs != nil {
		log.Error().Str("title", book.Title).Msg("invalid book data provided")
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	created, err := s.bookRepository.CreateBook(ctx, book)
	if err != nil {
		log.Err(err).Str("title", book.Title).Msg("book creation ended with error")
		return models.Book{}, fmt.Errorf("book creation ended with error: %w", err)
	}

	return created, nil
}

func (s *bookService) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	return s.bookRepository.GetBook(ctx, bookID)
}

func (s *bookService) ListBooks(ctx context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error) {
	return s.bookRepository.ListBooks(ctx, filter, page.Normalize())
}

func (s *bookService) UpdateBook(ctx context.Context, actor models.User, bookID int64, update models.BookUpdate) (models.Book, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanEditCatalog() {
		log.Warn().Int64("actor_id", actor.UserID).Str("role", string(actor.Role)).Msg("book update denied")
		return models.Book{}, ErrPermissionDenied
	}

	if fieldErrs := validators.ValidateStruct(update); fieldErrs != nil {
		log.Error().Int64("book_id", bookID).Msg("invalid book update provided")
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	updated, err := s.bookRepository.UpdateBook(ctx, bookID, update)
	if err != nil {
		log.Err(err).Int64("book_id", bookID).Msg("book update ended with error")
		return models.Book{}, err
	}

	return updated, nil
}

func (s *bookService) DeleteBook(ctx context.Context, actor models.User, bookID int64) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanDeleteCatalog() {
		log.Warn().Int64("actor_id", actor.UserID).Str("role", string(actor.Role)).Msg("book deletion denied")
		return ErrPermissionDenied
	}

	if err := s.bookRepository.DeleteBook(ctx, bookID); err != nil {
		log.Err(err).Int64("book_id", bookID).Msg("book deletion ended with error")
		return err
	}

	return nil
}

// bookFromDocument materializes a create document, substituting defaults:
// genre falls back to "other" and a book is in stock unless stated otherwise.
func bookFromDocument(doc models.BookUpdate) models.Book {
	book := models.Book{
		Genre:   models.DefaultGenre,
		InStock: true,
		Pages:   doc.Pages,
		Rating:  doc.Rating,
	}

	if doc.Title != nil {
		book.Title = *doc.Title
	}
	if doc.AuthorID != nil {
		book.AuthorID = *doc.AuthorID
	}
	if doc.ISBN != nil {
		book.ISBN = *doc.ISBN
	}
	if doc.PublicationYear != nil {
		book.PublicationYear = *doc.PublicationYear
	}
	if doc.Genre != nil && *doc.Genre != "" {
		book.Genre = *doc.Genre
	}
	if doc.Price != nil {
		book.Price = *doc.Price
	}
	if doc.Description != nil {
		book.Description = *doc.Description
	}
	if doc.InStock != nil {
		book.InStock = *doc.InStock
	}

	return book
}
