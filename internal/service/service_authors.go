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

// authorService is the concrete implementation of AuthorService.
//
// Catalog writes are role-gated: editors and admins may create and update,
// only admins may delete. Reads are public.
type authorService struct {
	authorRepository store.AuthorRepository
	bookRepository   store.BookRepository

	logger *logger.Logger
}

func NewAuthorService(authorRepository store.AuthorRepository, bookRepository store.BookRepository, logger *logger.Logger) AuthorService {
	return &authorService{
		authorRepository: authorRepository,
		bookRepository:   bookRepository,
		logger:           logger,
	}
}

func (s *authorService) CreateAuthor(ctx context.Context, actor models.User, author models.Author) (models.Author, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanEditCatalog() {
		log.Warn().Int64("actor_id", actor.UserID).Str("role", string(actor.Role)).Msg("author creation denied")
		return models.Author{}, ErrPermissionDenied
	}

	if fieldErrs := validators.ValidateStruct(author); fieldErrs != nil {
		log.Error().Str("name", author.Name).Msg("invalid author data provided")
		return models.Author{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	created, err := s.authorRepository.CreateAuthor(ctx, author)
	if err != nil {
		log.Err(err).Str("name", author.Name).Msg("author creation ended with error")
		return models.Author{}, fmt.Errorf("author creation ended with error: %w", err)
	}

	return created, nil
}

// GetAuthor returns the author detail view: biographical fields, computed
// statistics, the latest book reference and the embedded book list.
func (s *authorService) GetAuthor(ctx context.Context, authorID int64) (models.Author, error) {
	log := logger.FromContext(ctx)

	author, err := s.authorRepository.GetAuthor(ctx, authorID)
	if err != nil {
		return models.Author{}, err
	}

	if err := s.attachLatestBooks(ctx, []*models.Author{&author}); err != nil {
		return models.Author{}, err
	}

	books, _, err := s.bookRepository.ListBooks(ctx,
		models.BookFilter{AuthorID: &authorID},
		models.PageParams{Page: 1, PageSize: models.MaxPageSize},
	)
	if err != nil {
		log.Err(err).Int64("author_id", authorID).Msg("listing author books ended with error")
		return models.Author{}, fmt.Errorf("listing author books ended with error: %w", err)
	}

	author.Books = make([]models.BookListItem, 0, len(books))
	for _, book := range books {
		author.Books = append(author.Books, book.ListItem())
	}

	return author, nil
}

func (s *authorService) ListAuthors(ctx context.Context, filter models.AuthorFilter, page models.PageParams) ([]models.Author, int64, error) {
	authors, total, err := s.authorRepository.ListAuthors(ctx, filter, page.Normalize())
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*models.Author, len(authors))
	for i := range authors {
		refs[i] = &authors[i]
	}
	if err := s.attachLatestBooks(ctx, refs); err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

func (s *authorService) UpdateAuthor(ctx context.Context, actor models.User, authorID int64, update models.AuthorUpdate) (models.Author, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanEditCatalog() {
		log.Warn().Int64("actor_id", actor.UserID).Str("role", string(actor.Role)).Msg("author update denied")
		return models.Author{}, ErrPermissionDenied
	}

	if fieldErrs := validators.ValidateStruct(update); fieldErrs != nil {
		log.Error().Int64("author_id", authorID).Msg("invalid author update provided")
		return models.Author{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	updated, err := s.authorRepository.UpdateAuthor(ctx, authorID, update)
	if err != nil {
		log.Err(err).Int64("author_id", authorID).Msg("author update ended with error")
		return models.Author{}, err
	}

	if err := s.attachLatestBooks(ctx, []*models.Author{&updated}); err != nil {
		return models.Author{}, err
	}

	return updated, nil
}

func (s *authorService) DeleteAuthor(ctx context.Context, actor models.User, authorID int64) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanDeleteCatalog() {
		log.Warn().Int64("actor_id", actor.UserID).Str("role", string(actor.Role)).Msg("author deletion denied")
		return ErrPermissionDenied
	}

	if err := s.authorRepository.DeleteAuthor(ctx, authorID); err != nil {
		log.Err(err).Int64("author_id", authorID).Msg("author deletion ended with error")
		return err
	}

	return nil
}

func (s *authorService) GetAuthorStatistics(ctx context.Context, authorID int64) (models.AuthorStatistics, error) {
	return s.authorRepository.GetAuthorStatistics(ctx, authorID)
}

func (s *authorService) TopRatedAuthors(ctx context.Context, limit int) ([]models.Author, error) {
	authors, err := s.authorRepository.TopRated(ctx, limit)
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Author, len(authors))
	for i := range authors {
		refs[i] = &authors[i]
	}
	if err := s.attachLatestBooks(ctx, refs); err != nil {
		return nil, err
	}

	return authors, nil
}

func (s *authorService) ListAuthorBooks(ctx context.Context, authorID int64, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error) {
	if _, err := s.authorRepository.GetAuthor(ctx, authorID); err != nil {
		return nil, 0, err
	}

	filter.AuthorID = &authorID
	return s.bookRepository.ListBooks(ctx, filter, page.Normalize())
}

// attachLatestBooks resolves the latest-book reference for each author in
// one query.
func (s *authorService) attachLatestBooks(ctx context.Context, authors []*models.Author) error {
	log := logger.FromContext(ctx)

	ids := make([]int64, 0, len(authors))
	for _, author := range authors {
		if author.BookCount > 0 {
			ids = append(ids, author.AuthorID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	latest, err := s.bookRepository.LatestByAuthors(ctx, ids)
	if err != nil {
		log.Err(err).Msg("resolving latest books ended with error")
		return fmt.Errorf("resolving latest books ended with error: %w", err)
	}

	for _, author := range authors {
		if ref, ok := latest[author.AuthorID]; ok {
			r := ref
			author.LatestBook = &r
		}
	}

	return nil
}
