// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/models"
)

// bookRepository is the SQL-backed implementation of [BookRepository].
// Every read joins the authors table so results carry the author name.
type bookRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBookRepository constructs a [BookRepository] backed by the provided
// database connection and logger.
func NewBookRepository(db *DB, logger *logger.Logger) BookRepository {
	logger.Debug().Msg("creating book repository")
	return &bookRepository{
		db:     db,
		logger: logger,
	}
}

// bookOrderings maps API ordering tokens to book columns.
var bookOrderings = map[string]string{
	"title":            "b.title",
	"publication_year": "b.publication_year",
	"rating":           "b.rating",
	"price":            "b.price",
	"created_at":       "b.created_at",
}

const bookSelectColumns = "b.book_id, b.author_id, b.title, b.isbn, b.publication_year, b.genre, b.pages, b.rating, b.price, b.description, b.in_stock, b.created_at, b.updated_at, a.name"

func (r *bookRepository) bookSelect() sq.SelectBuilder {
	return r.db.Builder().
		Select(bookSelectColumns).
		From("books b").
		Join("authors a ON a.author_id = b.author_id")
}

func (r *bookRepository) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(book.TableName()).
		Columns("author_id", "title", "isbn", "publication_year", "genre", "pages", "rating", "price", "description", "in_stock").
		Values(book.AuthorID, book.Title, book.ISBN, book.PublicationYear, book.Genre, book.Pages, book.Rating, book.Price, book.Description, book.InStock).
		Suffix("RETURNING book_id, created_at, updated_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.CreateBook").Msg("error: building query")
		return models.Book{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&book.BookID, &book.CreatedAt, &book.UpdatedAt); err != nil {
		if detail, ok := uniqueViolation(err); ok {
			if isbnConstraint(detail) {
				return models.Book{}, ErrISBNAlreadyExists
			}
			return models.Book{}, ErrBookAlreadyExists
		}
		if foreignKeyViolation(err) {
			return models.Book{}, ErrAuthorReferenceInvalid
		}
		log.Err(err).Str("func", "*bookRepository.CreateBook").Msg("error: scanning error")
		return models.Book{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.GetBook(ctx, book.BookID)
}

func (r *bookRepository) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.bookSelect().
		Where(sq.Eq{"b.book_id": bookID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.GetBook").Msg("error: building query")
		return models.Book{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrBookNotFound
		}
		log.Err(err).Str("func", "*bookRepository.GetBook").Msg("error: scanning error")
		return models.Book{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return book, nil
}

// ListBooks returns one page of books matching the filter plus the total
// match count. Default ordering is newest publication first, then title.
func (r *bookRepository) ListBooks(ctx context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error) {
	log := logger.FromContext(ctx)

	where := r.bookPredicates(filter)

	total, err := r.countBooks(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	ordering := []string{"b.publication_year DESC", "b.title ASC"}
	if expr, ok := orderBy(filter.Ordering, bookOrderings); ok {
		ordering = []string{expr}
	}
	ordering = append(ordering, "b.book_id ASC")

	query, args, err := r.bookSelect().
		Where(where).
		OrderBy(ordering...).
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error: building query")
		return nil, 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error: executing query")
		return nil, 0, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error: scanning row")
			return nil, 0, errors.Join(ErrScanningRow, err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(ErrScanningRows, err)
	}

	return books, total, nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, bookID int64, update models.BookUpdate) (models.Book, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().Update("books")
	touched := false
	set := func(column string, value any) {
		builder = builder.Set(column, value)
		touched = true
	}
	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.AuthorID != nil {
		set("author_id", *update.AuthorID)
	}
	if update.ISBN != nil {
		set("isbn", *update.ISBN)
	}
	if update.PublicationYear != nil {
		set("publication_year", *update.PublicationYear)
	}
	if update.Genre != nil {
		set("genre", *update.Genre)
	}
	if update.Pages != nil {
		set("pages", *update.Pages)
	}
	if update.Rating != nil {
		set("rating", *update.Rating)
	}
	if update.Price != nil {
		set("price", *update.Price)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.InStock != nil {
		set("in_stock", *update.InStock)
	}
	if !touched {
		return models.Book{}, ErrNothingToUpdate
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"book_id": bookID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.UpdateBook").Msg("error: building query")
		return models.Book{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if detail, ok := uniqueViolation(err); ok {
			if isbnConstraint(detail) {
				return models.Book{}, ErrISBNAlreadyExists
			}
			return models.Book{}, ErrBookAlreadyExists
		}
		if foreignKeyViolation(err) {
			return models.Book{}, ErrAuthorReferenceInvalid
		}
		log.Err(err).Str("func", "*bookRepository.UpdateBook").Msg("error: executing statement")
		return models.Book{}, errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Book{}, ErrBookNotFound
	}

	return r.GetBook(ctx, bookID)
}

func (r *bookRepository) DeleteBook(ctx context.Context, bookID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete("books").
		Where(sq.Eq{"book_id": bookID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.DeleteBook").Msg("error: building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.DeleteBook").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrBookNotFound
	}

	return nil
}

// LatestByAuthors resolves each author's most recently published book. Ties
// on publication year break on the lowest book ID.
func (r *bookRepository) LatestByAuthors(ctx context.Context, authorIDs []int64) (map[int64]models.BookRef, error) {
	log := logger.FromContext(ctx)

	if len(authorIDs) == 0 {
		return map[int64]models.BookRef{}, nil
	}

	query, args, err := r.db.Builder().
		Select("b.author_id", "b.book_id", "b.title", "b.publication_year", "b.rating").
		From("books b").
		Where(sq.Eq{"b.author_id": authorIDs}).
		Where(sq.Expr("b.publication_year = (SELECT MAX(b2.publication_year) FROM books b2 WHERE b2.author_id = b.author_id)")).
		OrderBy("b.author_id ASC", "b.book_id ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.LatestByAuthors").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.LatestByAuthors").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	latest := make(map[int64]models.BookRef, len(authorIDs))
	for rows.Next() {
		var authorID int64
		var ref models.BookRef
		var rating sql.NullFloat64
		if err := rows.Scan(&authorID, &ref.BookID, &ref.Title, &ref.PublicationYear, &rating); err != nil {
			log.Err(err).Str("func", "*bookRepository.LatestByAuthors").Msg("error: scanning row")
			return nil, errors.Join(ErrScanningRow, err)
		}
		if rating.Valid {
			ref.Rating = &rating.Float64
		}
		if _, seen := latest[authorID]; !seen {
			latest[authorID] = ref
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return latest, nil
}

// bookPredicates composes the filter's WHERE conjuncts. Every filter field
// maps onto exactly one predicate; conjuncts are combined with AND.
func (r *bookRepository) bookPredicates(filter models.BookFilter) sq.And {
	var where sq.And

	if filter.Title != "" {
		where = append(where, r.db.icontains("b.title", filter.Title))
	}
	if filter.Description != "" {
		where = append(where, r.db.icontains("b.description", filter.Description))
	}
	if filter.ISBN != "" {
		where = append(where, sq.Eq{"b.isbn": filter.ISBN})
	}
	if filter.Genre != "" {
		where = append(where, sq.Eq{"b.genre": filter.Genre})
	}
	if filter.AuthorID != nil {
		where = append(where, sq.Eq{"b.author_id": *filter.AuthorID})
	}
	if filter.AuthorName != "" {
		where = append(where, r.db.icontains("a.name", filter.AuthorName))
	}
	if filter.Search != "" {
		where = append(where, sq.Or{
			r.db.icontains("b.title", filter.Search),
			r.db.icontains("a.name", filter.Search),
			r.db.icontains("b.description", filter.Search),
			r.db.icontains("b.isbn", filter.Search),
		})
	}
	if filter.InStock != nil {
		where = append(where, sq.Eq{"b.in_stock": *filter.InStock})
	}
	if filter.PriceMin != nil {
		where = append(where, sq.GtOrEq{"b.price": *filter.PriceMin})
	}
	if filter.PriceMax != nil {
		where = append(where, sq.LtOrEq{"b.price": *filter.PriceMax})
	}
	if filter.RatingMin != nil {
		where = append(where, sq.GtOrEq{"b.rating": *filter.RatingMin})
	}
	if filter.RatingMax != nil {
		where = append(where, sq.LtOrEq{"b.rating": *filter.RatingMax})
	}
	if filter.PagesMin != nil {
		where = append(where, sq.GtOrEq{"b.pages": *filter.PagesMin})
	}
	if filter.PagesMax != nil {
		where = append(where, sq.LtOrEq{"b.pages": *filter.PagesMax})
	}
	if filter.Year != nil {
		where = append(where, sq.Eq{"b.publication_year": *filter.Year})
	}
	if filter.YearMin != nil {
		where = append(where, sq.GtOrEq{"b.publication_year": *filter.YearMin})
	}
	if filter.YearMax != nil {
		where = append(where, sq.LtOrEq{"b.publication_year": *filter.YearMax})
	}
	if filter.CreatedAfter != nil {
		where = append(where, sq.GtOrEq{"b.created_at": *filter.CreatedAfter})
	}
	if filter.CreatedBefore != nil {
		where = append(where, sq.LtOrEq{"b.created_at": *filter.CreatedBefore})
	}
	if filter.UpdatedAfter != nil {
		where = append(where, sq.GtOrEq{"b.updated_at": *filter.UpdatedAfter})
	}
	if filter.UpdatedBefore != nil {
		where = append(where, sq.LtOrEq{"b.updated_at": *filter.UpdatedBefore})
	}

	return where
}

func (r *bookRepository) countBooks(ctx context.Context, where sq.And) (int64, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select("COUNT(*)").
		From("books b").
		Join("authors a ON a.author_id = b.author_id")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.countBooks").Msg("error: building query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*bookRepository.countBooks").Msg("error: scanning row")
		return 0, errors.Join(ErrScanningRow, err)
	}

	return count, nil
}

func scanBook(row rowScanner) (models.Book, error) {
	var book models.Book
	var pages sql.NullInt64
	var rating sql.NullFloat64

	err := row.Scan(
		&book.BookID, &book.AuthorID, &book.Title, &book.ISBN,
		&book.PublicationYear, &book.Genre, &pages, &rating,
		&book.Price, &book.Description, &book.InStock,
		&book.CreatedAt, &book.UpdatedAt,
		&book.AuthorName,
	)
	if err != nil {
		return models.Book{}, err
	}

	if pages.Valid {
		p := int(pages.Int64)
		book.Pages = &p
	}
	if rating.Valid {
		book.Rating = &rating.Float64
	}

	now := time.Now()
	book.BookAge = book.Age(now)
	book.IsRecent = book.Recent(now)
	book.Author = &models.AuthorSummary{AuthorID: book.AuthorID, Name: book.AuthorName}

	return book, nil
}
