// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/models"
)

// authorRepository is the SQL-backed implementation of [AuthorRepository].
//
// The computed columns (book_count, average_rating) are produced by scalar
// subqueries in every SELECT rather than being materialized, so they can
// never drift from the books table.
type authorRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuthorRepository constructs an [AuthorRepository] backed by the provided
// database connection and logger.
func NewAuthorRepository(db *DB, logger *logger.Logger) AuthorRepository {
	logger.Debug().Msg("creating author repository")
	return &authorRepository{
		db:     db,
		logger: logger,
	}
}

// authorOrderings maps API ordering tokens to author columns.
var authorOrderings = map[string]string{
	"name":       "a.name",
	"birth_date": "a.birth_date",
	"created_at": "a.created_at",
}

const (
	authorBookCountExpr = "(SELECT COUNT(*) FROM books b WHERE b.author_id = a.author_id)"
	authorAvgRatingExpr = "COALESCE((SELECT AVG(b.rating) FROM books b WHERE b.author_id = a.author_id AND b.rating IS NOT NULL), 0)"
)

func (r *authorRepository) authorSelect() sq.SelectBuilder {
	return r.db.Builder().
		Select(
			"a.author_id", "a.name", "a.bio", "a.birth_date", "a.nationality",
			"a.website", "a.created_at", "a.updated_at",
			authorBookCountExpr+" AS book_count",
			authorAvgRatingExpr+" AS average_rating",
		).
		From("authors a")
}

func (r *authorRepository) CreateAuthor(ctx context.Context, author models.Author) (models.Author, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(author.TableName()).
		Columns("name", "bio", "birth_date", "nationality", "website").
		Values(author.Name, author.Bio, author.BirthDate, author.Nationality, author.Website).
		Suffix("RETURNING author_id, created_at, updated_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.CreateAuthor").Msg("error: building query")
		return models.Author{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&author.AuthorID, &author.CreatedAt, &author.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*authorRepository.CreateAuthor").Msg("error: scanning error")
		return models.Author{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// a fresh author has no books
	author.LatestBook = nil
	return author, nil
}

func (r *authorRepository) GetAuthor(ctx context.Context, authorID int64) (models.Author, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.authorSelect().
		Where(sq.Eq{"a.author_id": authorID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.GetAuthor").Msg("error: building query")
		return models.Author{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	author, err := scanAuthor(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Author{}, ErrAuthorNotFound
		}
		log.Err(err).Str("func", "*authorRepository.GetAuthor").Msg("error: scanning error")
		return models.Author{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return author, nil
}

// ListAuthors returns one page of authors matching the filter plus the total
// match count. Default ordering is name ascending.
func (r *authorRepository) ListAuthors(ctx context.Context, filter models.AuthorFilter, page models.PageParams) ([]models.Author, int64, error) {
	log := logger.FromContext(ctx)

	where := r.authorPredicates(filter)

	total, err := r.countAuthors(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	order := "a.name ASC"
	if expr, ok := orderBy(filter.Ordering, authorOrderings); ok {
		order = expr
	}

	query, args, err := r.authorSelect().
		Where(where).
		OrderBy(order, "a.author_id ASC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.ListAuthors").Msg("error: building query")
		return nil, 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.ListAuthors").Msg("error: executing query")
		return nil, 0, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			log.Err(err).Str("func", "*authorRepository.ListAuthors").Msg("error: scanning row")
			return nil, 0, errors.Join(ErrScanningRow, err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(ErrScanningRows, err)
	}

	return authors, total, nil
}

func (r *authorRepository) UpdateAuthor(ctx context.Context, authorID int64, update models.AuthorUpdate) (models.Author, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().Update("authors")
	touched := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		touched = true
	}
	if update.Bio != nil {
		builder = builder.Set("bio", *update.Bio)
		touched = true
	}
	if update.BirthDate != nil {
		builder = builder.Set("birth_date", *update.BirthDate)
		touched = true
	}
	if update.Nationality != nil {
		builder = builder.Set("nationality", *update.Nationality)
		touched = true
	}
	if update.Website != nil {
		builder = builder.Set("website", *update.Website)
		touched = true
	}
	if !touched {
		return models.Author{}, ErrNothingToUpdate
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"author_id": authorID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.UpdateAuthor").Msg("error: building query")
		return models.Author{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.UpdateAuthor").Msg("error: executing statement")
		return models.Author{}, errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Author{}, ErrAuthorNotFound
	}

	return r.GetAuthor(ctx, authorID)
}

// DeleteAuthor removes the author. The books table cascades on author
// deletion, so the author's books disappear with it.
func (r *authorRepository) DeleteAuthor(ctx context.Context, authorID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete("authors").
		Where(sq.Eq{"author_id": authorID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.DeleteAuthor").Msg("error: building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.DeleteAuthor").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrAuthorNotFound
	}

	return nil
}

// GetAuthorStatistics aggregates the author's books by genre, publication
// year and price. Returns [ErrAuthorNotFound] when the author does not exist.
func (r *authorRepository) GetAuthorStatistics(ctx context.Context, authorID int64) (models.AuthorStatistics, error) {
	log := logger.FromContext(ctx)

	var stats models.AuthorStatistics

	// totals and price bounds in one scan; also proves the author exists
	query, args, err := r.db.Builder().
		Select(
			authorBookCountExpr,
			"(SELECT AVG(b.rating) FROM books b WHERE b.author_id = a.author_id AND b.rating IS NOT NULL)",
			"(SELECT MIN(b.price) FROM books b WHERE b.author_id = a.author_id)",
			"(SELECT MAX(b.price) FROM books b WHERE b.author_id = a.author_id)",
		).
		From("authors a").
		Where(sq.Eq{"a.author_id": authorID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.GetAuthorStatistics").Msg("error: building query")
		return models.AuthorStatistics{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.TotalBooks, &stats.AverageRating, &stats.PriceRange.MinPrice, &stats.PriceRange.MaxPrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AuthorStatistics{}, ErrAuthorNotFound
		}
		log.Err(err).Str("func", "*authorRepository.GetAuthorStatistics").Msg("error: scanning row")
		return models.AuthorStatistics{}, errors.Join(ErrScanningRow, err)
	}

	stats.Genres = []models.GenreCount{}
	stats.PublicationYears = []models.YearCount{}
	if stats.TotalBooks == 0 {
		return stats, nil
	}

	genreQuery, genreArgs, err := r.db.Builder().
		Select("genre", "COUNT(*)").
		From("books").
		Where(sq.Eq{"author_id": authorID}).
		GroupBy("genre").
		OrderBy("COUNT(*) DESC", "genre ASC").
		ToSql()
	if err != nil {
		return models.AuthorStatistics{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	genreRows, err := r.db.QueryContext(ctx, genreQuery, genreArgs...)
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.GetAuthorStatistics").Msg("error: executing query")
		return models.AuthorStatistics{}, errors.Join(ErrExecutingQuery, err)
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var bucket models.GenreCount
		if err := genreRows.Scan(&bucket.Genre, &bucket.Count); err != nil {
			return models.AuthorStatistics{}, errors.Join(ErrScanningRow, err)
		}
		stats.Genres = append(stats.Genres, bucket)
	}
	if err := genreRows.Err(); err != nil {
		return models.AuthorStatistics{}, errors.Join(ErrScanningRows, err)
	}

	yearQuery, yearArgs, err := r.db.Builder().
		Select("publication_year", "COUNT(*)").
		From("books").
		Where(sq.Eq{"author_id": authorID}).
		GroupBy("publication_year").
		OrderBy("publication_year DESC").
		ToSql()
	if err != nil {
		return models.AuthorStatistics{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	yearRows, err := r.db.QueryContext(ctx, yearQuery, yearArgs...)
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.GetAuthorStatistics").Msg("error: executing query")
		return models.AuthorStatistics{}, errors.Join(ErrExecutingQuery, err)
	}
	defer yearRows.Close()

	for yearRows.Next() {
		var bucket models.YearCount
		if err := yearRows.Scan(&bucket.PublicationYear, &bucket.Count); err != nil {
			return models.AuthorStatistics{}, errors.Join(ErrScanningRow, err)
		}
		stats.PublicationYears = append(stats.PublicationYears, bucket)
	}
	if err := yearRows.Err(); err != nil {
		return models.AuthorStatistics{}, errors.Join(ErrScanningRows, err)
	}

	return stats, nil
}

// TopRated returns up to limit authors having at least one book, ordered by
// average rating descending. Authors whose books are all unrated average
// zero and sort last.
func (r *authorRepository) TopRated(ctx context.Context, limit int) ([]models.Author, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.authorSelect().
		Where(sq.Expr("EXISTS (SELECT 1 FROM books b WHERE b.author_id = a.author_id)")).
		OrderBy("average_rating DESC", "a.name ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.TopRated").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.TopRated").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			log.Err(err).Str("func", "*authorRepository.TopRated").Msg("error: scanning row")
			return nil, errors.Join(ErrScanningRow, err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return authors, nil
}

// authorPredicates composes the filter's WHERE conjuncts. Book-derived
// filters use correlated subqueries against the books table.
func (r *authorRepository) authorPredicates(filter models.AuthorFilter) sq.And {
	var where sq.And

	if filter.Name != "" {
		where = append(where, r.db.icontains("a.name", filter.Name))
	}
	if filter.Bio != "" {
		where = append(where, r.db.icontains("a.bio", filter.Bio))
	}
	if filter.Nationality != "" {
		where = append(where, r.db.icontains("a.nationality", filter.Nationality))
	}
	if filter.Search != "" {
		where = append(where, sq.Or{
			r.db.icontains("a.name", filter.Search),
			r.db.icontains("a.bio", filter.Search),
			r.db.icontains("a.nationality", filter.Search),
		})
	}
	if filter.BirthDateAfter != nil {
		where = append(where, sq.GtOrEq{"a.birth_date": *filter.BirthDateAfter})
	}
	if filter.BirthDateBefore != nil {
		where = append(where, sq.LtOrEq{"a.birth_date": *filter.BirthDateBefore})
	}
	if filter.HasBooks != nil {
		if *filter.HasBooks {
			where = append(where, sq.Expr("EXISTS (SELECT 1 FROM books b WHERE b.author_id = a.author_id)"))
		} else {
			where = append(where, sq.Expr("NOT EXISTS (SELECT 1 FROM books b WHERE b.author_id = a.author_id)"))
		}
	}
	if filter.MinBooks != nil {
		where = append(where, sq.Expr(authorBookCountExpr+" >= ?", *filter.MinBooks))
	}
	if filter.MaxBooks != nil {
		where = append(where, sq.Expr(authorBookCountExpr+" <= ?", *filter.MaxBooks))
	}
	if filter.BookGenre != "" {
		where = append(where, sq.Expr("EXISTS (SELECT 1 FROM books b WHERE b.author_id = a.author_id AND b.genre = ?)", filter.BookGenre))
	}

	return where
}

func (r *authorRepository) countAuthors(ctx context.Context, where sq.And) (int64, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select("COUNT(*)").
		From("authors a")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*authorRepository.countAuthors").Msg("error: building query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*authorRepository.countAuthors").Msg("error: scanning row")
		return 0, errors.Join(ErrScanningRow, err)
	}

	return count, nil
}

func scanAuthor(row rowScanner) (models.Author, error) {
	var author models.Author
	var birthDate sql.NullTime

	err := row.Scan(
		&author.AuthorID, &author.Name, &author.Bio, &birthDate,
		&author.Nationality, &author.Website, &author.CreatedAt, &author.UpdatedAt,
		&author.BookCount, &author.AverageRating,
	)
	if err != nil {
		return models.Author{}, err
	}

	if birthDate.Valid {
		author.BirthDate = &birthDate.Time
	}
	return author, nil
}
