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

// postRepository is the SQL-backed implementation of [PostRepository].
// Every read joins the users table so results carry the author summary.
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// database connection and logger.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// postOrderings maps API ordering tokens to post columns.
var postOrderings = map[string]string{
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
	"title":      "p.title",
}

const postSelectColumns = "p.post_id, p.author_id, p.title, p.content, p.created_at, p.updated_at, u.user_id, u.username, u.email"

func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(post.TableName()).
		Columns("author_id", "title", "content").
		Values(post.AuthorID, post.Title, post.Content).
		Suffix("RETURNING post_id, author_id, title, content, created_at, updated_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error: building query")
		return models.Post{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	var saved models.Post
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&saved.PostID, &saved.AuthorID, &saved.Title, &saved.Content, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if foreignKeyViolation(err) {
			return models.Post{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *postRepository) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(postSelectColumns).
		From("posts p").
		Join("users u ON u.user_id = p.author_id").
		Where(sq.Eq{"p.post_id": postID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.GetPost").Msg("error: building query")
		return models.Post{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		log.Err(err).Str("func", "*postRepository.GetPost").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return post, nil
}

// ListPosts returns one page of posts matching the filter plus the total
// match count. Default ordering is newest first.
func (r *postRepository) ListPosts(ctx context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error) {
	log := logger.FromContext(ctx)

	where := r.postPredicates(filter)

	total, err := r.countPosts(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	order := "p.created_at DESC"
	if expr, ok := orderBy(filter.Ordering, postOrderings); ok {
		order = expr
	}

	query, args, err := r.db.Builder().
		Select(postSelectColumns).
		From("posts p").
		Join("users u ON u.user_id = p.author_id").
		Where(where).
		OrderBy(order, "p.post_id DESC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error: building query")
		return nil, 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error: executing query")
		return nil, 0, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error: scanning row")
			return nil, 0, errors.Join(ErrScanningRow, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(ErrScanningRows, err)
	}

	return posts, total, nil
}

func (r *postRepository) UpdatePost(ctx context.Context, postID int64, update models.PostUpdate) (models.Post, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().Update("posts")
	touched := false
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
		touched = true
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
		touched = true
	}
	if !touched {
		return models.Post{}, ErrNothingToUpdate
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.UpdatePost").Msg("error: building query")
		return models.Post{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.UpdatePost").Msg("error: executing statement")
		return models.Post{}, errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Post{}, ErrPostNotFound
	}

	return r.GetPost(ctx, postID)
}

func (r *postRepository) DeletePost(ctx context.Context, postID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete("posts").
		Where(sq.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error: building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// postPredicates composes the filter's WHERE conjuncts.
func (r *postRepository) postPredicates(filter models.PostFilter) sq.And {
	var where sq.And

	if filter.AuthorUsername != "" {
		where = append(where, sq.Eq{"u.username": filter.AuthorUsername})
	}
	if len(filter.AuthorIDs) > 0 {
		where = append(where, sq.Eq{"p.author_id": filter.AuthorIDs})
	}
	if filter.Search != "" {
		where = append(where, sq.Or{
			r.db.icontains("p.title", filter.Search),
			r.db.icontains("p.content", filter.Search),
		})
	}

	return where
}

func (r *postRepository) countPosts(ctx context.Context, where sq.And) (int64, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select("COUNT(*)").
		From("posts p").
		Join("users u ON u.user_id = p.author_id")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.countPosts").Msg("error: building query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*postRepository.countPosts").Msg("error: scanning row")
		return 0, errors.Join(ErrScanningRow, err)
	}

	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	var author models.UserSummary

	err := row.Scan(
		&post.PostID, &post.AuthorID, &post.Title, &post.Content,
		&post.CreatedAt, &post.UpdatedAt,
		&author.UserID, &author.Username, &author.Email,
	)
	if err != nil {
		return models.Post{}, err
	}

	post.Author = &author
	return post, nil
}
