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

// commentRepository is the SQL-backed implementation of [CommentRepository].
type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCommentRepository constructs a [CommentRepository] backed by the
// provided database connection and logger.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

const commentSelectColumns = "c.comment_id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, u.user_id, u.username, u.email"

func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(comment.TableName()).
		Columns("post_id", "author_id", "content").
		Values(comment.PostID, comment.AuthorID, comment.Content).
		Suffix("RETURNING comment_id, post_id, author_id, content, created_at, updated_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.CreateComment").Msg("error: building query")
		return models.Comment{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	var saved models.Comment
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&saved.CommentID, &saved.PostID, &saved.AuthorID, &saved.Content, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if foreignKeyViolation(err) {
			return models.Comment{}, ErrPostNotFound
		}
		log.Err(err).Str("func", "*commentRepository.CreateComment").Msg("error: scanning error")
		return models.Comment{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *commentRepository) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(commentSelectColumns).
		From("comments c").
		Join("users u ON u.user_id = c.author_id").
		Where(sq.Eq{"c.comment_id": commentID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.GetComment").Msg("error: building query")
		return models.Comment{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, ErrCommentNotFound
		}
		log.Err(err).Str("func", "*commentRepository.GetComment").Msg("error: scanning error")
		return models.Comment{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return comment, nil
}

// ListCommentsByPost returns one page of the post's comments, oldest first,
// plus the total count.
func (r *commentRepository) ListCommentsByPost(ctx context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := r.db.Builder().
		Select("COUNT(*)").
		From("comments").
		Where(sq.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListCommentsByPost").Msg("error: building query")
		return nil, 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*commentRepository.ListCommentsByPost").Msg("error: scanning row")
		return nil, 0, errors.Join(ErrScanningRow, err)
	}

	query, args, err := r.db.Builder().
		Select(commentSelectColumns).
		From("comments c").
		Join("users u ON u.user_id = c.author_id").
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC", "c.comment_id ASC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListCommentsByPost").Msg("error: building query")
		return nil, 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListCommentsByPost").Msg("error: executing query")
		return nil, 0, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			log.Err(err).Str("func", "*commentRepository.ListCommentsByPost").Msg("error: scanning row")
			return nil, 0, errors.Join(ErrScanningRow, err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(ErrScanningRows, err)
	}

	return comments, total, nil
}

func (r *commentRepository) UpdateComment(ctx context.Context, commentID int64, update models.CommentUpdate) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if update.Content == nil {
		return models.Comment{}, ErrNothingToUpdate
	}

	query, args, err := r.db.Builder().
		Update("comments").
		Set("content", *update.Content).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"comment_id": commentID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.UpdateComment").Msg("error: building query")
		return models.Comment{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.UpdateComment").Msg("error: executing statement")
		return models.Comment{}, errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Comment{}, ErrCommentNotFound
	}

	return r.GetComment(ctx, commentID)
}

func (r *commentRepository) DeleteComment(ctx context.Context, commentID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete("comments").
		Where(sq.Eq{"comment_id": commentID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.DeleteComment").Msg("error: building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.DeleteComment").Msg("error: executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func scanComment(row rowScanner) (models.Comment, error) {
	var comment models.Comment
	var author models.UserSummary

	err := row.Scan(
		&comment.CommentID, &comment.PostID, &comment.AuthorID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
		&author.UserID, &author.Username, &author.Email,
	)
	if err != nil {
		return models.Comment{}, err
	}

	comment.Author = &author
	return comment, nil
}
