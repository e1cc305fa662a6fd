package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/avdeenko/bookclub/internal/logger"
)

// followRepository maintains the "follows" edge table. Edges are plain
// (follower_id, followee_id) pairs with a composite primary key, so inserting
// a duplicate edge is absorbed by ON CONFLICT DO NOTHING and the operations
// stay idempotent.
type followRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFollowRepository constructs a [FollowRepository] backed by the provided
// database connection and logger.
func NewFollowRepository(db *DB, logger *logger.Logger) FollowRepository {
	logger.Debug().Msg("creating follow repository")
	return &followRepository{
		db:     db,
		logger: logger,
	}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert("follows").
		Columns("follower_id", "followee_id").
		Values(followerID, followeeID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*followRepository.Follow").Msg("error: building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if foreignKeyViolation(err) {
			return ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*followRepository.Follow").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete("follows").
		Where(sq.Eq{"follower_id": followerID, "followee_id": followeeID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*followRepository.Unfollow").Msg("error: building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	// deleting a missing edge is a no-op, mirroring Follow's idempotence
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*followRepository.Unfollow").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *followRepository) FolloweeIDs(ctx context.Context, followerID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("followee_id").
		From("follows").
		Where(sq.Eq{"follower_id": followerID}).
		OrderBy("followee_id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*followRepository.FolloweeIDs").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*followRepository.FolloweeIDs").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Err(err).Str("func", "*followRepository.FolloweeIDs").Msg("error: scanning row")
			return nil, errors.Join(ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return ids, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return r.countEdges(ctx, sq.Eq{"followee_id": userID})
}

func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return r.countEdges(ctx, sq.Eq{"follower_id": userID})
}

func (r *followRepository) countEdges(ctx context.Context, where sq.Eq) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("COUNT(*)").
		From("follows").
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*followRepository.countEdges").Msg("error: building query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*followRepository.countEdges").Msg("error: scanning row")
		return 0, errors.Join(ErrScanningRow, err)
	}

	return count, nil
}
