package service

import (
	"context"
	"fmt"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/models"
)

// profileService resolves public profiles and maintains the follow graph.
type profileService struct {
	userRepository   store.UserRepository
	followRepository store.FollowRepository
	postRepository   store.PostRepository

	logger *logger.Logger
}

func NewProfileService(userRepository store.UserRepository, followRepository store.FollowRepository, postRepository store.PostRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository:   userRepository,
		followRepository: followRepository,
		postRepository:   postRepository,
		logger:           logger,
	}
}

// GetProfile assembles the public profile of a user: identity, bio and
// follow-graph counters.
func (s *profileService) GetProfile(ctx context.Context, username string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.Profile{}, err
	}

	followers, err := s.followRepository.CountFollowers(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("counting followers ended with error")
		return models.Profile{}, fmt.Errorf("counting followers ended with error: %w", err)
	}

	following, err := s.followRepository.CountFollowing(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("counting following ended with error")
		return models.Profile{}, fmt.Errorf("counting following ended with error: %w", err)
	}

	return models.Profile{
		User:           user.Summary(),
		Bio:            user.Bio,
		FollowersCount: followers,
		FollowingCount: following,
		CreatedAt:      user.CreatedAt,
	}, nil
}

// Follow records that followerID follows followeeID. Following an
// already-followed user is a no-op; following oneself is rejected.
func (s *profileService) Follow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx)

	if followeeID == followerID {
		return ErrCannotFollowSelf
	}
	if _, err := s.userRepository.FindUserByID(ctx, followeeID); err != nil {
		return err
	}

	if err := s.followRepository.Follow(ctx, followerID, followeeID); err != nil {
		log.Err(err).Int64("follower_id", followerID).Int64("followee_id", followeeID).Msg("follow ended with error")
		return fmt.Errorf("follow ended with error: %w", err)
	}

	return nil
}

// Unfollow removes the follow edge. Unfollowing a user who was never
// followed is a no-op.
func (s *profileService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx)

	if followeeID == followerID {
		return ErrCannotFollowSelf
	}
	if _, err := s.userRepository.FindUserByID(ctx, followeeID); err != nil {
		return err
	}

	if err := s.followRepository.Unfollow(ctx, followerID, followeeID); err != nil {
		log.Err(err).Int64("follower_id", followerID).Int64("followee_id", followeeID).Msg("unfollow ended with error")
		return fmt.Errorf("unfollow ended with error: %w", err)
	}

	return nil
}

// Feed lists posts authored by the users the caller follows, newest first.
// A user following nobody gets an empty page, not an error.
func (s *profileService) Feed(ctx context.Context, userID int64, page models.PageParams) ([]models.Post, int64, error) {
	log := logger.FromContext(ctx)

	followeeIDs, err := s.followRepository.FolloweeIDs(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("resolving followees ended with error")
		return nil, 0, fmt.Errorf("resolving followees ended with error: %w", err)
	}
	if len(followeeIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	return s.postRepository.ListPosts(ctx, models.PostFilter{AuthorIDs: followeeIDs}, page.Normalize())
}
