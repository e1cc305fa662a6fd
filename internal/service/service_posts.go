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

// postService is the concrete implementation of PostService. Reads are
// public; every mutation checks that the actor owns the post. Roles grant
// no extra rights here: an admin cannot edit someone else's post.
type postService struct {
	postRepository store.PostRepository

	logger *logger.Logger
}

func NewPostService(postRepository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		logger:         logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID int64, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	post.AuthorID = authorID
	if fieldErrs := validators.ValidateStruct(post); fieldErrs != nil {
		log.Error().Int64("author_id", authorID).Msg("invalid post data provided")
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	created, err := s.postRepository.CreatePost(ctx, post)
	if err != nil {
		log.Err(err).Int64("author_id", authorID).Msg("post creation ended with error")
		return models.Post{}, fmt.Errorf("post creation ended with error: %w", err)
	}

	// re-read to attach the author summary
	return s.postRepository.GetPost(ctx, created.PostID)
}

func (s *postService) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	return s.postRepository.GetPost(ctx, postID)
}

func (s *postService) ListPosts(ctx context.Context, filter models.PostFilter, page models.PageParams) ([]models.Post, int64, error) {
	return s.postRepository.ListPosts(ctx, filter, page.Normalize())
}

func (s *postService) UpdatePost(ctx context.Context, actorID, postID int64, update models.PostUpdate) (models.Post, error) {
	log := logger.FromContext(ctx)

	if fieldErrs := validators.ValidateStruct(update); fieldErrs != nil {
		log.Error().Int64("post_id", postID).Msg("invalid post update provided")
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	post, err := s.postRepository.GetPost(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if post.AuthorID != actorID {
		log.Warn().Int64("post_id", postID).Int64("actor_id", actorID).Msg("post update denied: not the author")
		return models.Post{}, ErrPermissionDenied
	}

	updated, err := s.postRepository.UpdatePost(ctx, postID, update)
	if err != nil {
		log.Err(err).Int64("post_id", postID).Msg("post update ended with error")
		return models.Post{}, fmt.Errorf("post update ended with error: %w", err)
	}

	return updated, nil
}

func (s *postService) DeletePost(ctx context.Context, actorID, postID int64) error {
	log := logger.FromContext(ctx)

	post, err := s.postRepository.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		log.Warn().Int64("post_id", postID).Int64("actor_id", actorID).Msg("post deletion denied: not the author")
		return ErrPermissionDenied
	}

	if err := s.postRepository.DeletePost(ctx, postID); err != nil {
		log.Err(err).Int64("post_id", postID).Msg("post deletion ended with error")
		return fmt.Errorf("post deletion ended with error: %w", err)
	}

	return nil
}
