package service

import (
	"context"
	"fmt"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/store"
	"github.com/avdeenko/bookclub/internal/validators"
	"github.com/avdeenko/bookclub/models"
)

// commentService is the concrete implementation of CommentService.
// Mutations are owner-only, like posts.
type commentService struct {
	commentRepository store.CommentRepository
	postRepository    store.PostRepository

	logger *logger.Logger
}

func NewCommentService(commentRepository store.CommentRepository, postRepository store.PostRepository, logger *logger.Logger) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		postRepository:    postRepository,
		logger:            logger,
	}
}

func (s *commentService) CreateComment(ctx context.Context, authorID, postID int64, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	comment.AuthorID = authorID
	comment.PostID = postID
	if fieldErrs := validators.ValidateStruct(comment); fieldErrs != nil {
		log.Error().Int64("post_id", postID).Msg("invalid comment data provided")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	// surface a clean not-found before hitting the FK
	if _, err := s.postRepository.GetPost(ctx, postID); err != nil {
		return models.Comment{}, err
	}

	created, err := s.commentRepository.CreateComment(ctx, comment)
	if err != nil {
		log.Err(err).Int64("post_id", postID).Msg("comment creation ended with error")
		return models.Comment{}, fmt.Errorf("comment creation ended with error: %w", err)
	}

	return s.commentRepository.GetComment(ctx, created.CommentID)
}

func (s *commentService) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	return s.commentRepository.GetComment(ctx, commentID)
}

func (s *commentService) ListComments(ctx context.Context, postID int64, page models.PageParams) ([]models.Comment, int64, error) {
	if _, err := s.postRepository.GetPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.commentRepository.ListCommentsByPost(ctx, postID, page.Normalize())
}

func (s *commentService) UpdateComment(ctx context.Context, actorID, commentID int64, update models.CommentUpdate) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if fieldErrs := validators.ValidateStruct(update); fieldErrs != nil {
		log.Error().Int64("comment_id", commentID).Msg("invalid comment update provided")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, fieldErrs)
	}

	comment, err := s.commentRepository.GetComment(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if comment.AuthorID != actorID {
		log.Warn().Int64("comment_id", commentID).Int64("actor_id", actorID).Msg("comment update denied: not the author")
		return models.Comment{}, ErrPermissionDenied
	}

	updated, err := s.commentRepository.UpdateComment(ctx, commentID, update)
	if err != nil {
		log.Err(err).Int64("comment_id", commentID).Msg("comment update ended with error")
		return models.Comment{}, fmt.Errorf("comment update ended with error: %w", err)
	}

	return updated, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	log := logger.FromContext(ctx)

	comment, err := s.commentRepository.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		log.Warn().Int64("comment_id", commentID).Int64("actor_id", actorID).Msg("comment deletion denied: not the author")
		return ErrPermissionDenied
	}

	if err := s.commentRepository.DeleteComment(ctx, commentID); err != nil {
		log.Err(err).Int64("comment_id", commentID).Msg("comment deletion ended with error")
		return fmt.Errorf("comment deletion ended with error: %w", err)
	}

	return nil
}
