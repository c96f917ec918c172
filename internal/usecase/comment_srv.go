package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menurate/internal/data/entity"
	"menurate/internal/data/repository"
	"menurate/internal/dto/request"
	"menurate/internal/dto/response"
	"menurate/pkg/metrics"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type CommentService interface {
	CreateComment(ctx context.Context, actorID, reviewID int64, req *request.CreateCommentRequest) (*response.CreateCommentResponse, error)
	// ListComments returns comments oldest first. viewer may be nil.
	ListComments(ctx context.Context, reviewID int64, viewer *int64) ([]response.CommentResponse, error)
	UpdateComment(ctx context.Context, actorID, commentID int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, actorID, commentID int64) error
}

type commentService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewCommentService(repo *repository.Repository, m *metrics.Metrics, log *zap.Logger) CommentService {
	return &commentService{
		repo:    repo,
		metrics: m,
		log:     log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) CreateComment(ctx context.Context, actorID, reviewID int64, req *request.CreateCommentRequest) (*response.CreateCommentResponse, error) {
	if actorID <= 0 || reviewID <= 0 {
		return nil, fmt.Errorf("%w: review %d", ErrInvalidID, reviewID)
	}

	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	start := time.Now()
	var (
		created      *entity.Comment
		commentCount int64
	)

	err := s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		comment := &entity.Comment{
			UserID:   actorID,
			ReviewID: reviewID,
			Comment:  req.Comment,
		}
		if err := tx.Comment.Create(ctx, comment); err != nil {
			return err
		}

		count, _, err := tx.Counter.Apply(ctx, entity.CounterReviewComments, reviewID, 1)
		if err != nil {
			return err
		}
		commentCount = count

		// re-read for the author display fields
		created, err = tx.Comment.FindByID(ctx, comment.ID)
		if err != nil {
			return err
		}
		if created == nil {
			return fmt.Errorf("comment %d vanished inside its own transaction", comment.ID)
		}
		return nil
	})

	s.metrics.RecordOperation("create_comment", err, time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, repository.ErrUserMissing) {
			return nil, fmt.Errorf("%w: user %d", ErrUnknownActor, actorID)
		}
		if errors.Is(err, repository.ErrReferenceMissing) || errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrReviewNotFound, reviewID)
		}
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", actorID),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", created.ID),
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", actorID),
		zap.Int64("comment_count", commentCount),
	)

	return &response.CreateCommentResponse{
		Comment:      response.CommentToResponse(created, false),
		CommentCount: commentCount,
	}, nil
}

func (s *commentService) ListComments(ctx context.Context, reviewID int64, viewer *int64) ([]response.CommentResponse, error) {
	if reviewID <= 0 {
		return nil, fmt.Errorf("%w: review %d", ErrInvalidID, reviewID)
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to list comments", zap.Error(err), zap.Int64("review_id", reviewID))
		return nil, fmt.Errorf("list comments: %w", err)
	}

	liked := map[int64]bool{}
	if viewer != nil && len(comments) > 0 {
		ids := make([]int64, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}

		liked, err = s.repo.Like.LikedTargets(ctx, entity.LikeKindComment, *viewer, ids)
		if err != nil {
			s.log.Error("Failed to load viewer likes",
				zap.Error(err),
				zap.Int64("review_id", reviewID),
				zap.Int64("viewer_id", *viewer),
			)
			return nil, fmt.Errorf("load viewer comment likes: %w", err)
		}
	}

	result := make([]response.CommentResponse, len(comments))
	for i, c := range comments {
		result[i] = response.CommentToResponse(c, liked[c.ID])
	}

	s.log.Debug("Comments listed",
		zap.Int64("review_id", reviewID),
		zap.Int("count", len(result)),
	)

	return result, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actorID, commentID int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if actorID <= 0 || commentID <= 0 {
		return nil, fmt.Errorf("%w: comment %d", ErrInvalidID, commentID)
	}

	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	start := time.Now()
	updated, err := s.repo.Comment.UpdateOwned(ctx, commentID, actorID, req.Comment)
	s.metrics.RecordOperation("update_comment", err, time.Since(start).Seconds())
	if err != nil {
		s.log.Error("Failed to update comment",
			zap.Error(err),
			zap.Int64("comment_id", commentID),
			zap.Int64("user_id", actorID),
		)
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: comment %d", ErrCommentNotFound, commentID)
	}

	liked, err := s.repo.Like.Exists(ctx, entity.LikeKindComment, actorID, commentID)
	if err != nil {
		s.log.Warn("Failed to load viewer like for updated comment", zap.Error(err))
		liked = false
	}

	s.log.Info("Comment updated",
		zap.Int64("comment_id", commentID),
		zap.Int64("user_id", actorID),
	)

	resp := response.CommentToResponse(updated, liked)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	if actorID <= 0 || commentID <= 0 {
		return fmt.Errorf("%w: comment %d", ErrInvalidID, commentID)
	}

	start := time.Now()
	var reviewID, commentCount int64

	err := s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		id, err := tx.Comment.DeleteOwned(ctx, commentID, actorID)
		if err != nil {
			return err
		}
		reviewID = id

		commentCount, _, err = tx.Counter.Apply(ctx, entity.CounterReviewComments, reviewID, -1)
		return err
	})

	s.metrics.RecordOperation("delete_comment", err, time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: comment %d", ErrCommentNotFound, commentID)
		}
		s.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.Int64("comment_id", commentID),
			zap.Int64("user_id", actorID),
		)
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted",
		zap.Int64("comment_id", commentID),
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", actorID),
		zap.Int64("comment_count", commentCount),
	)

	return nil
}
