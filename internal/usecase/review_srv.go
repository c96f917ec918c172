package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"menurate/internal/data/entity"
	"menurate/internal/data/repository"
	"menurate/internal/dto/request"
	"menurate/internal/dto/response"
	"menurate/pkg/metrics"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, actorID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReview(ctx context.Context, reviewID int64, viewer *int64) (*response.ReviewResponse, error)
	GetMenuItemReviews(ctx context.Context, menuItemID int64, viewer *int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// DeleteReview only removes the actor's own review. Missing and foreign
	// reviews are reported the same way.
	DeleteReview(ctx context.Context, actorID, reviewID int64) error
}

type reviewService struct {
	repo         *repository.Repository
	metrics      *metrics.Metrics
	reviewPoints int64
	log          *zap.Logger
}

func NewReviewService(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:         repo,
		metrics:      m,
		reviewPoints: int64(config.Gamification.ReviewPoints),
		log:          log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, actorID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if actorID <= 0 {
		return nil, fmt.Errorf("%w: user %d", ErrInvalidID, actorID)
	}

	// Validate request
	req.Comment = strings.TrimSpace(req.Comment)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review := &entity.Review{
		UserID:     actorID,
		MenuItemID: req.MenuItemID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Photos:     req.Photos,
	}

	start := time.Now()
	err := s.repo.Review.Create(ctx, review)
	s.metrics.RecordOperation("create_review", err, time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: menu item %d", ErrAlreadyReviewed, req.MenuItemID)
		case errors.Is(err, repository.ErrReferenceMissing):
			return nil, fmt.Errorf("%w: menu item %d", ErrInvalidReference, req.MenuItemID)
		case errors.Is(err, repository.ErrUserMissing):
			return nil, fmt.Errorf("%w: user %d", ErrUnknownActor, actorID)
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", actorID),
			zap.Int64("menu_item_id", req.MenuItemID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Credit points (best effort)
	if err := s.repo.User.Credit(ctx, actorID, s.reviewPoints); err != nil {
		s.metrics.RecordSideEffectError("credit_points")
		s.log.Warn("Failed to credit review points",
			zap.Error(err),
			zap.Int64("user_id", actorID),
			zap.Int64("points", s.reviewPoints),
		)
		// Continue anyway
	}

	// Get author info for response
	full, err := s.repo.Review.FindByID(ctx, review.ID)
	if err != nil {
		s.log.Warn("Failed to reload created review", zap.Error(err), zap.Int64("review_id", review.ID))
	}
	if full == nil {
		full = review
		if user, _ := s.repo.User.FindByID(ctx, actorID); user != nil {
			full.Username = user.Username
			full.ProfileImage = user.ProfileImage
		}
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", actorID),
		zap.Int64("menu_item_id", req.MenuItemID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(full, false)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID int64, viewer *int64) (*response.ReviewResponse, error) {
	if reviewID <= 0 {
		return nil, fmt.Errorf("%w: review %d", ErrInvalidID, reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review %d", ErrReviewNotFound, reviewID)
	}

	liked := false
	if viewer != nil {
		liked, err = s.repo.Like.Exists(ctx, entity.LikeKindReview, *viewer, reviewID)
		if err != nil {
			return nil, fmt.Errorf("load viewer review like: %w", err)
		}
	}

	resp := response.ReviewToResponse(review, liked)
	return &resp, nil
}

func (s *reviewService) GetMenuItemReviews(ctx context.Context, menuItemID int64, viewer *int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if menuItemID <= 0 {
		return nil, fmt.Errorf("%w: menu item %d", ErrInvalidID, menuItemID)
	}

	limit := req.Limit()
	offset := req.Offset()

	// Get reviews
	reviews, err := s.repo.Review.FindByMenuItemID(ctx, menuItemID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get menu item reviews",
			zap.Error(err),
			zap.Int64("menu_item_id", menuItemID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get menu item reviews: %w", err)
	}

	// Get total count
	total, err := s.repo.Review.CountByMenuItemID(ctx, menuItemID)
	if err != nil {
		s.log.Error("Failed to count menu item reviews", zap.Error(err))
		return nil, fmt.Errorf("count menu item reviews: %w", err)
	}

	liked := map[int64]bool{}
	if viewer != nil && len(reviews) > 0 {
		ids := make([]int64, len(reviews))
		for i, review := range reviews {
			ids[i] = review.ID
		}
		liked, err = s.repo.Like.LikedTargets(ctx, entity.LikeKindReview, *viewer, ids)
		if err != nil {
			return nil, fmt.Errorf("load viewer review likes: %w", err)
		}
	}

	// Convert to response
	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, liked[review.ID])
	}

	s.log.Debug("Menu item reviews retrieved",
		zap.Int64("menu_item_id", menuItemID),
		zap.Int("count", len(reviews)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(reviewResponses, req.Page, limit, total), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actorID, reviewID int64) error {
	if actorID <= 0 || reviewID <= 0 {
		return fmt.Errorf("%w: review %d", ErrInvalidID, reviewID)
	}

	start := time.Now()
	deleted, err := s.repo.Review.DeleteOwned(ctx, reviewID, actorID)
	s.metrics.RecordOperation("delete_review", err, time.Since(start).Seconds())

	if err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", actorID),
		)
		return fmt.Errorf("delete review: %w", err)
	}
	if !deleted {
		s.log.Warn("Delete review matched no row",
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", actorID),
		)
		return fmt.Errorf("%w: review %d", ErrReviewNotFound, reviewID)
	}

	s.log.Info("Review deleted",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", actorID),
	)

	return nil
}
