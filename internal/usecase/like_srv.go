package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menurate/internal/data/entity"
	"menurate/internal/data/repository"
	"menurate/internal/dto/response"
	"menurate/pkg/metrics"

	"go.uber.org/zap"
)

type LikeService interface {
	// ToggleLike flips the actor's like on a review or comment and returns the
	// resulting count and state.
	ToggleLike(ctx context.Context, actorID int64, kind entity.LikeKind, targetID int64) (*response.LikeResponse, error)
}

type likeService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewLikeService(repo *repository.Repository, m *metrics.Metrics, log *zap.Logger) LikeService {
	return &likeService{
		repo:    repo,
		metrics: m,
		log:     log.With(zap.String("service", "like")),
	}
}

func counterFor(kind entity.LikeKind) entity.Counter {
	if kind == entity.LikeKindComment {
		return entity.CounterCommentLikes
	}
	return entity.CounterReviewLikes
}

func (s *likeService) ToggleLike(ctx context.Context, actorID int64, kind entity.LikeKind, targetID int64) (*response.LikeResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown like kind %q", ErrValidation, kind)
	}
	if actorID <= 0 || targetID <= 0 {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidID, kind, targetID)
	}

	start := time.Now()
	state, err := s.toggle(ctx, actorID, kind, targetID)

	// ON CONFLICT covers the like constraint, so a duplicate here means another
	// request won the insert. Report whatever it committed.
	if errors.Is(err, repository.ErrDuplicate) {
		s.log.Debug("Like insert lost a race, re-reading state",
			zap.String("kind", string(kind)),
			zap.Int64("target_id", targetID),
		)
		state, err = s.readState(ctx, actorID, kind, targetID)
	}

	s.metrics.RecordOperation("toggle_like", err, time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, repository.ErrUserMissing) {
			return nil, fmt.Errorf("%w: user %d", ErrUnknownActor, actorID)
		}
		if errors.Is(err, repository.ErrReferenceMissing) || errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %d", ErrTargetNotFound, kind, targetID)
		}
		s.log.Error("Failed to toggle like",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Int64("target_id", targetID),
			zap.Int64("user_id", actorID),
		)
		return nil, fmt.Errorf("toggle %s like: %w", kind, err)
	}

	s.metrics.RecordLikeToggle(string(kind), toggleResult(state))

	if state.Changed && state.OwnerID != actorID {
		delta := int64(1)
		if !state.Liked {
			delta = -1
		}
		s.adjustLikesReceived(ctx, state.OwnerID, delta)
	}

	s.log.Info("Like toggled",
		zap.String("kind", string(kind)),
		zap.Int64("target_id", targetID),
		zap.Int64("user_id", actorID),
		zap.Bool("liked", state.Liked),
		zap.Bool("changed", state.Changed),
		zap.Int64("like_count", state.LikeCount),
	)

	return &response.LikeResponse{
		LikeCount: state.LikeCount,
		Liked:     state.Liked,
	}, nil
}

// toggle performs check, conditional insert or delete, and the counter delta in
// one transaction. A zero-row insert or delete means a concurrent toggle already
// produced the requested state, so the counter is left alone.
func (s *likeService) toggle(ctx context.Context, actorID int64, kind entity.LikeKind, targetID int64) (entity.LikeState, error) {
	counter := counterFor(kind)
	var state entity.LikeState

	err := s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		exists, err := tx.Like.Exists(ctx, kind, actorID, targetID)
		if err != nil {
			return err
		}

		var changed bool
		if exists {
			changed, err = tx.Like.Delete(ctx, kind, actorID, targetID)
		} else {
			changed, err = tx.Like.Insert(ctx, kind, actorID, targetID)
		}
		if err != nil {
			return err
		}

		var count, ownerID int64
		switch {
		case changed && exists:
			count, ownerID, err = tx.Counter.Apply(ctx, counter, targetID, -1)
		case changed:
			count, ownerID, err = tx.Counter.Apply(ctx, counter, targetID, 1)
		default:
			count, ownerID, err = tx.Counter.Get(ctx, counter, targetID)
		}
		if err != nil {
			return err
		}

		state = entity.LikeState{
			LikeCount: count,
			Liked:     !exists,
			Changed:   changed,
			OwnerID:   ownerID,
		}
		return nil
	})

	return state, err
}

func (s *likeService) readState(ctx context.Context, actorID int64, kind entity.LikeKind, targetID int64) (entity.LikeState, error) {
	var state entity.LikeState

	err := s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		liked, err := tx.Like.Exists(ctx, kind, actorID, targetID)
		if err != nil {
			return err
		}
		count, ownerID, err := tx.Counter.Get(ctx, counterFor(kind), targetID)
		if err != nil {
			return err
		}
		state = entity.LikeState{LikeCount: count, Liked: liked, OwnerID: ownerID}
		return nil
	})

	return state, err
}

// adjustLikesReceived runs after commit. Failure never fails the toggle.
func (s *likeService) adjustLikesReceived(ctx context.Context, ownerID, delta int64) {
	if err := s.repo.User.AdjustLikesReceived(ctx, ownerID, delta); err != nil {
		s.metrics.RecordSideEffectError("likes_received")
		s.log.Warn("Failed to adjust likes received",
			zap.Error(err),
			zap.Int64("owner_id", ownerID),
			zap.Int64("delta", delta),
		)
	}
}

func toggleResult(state entity.LikeState) string {
	switch {
	case state.Changed && state.Liked:
		return metrics.ToggleLiked
	case state.Changed:
		return metrics.ToggleUnliked
	case state.Liked:
		return metrics.ToggleAlreadyLiked
	default:
		return metrics.ToggleAlreadyUnliked
	}
}
