package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"menurate/internal/data/entity"
	"menurate/internal/data/repository"
	"menurate/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	const (
		actor    = int64(3)
		reviewID = int64(20)
	)

	t.Run("Success - inserts, counts and trims", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		repos.comment.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Comment) bool {
			return c.UserID == actor && c.ReviewID == reviewID && c.Comment == "Great pick"
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Comment).ID = 55
		})
		repos.counter.On("Apply", mock.Anything, entity.CounterReviewComments, reviewID, int64(1)).Return(int64(3), int64(9), nil)
		repos.comment.On("FindByID", mock.Anything, int64(55)).Return(&entity.Comment{
			BaseNoDelete: entity.BaseNoDelete{ID: 55, CreatedAt: time.Now(), UpdatedAt: time.Now()},
			UserID:       actor,
			ReviewID:     reviewID,
			Comment:      "Great pick",
			Username:     "carol",
		}, nil)

		resp, err := svc.Comment.CreateComment(ctx, actor, reviewID, &request.CreateCommentRequest{Comment: "  Great pick \n"})

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.CommentCount)
		assert.Equal(t, int64(55), resp.Comment.ID)
		assert.Equal(t, "carol", resp.Comment.Username)
		assert.False(t, resp.Comment.LikedByViewer)
		repos.AssertExpectations(t)
	})

	t.Run("Blank text is rejected before any write", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		_, err := svc.Comment.CreateComment(ctx, actor, reviewID, &request.CreateCommentRequest{Comment: "   \t"})

		assert.ErrorIs(t, err, ErrValidation)
		repos.comment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Text over 500 characters is rejected", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		_, err := svc.Comment.CreateComment(ctx, actor, reviewID, &request.CreateCommentRequest{Comment: strings.Repeat("é", 501)})

		assert.ErrorIs(t, err, ErrValidation)
		repos.comment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Exactly 500 characters is accepted", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)
		text := strings.Repeat("é", 500)

		repos.comment.On("Create", mock.Anything, mock.Anything).Return(nil)
		repos.counter.On("Apply", mock.Anything, entity.CounterReviewComments, reviewID, int64(1)).Return(int64(1), int64(9), nil)
		repos.comment.On("FindByID", mock.Anything, int64(0)).Return(&entity.Comment{Comment: text}, nil)

		_, err := svc.Comment.CreateComment(ctx, actor, reviewID, &request.CreateCommentRequest{Comment: text})

		require.NoError(t, err)
	})

	t.Run("Missing review maps to review not found", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		fk := fmt.Errorf("create comment: %w", repository.ErrReferenceMissing)
		repos.comment.On("Create", mock.Anything, mock.Anything).Return(fk)

		_, err := svc.Comment.CreateComment(ctx, actor, 404, &request.CreateCommentRequest{Comment: "hello"})

		assert.ErrorIs(t, err, ErrReviewNotFound)
		assert.True(t, repos.rolledBack)
		repos.counter.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Removed actor is not reported as a missing review", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		fk := fmt.Errorf("create comment: %w", repository.ErrUserMissing)
		repos.comment.On("Create", mock.Anything, mock.Anything).Return(fk)

		_, err := svc.Comment.CreateComment(ctx, actor, reviewID, &request.CreateCommentRequest{Comment: "hello"})

		assert.ErrorIs(t, err, ErrUnknownActor)
		assert.NotErrorIs(t, err, ErrReviewNotFound)
		assert.True(t, repos.rolledBack)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()
	reviewID := int64(20)
	comments := []*entity.Comment{
		{BaseNoDelete: entity.BaseNoDelete{ID: 1}, ReviewID: reviewID, Comment: "first"},
		{BaseNoDelete: entity.BaseNoDelete{ID: 2}, ReviewID: reviewID, Comment: "second"},
		{BaseNoDelete: entity.BaseNoDelete{ID: 3}, ReviewID: reviewID, Comment: "third"},
	}

	t.Run("Anonymous viewer gets liked_by_viewer false without a lookup", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		repos.comment.On("FindByReviewID", mock.Anything, reviewID).Return(comments, nil)

		result, err := svc.Comment.ListComments(ctx, reviewID, nil)

		require.NoError(t, err)
		require.Len(t, result, 3)
		for _, c := range result {
			assert.False(t, c.LikedByViewer)
		}
		repos.like.AssertNotCalled(t, "LikedTargets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Viewer likes are loaded in one batch", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)
		viewer := int64(8)

		repos.comment.On("FindByReviewID", mock.Anything, reviewID).Return(comments, nil)
		repos.like.On("LikedTargets", mock.Anything, entity.LikeKindComment, viewer, []int64{1, 2, 3}).
			Return(map[int64]bool{2: true}, nil).Once()

		result, err := svc.Comment.ListComments(ctx, reviewID, &viewer)

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, "first", result[0].Comment)
		assert.False(t, result[0].LikedByViewer)
		assert.True(t, result[1].LikedByViewer)
		assert.False(t, result[2].LikedByViewer)
		repos.AssertExpectations(t)
	})

	t.Run("Empty review skips the like lookup", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)
		viewer := int64(8)

		repos.comment.On("FindByReviewID", mock.Anything, int64(21)).Return([]*entity.Comment{}, nil)

		result, err := svc.Comment.ListComments(ctx, 21, &viewer)

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NotNil(t, result)
		repos.like.AssertNotCalled(t, "LikedTargets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner edits text", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		repos.comment.On("UpdateOwned", mock.Anything, int64(5), int64(3), "edited").Return(&entity.Comment{
			BaseNoDelete: entity.BaseNoDelete{ID: 5},
			UserID:       3,
			Comment:      "edited",
			LikeCount:    2,
		}, nil)
		repos.like.On("Exists", mock.Anything, entity.LikeKindComment, int64(3), int64(5)).Return(true, nil)

		resp, err := svc.Comment.UpdateComment(ctx, 3, 5, &request.UpdateCommentRequest{Comment: " edited "})

		require.NoError(t, err)
		assert.Equal(t, "edited", resp.Comment)
		assert.Equal(t, int64(2), resp.LikeCount)
		assert.True(t, resp.LikedByViewer)
		repos.counter.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non-owner or missing gets comment not found", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		repos.comment.On("UpdateOwned", mock.Anything, int64(5), int64(4), "hijack").Return(nil, nil)

		_, err := svc.Comment.UpdateComment(ctx, 4, 5, &request.UpdateCommentRequest{Comment: "hijack"})

		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner delete decrements the review counter", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		repos.comment.On("DeleteOwned", mock.Anything, int64(5), int64(3)).Return(int64(20), nil)
		repos.counter.On("Apply", mock.Anything, entity.CounterReviewComments, int64(20), int64(-1)).Return(int64(0), int64(9), nil)

		err := svc.Comment.DeleteComment(ctx, 3, 5)

		require.NoError(t, err)
		assert.False(t, repos.rolledBack)
		repos.AssertExpectations(t)
	})

	t.Run("Missing or foreign comment leaves counters unchanged", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		notFound := fmt.Errorf("delete comment 5: %w", repository.ErrNotFound)
		repos.comment.On("DeleteOwned", mock.Anything, int64(5), int64(4)).Return(int64(0), notFound)

		err := svc.Comment.DeleteComment(ctx, 4, 5)

		assert.ErrorIs(t, err, ErrCommentNotFound)
		assert.True(t, repos.rolledBack)
		repos.counter.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid id", func(t *testing.T) {
		repos := newMockRepos()
		svc := newTestService(t, repos)

		err := svc.Comment.DeleteComment(ctx, 3, -1)

		assert.ErrorIs(t, err, ErrInvalidID)
	})
}
