package adaptor

import (
	"context"

	"menurate/internal/data/entity"
	"menurate/internal/dto/request"
	"menurate/internal/dto/response"
	"menurate/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockLikeService struct {
	mock.Mock
}

var _ usecase.LikeService = (*MockLikeService)(nil)

func (m *MockLikeService) ToggleLike(ctx context.Context, actorID int64, kind entity.LikeKind, targetID int64) (*response.LikeResponse, error) {
	args := m.Called(ctx, actorID, kind, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.LikeResponse), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

var _ usecase.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) CreateComment(ctx context.Context, actorID, reviewID int64, req *request.CreateCommentRequest) (*response.CreateCommentResponse, error) {
	args := m.Called(ctx, actorID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CreateCommentResponse), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, reviewID int64, viewer *int64) ([]response.CommentResponse, error) {
	args := m.Called(ctx, reviewID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.CommentResponse), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, actorID, commentID int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	args := m.Called(ctx, actorID, commentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CommentResponse), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	args := m.Called(ctx, actorID, commentID)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

var _ usecase.ReviewService = (*MockReviewService)(nil)

func (m *MockReviewService) CreateReview(ctx context.Context, actorID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, reviewID int64, viewer *int64) (*response.ReviewResponse, error) {
	args := m.Called(ctx, reviewID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) GetMenuItemReviews(ctx context.Context, menuItemID int64, viewer *int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	args := m.Called(ctx, menuItemID, viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, actorID, reviewID int64) error {
	args := m.Called(ctx, actorID, reviewID)
	return args.Error(0)
}
