package usecase

import (
	"context"
	"testing"

	"menurate/internal/data/entity"
	"menurate/internal/data/repository"
	"menurate/pkg/metrics"
	"menurate/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Credit(ctx context.Context, userID, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustLikesReceived(ctx context.Context, userID, delta int64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*MockReviewRepository)(nil)

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByMenuItemID(ctx context.Context, menuItemID int64, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(ctx, menuItemID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByMenuItemID(ctx context.Context, menuItemID int64) (int64, error) {
	args := m.Called(ctx, menuItemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByReviewID(ctx context.Context, reviewID int64) ([]*entity.Comment, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateOwned(ctx context.Context, id, userID int64, text string) (*entity.Comment, error) {
	args := m.Called(ctx, id, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) DeleteOwned(ctx context.Context, id, userID int64) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLikeRepository is a mock implementation of repository.LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

var _ repository.LikeRepository = (*MockLikeRepository)(nil)

func (m *MockLikeRepository) Exists(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error) {
	args := m.Called(ctx, kind, userID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Insert(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error) {
	args := m.Called(ctx, kind, userID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Delete(ctx context.Context, kind entity.LikeKind, userID, targetID int64) (bool, error) {
	args := m.Called(ctx, kind, userID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedTargets(ctx context.Context, kind entity.LikeKind, userID int64, targetIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, kind, userID, targetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

// MockCounterRepository is a mock implementation of repository.CounterRepository
type MockCounterRepository struct {
	mock.Mock
}

var _ repository.CounterRepository = (*MockCounterRepository)(nil)

func (m *MockCounterRepository) Apply(ctx context.Context, counter entity.Counter, id, delta int64) (int64, int64, error) {
	args := m.Called(ctx, counter, id, delta)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockCounterRepository) Get(ctx context.Context, counter entity.Counter, id int64) (int64, int64, error) {
	args := m.Called(ctx, counter, id)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockCounterRepository) FindDrift(ctx context.Context) ([]entity.CounterDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CounterDrift), args.Error(1)
}

// inlineTx runs the callback on the mocked repository. It records whether a
// callback error would have rolled the transaction back.
type inlineTx struct {
	repo       *repository.Repository
	rolledBack *bool
}

func (t inlineTx) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	err := fn(t.repo)
	if err != nil && t.rolledBack != nil {
		*t.rolledBack = true
	}
	return err
}

type mockRepos struct {
	user    *MockUserRepository
	review  *MockReviewRepository
	comment *MockCommentRepository
	like    *MockLikeRepository
	counter *MockCounterRepository

	rolledBack bool
	repo       *repository.Repository
}

func newMockRepos() *mockRepos {
	m := &mockRepos{
		user:    new(MockUserRepository),
		review:  new(MockReviewRepository),
		comment: new(MockCommentRepository),
		like:    new(MockLikeRepository),
		counter: new(MockCounterRepository),
	}
	m.repo = &repository.Repository{
		User:    m.user,
		Review:  m.review,
		Comment: m.comment,
		Like:    m.like,
		Counter: m.counter,
	}
	m.repo.Tx = inlineTx{repo: m.repo, rolledBack: &m.rolledBack}
	return m
}

func (m *mockRepos) AssertExpectations(t *testing.T) {
	m.user.AssertExpectations(t)
	m.review.AssertExpectations(t)
	m.comment.AssertExpectations(t)
	m.like.AssertExpectations(t)
	m.counter.AssertExpectations(t)
}

func newTestMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func testConfig() *utils.Config {
	return &utils.Config{
		Gamification: utils.GamificationConfig{ReviewPoints: 10},
	}
}

func newTestService(t *testing.T, repos *mockRepos) *Service {
	return NewService(repos.repo, testConfig(), newTestMetrics(t), zap.NewNop())
}
