package usecase

import (
	"menurate/internal/data/repository"
	"menurate/pkg/metrics"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Like    LikeService
	Comment CommentService
	Review  ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{
		Like:    NewLikeService(repo, m, log),
		Comment: NewCommentService(repo, m, log),
		Review:  NewReviewService(repo, config, m, log),
	}
}
