package adaptor

import (
	"menurate/internal/usecase"
	"menurate/pkg/database"

	"go.uber.org/zap"
)

type Handler struct {
	Like    *LikeHandler
	Comment *CommentHandler
	Review  *ReviewHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, db database.PgxIface, log *zap.Logger) *Handler {
	return &Handler{
		Like:    NewLikeHandler(service.Like, log),
		Comment: NewCommentHandler(service.Comment, log),
		Review:  NewReviewHandler(service.Review, log),
		Health:  NewHealthHandler(db, log),
	}
}
