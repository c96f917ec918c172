package adaptor

import (
	"net/http"

	"menurate/internal/data/entity"
	"menurate/internal/usecase"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type LikeHandler struct {
	service usecase.LikeService
	log     *zap.Logger
}

func NewLikeHandler(service usecase.LikeService, log *zap.Logger) *LikeHandler {
	return &LikeHandler{
		service: service,
		log:     log.With(zap.String("handler", "like")),
	}
}

// ToggleReviewLike handles POST /api/reviews/{reviewId}/like (protected)
func (h *LikeHandler) ToggleReviewLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, entity.LikeKindReview, "reviewId")
}

// ToggleCommentLike handles POST /api/comments/{commentId}/like (protected)
func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, entity.LikeKindComment, "commentId")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind entity.LikeKind, param string) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	targetID, ok := pathID(w, r, param, string(kind))
	if !ok {
		return
	}

	result, err := h.service.ToggleLike(r.Context(), userID, kind, targetID)
	if err != nil {
		handleServiceError(h.log, w, err, "toggle "+string(kind)+" like")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
