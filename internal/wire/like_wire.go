package wire

import (
	"net/http"

	"menurate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLike(r chi.Router, likeHandler *adaptor.LikeHandler, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		// POST /api/reviews/{reviewId}/like - toggle like on a review
		r.Post("/reviews/{reviewId}/like", likeHandler.ToggleReviewLike)

		// POST /api/comments/{commentId}/like - toggle like on a comment
		r.Post("/comments/{commentId}/like", likeHandler.ToggleCommentLike)
	})
}
