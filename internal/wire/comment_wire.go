package wire

import (
	"net/http"

	"menurate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	requireAuth, optionalAuth func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		// GET /api/reviews/{reviewId}/comments - oldest first, liked_by_viewer for signed-in viewers
		r.Get("/reviews/{reviewId}/comments", commentHandler.ListComments)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/reviews/{reviewId}/comments", commentHandler.CreateComment)

		// owner only
		r.Put("/comments/{commentId}", commentHandler.UpdateComment)
		r.Delete("/comments/{commentId}", commentHandler.DeleteComment)
	})
}
