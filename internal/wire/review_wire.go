package wire

import (
	"net/http"

	"menurate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	requireAuth, optionalAuth func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		// GET /api/reviews/{reviewId} - review detail
		r.Get("/reviews/{reviewId}", reviewHandler.GetReview)

		// GET /api/menu-items/{menuItemId}/reviews - newest first, paginated
		r.Get("/menu-items/{menuItemId}/reviews", reviewHandler.GetMenuItemReviews)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		// POST /api/reviews - Create new review
		r.Post("/reviews", reviewHandler.CreateReview)

		// DELETE /api/reviews/{reviewId} - Delete review (owner only)
		r.Delete("/reviews/{reviewId}", reviewHandler.DeleteReview)
	})
}
