package adaptor

import (
	"encoding/json"
	"net/http"

	"menurate/internal/dto/request"
	"menurate/internal/usecase"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// GetReview handles GET /api/reviews/{reviewId} (optional auth)
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathID(w, r, "reviewId", "review")
	if !ok {
		return
	}

	review, err := h.service.GetReview(r.Context(), reviewID, utils.GetViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(h.log, w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// GetMenuItemReviews handles GET /api/menu-items/{menuItemId}/reviews (optional auth)
func (h *ReviewHandler) GetMenuItemReviews(w http.ResponseWriter, r *http.Request) {
	menuItemID, ok := pathID(w, r, "menuItemId", "menu item")
	if !ok {
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reviews, err := h.service.GetMenuItemReviews(r.Context(), menuItemID, utils.GetViewerFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get menu item reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// DeleteReview handles DELETE /api/reviews/{reviewId} (protected)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID, ok := pathID(w, r, "reviewId", "review")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), userID, reviewID); err != nil {
		handleServiceError(h.log, w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
