package adaptor

import (
	"encoding/json"
	"net/http"

	"menurate/internal/dto/request"
	"menurate/internal/usecase"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// CreateComment handles POST /api/reviews/{reviewId}/comments (protected)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID, ok := pathID(w, r, "reviewId", "review")
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	req.Normalize()
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CreateComment(r.Context(), userID, reviewID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// ListComments handles GET /api/reviews/{reviewId}/comments (optional auth)
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathID(w, r, "reviewId", "review")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(r.Context(), reviewID, utils.GetViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(h.log, w, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// UpdateComment handles PUT /api/comments/{commentId} (protected)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := pathID(w, r, "commentId", "comment")
	if !ok {
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	req.Normalize()
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), userID, commentID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE /api/comments/{commentId} (protected)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := pathID(w, r, "commentId", "comment")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), userID, commentID); err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "Comment deleted", nil)
}
