package adaptor

import (
	"errors"
	"net/http"

	"menurate/internal/usecase"
	"menurate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleServiceError maps usecase sentinels to HTTP responses. Anything
// unclassified is logged and hidden behind a generic 500.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrTargetNotFound),
		errors.Is(err, usecase.ErrReviewNotFound),
		errors.Is(err, usecase.ErrCommentNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, notFoundMessage(err))

	case errors.Is(err, usecase.ErrUnknownActor):
		log.Warn(operation+" failed - unknown user",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, usecase.ErrUnknownActor.Error())

	case errors.Is(err, usecase.ErrAlreadyReviewed):
		log.Warn(operation+" failed - already reviewed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, usecase.ErrAlreadyReviewed.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidReference):
		log.Warn(operation+" failed - invalid reference",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, usecase.ErrInvalidReference.Error(), nil)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidID):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrReviewNotFound):
		return usecase.ErrReviewNotFound.Error()
	case errors.Is(err, usecase.ErrCommentNotFound):
		return usecase.ErrCommentNotFound.Error()
	default:
		return usecase.ErrTargetNotFound.Error()
	}
}

// pathID reads a positive numeric chi URL parameter, answering 400 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	id, ok := utils.ParseID(chi.URLParam(r, name))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid "+label+" ID", nil)
		return 0, false
	}
	return id, true
}
