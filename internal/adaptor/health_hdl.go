package adaptor

import (
	"context"
	"net/http"
	"time"

	"menurate/pkg/database"
	"menurate/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHealthHandler(db database.PgxIface, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		utils.ResponseUnavailable(w, "database unavailable")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
