package wire

import (
	"menurate/internal/adaptor"
	"menurate/internal/data/repository"
	"menurate/internal/usecase"
	"menurate/pkg/database"
	"menurate/pkg/metrics"
	"menurate/pkg/middleware"
	"menurate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of an open store handle
func Wiring(db database.PgxIface, config *utils.Config, logger *zap.Logger, m *metrics.Metrics) (*App, error) {
	verifier, err := middleware.NewTokenVerifier(config.JWT)
	if err != nil {
		return nil, err
	}

	repo := repository.NewRepository(db, logger)

	service := usecase.NewService(repo, config, m, logger)
	handler := adaptor.NewHandler(service, db, logger)

	router := setupRouter(handler, verifier, config, logger, m)

	return &App{
		Router: router,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	verifier *middleware.TokenVerifier,
	config *utils.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	requireAuth := middleware.Auth(verifier, logger)
	optionalAuth := middleware.OptionalAuth(verifier, logger)

	r.Route("/api", func(r chi.Router) {
		wireLike(r, handler.Like, requireAuth)
		wireComment(r, handler.Comment, requireAuth, optionalAuth)
		wireReview(r, handler.Review, requireAuth, optionalAuth)
	})

	r.Get("/health", handler.Health.Health)
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))

	return r
}
