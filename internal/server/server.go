// Package server exposes the prediction engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/mitigation"
	"github.com/urbanlens/envirocast/internal/predictor"
	"github.com/urbanlens/envirocast/internal/store"
	"github.com/urbanlens/envirocast/internal/uhi"
)

// Server wires the prediction engine, heat island analyzer, and store
// behind a chi router.
type Server struct {
	cfg      config.Config
	engine   *predictor.Engine
	analyzer *uhi.Analyzer
	plans    *mitigation.Builder
	store    store.Store
}

func New(cfg config.Config, st store.Store) *Server {
	return &Server{
		cfg:      cfg,
		engine:   predictor.NewEngine(cfg.Predictor),
		analyzer: uhi.NewAnalyzer(cfg.UHI, cfg.Predictor.PopulationDensityPerKm2),
		plans:    mitigation.NewBuilder(cfg.UHI),
		store:    st,
	}
}

// Router builds the HTTP routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimit(s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/predict", s.handlePredict)
		r.Post("/uhi", s.handleUHI)
		r.Post("/uhi/mitigation", s.handleMitigation)
		r.Post("/uhi/compare", s.handleCompare)
		r.Get("/strategies", s.handleStrategies)
		r.Get("/assessments", s.handleListRecords)
		r.Get("/assessments/{id}", s.handleGetRecord)
		r.Delete("/assessments/{id}", s.handleDeleteRecord)
	})

	return r
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.Int("port", s.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return eris.Wrap(err, "server: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	zap.L().Info("http server stopped")
	return nil
}
