package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kallejre/quick-gps-bookmark/internal/api/handlers/http/admin"
	"github.com/kallejre/quick-gps-bookmark/internal/api/handlers/http/points"
	"github.com/kallejre/quick-gps-bookmark/internal/api/handlers/http/system"
	"github.com/kallejre/quick-gps-bookmark/internal/config"
	"github.com/kallejre/quick-gps-bookmark/internal/middleware"
	"github.com/kallejre/quick-gps-bookmark/internal/render"
	"github.com/kallejre/quick-gps-bookmark/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, renderer *render.Renderer) *Server {
	pointsHandler := points.NewHandler(logger, svc.Ingestor, svc.PointQuerier, renderer)
	adminHandler := admin.NewHandler(logger, svc.Moderator, svc.StatsProvider)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, pointsHandler, adminHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, pointsHandler *points.Handler, adminHandler *admin.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// INGEST + READ
		api.Route("/points", func(pr chi.Router) {
			pr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			pr.Post("/", pointsHandler.PointsIngest)
			pr.Get("/latest", pointsHandler.PointsLatest)
		})

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.AdminStats)

			ar.Route("/points/{id}", func(rr chi.Router) {
				rr.Post("/hide", adminHandler.AdminPointHide)
				rr.Post("/unhide", adminHandler.AdminPointUnhide)
			})
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	// human-readable table, same data as /api/v1/points/latest
	r.Get("/latest", pointsHandler.PointsLatestHTML)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
