package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/config"
	"github.com/watchlist-screener/internal/matcher"
	"github.com/watchlist-screener/internal/schema"
	"github.com/watchlist-screener/internal/web/handlers"
	"github.com/watchlist-screener/internal/web/middleware"
)

// Server is the HTTP surface of the screening service. The scoring engine
// itself knows nothing about HTTP; this layer only parses, dispatches and
// renders.
type Server struct {
	cfg        *config.Config
	log        *zap.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer wires routes and middleware around an assembled screener.
func NewServer(cfg *config.Config, schemas *schema.Registry, screener *matcher.Screener, log *zap.Logger) *Server {
	s := &Server{cfg: cfg, log: log}

	matchHandler := &handlers.MatchHandler{
		Screener: screener,
		Schemas:  schemas,
		Defaults: cfg.Scoring,
		Log:      log,
	}
	healthHandler := &handlers.HealthHandler{}

	s.router = mux.NewRouter()
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", healthHandler.Health).Methods(http.MethodGet)

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(middleware.APIKey(cfg.APIKey))
	api.HandleFunc("/match", matchHandler.Match).Methods(http.MethodPost)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.ListenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
