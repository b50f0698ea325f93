// Package server exposes the planning engine over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies; profiles are small
const maxBodyBytes = 1 << 20

// apiPrefix is the versioned root of every planning endpoint
const apiPrefix = "/api/v1"

// Server routes planning requests to a shared engine
type Server struct {
	engine  *calculation.PlanningEngine
	parser  *config.InputParser
	logger  *logrus.Logger
	metrics *Metrics
	router  *mux.Router
}

// New wires the routes. A nil engine uses default assumptions, a nil logger
// discards output and nil metrics get a fresh registry with runtime collectors.
func New(engine *calculation.PlanningEngine, logger *logrus.Logger, metrics *Metrics) *Server {
	if engine == nil {
		engine = calculation.NewPlanningEngine()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if metrics == nil {
		metrics = NewMetrics(true)
	}

	s := &Server{
		engine:  engine,
		parser:  config.NewInputParser(),
		logger:  logger,
		metrics: metrics,
		router:  mux.NewRouter(),
	}

	// Full paths on the root router so a wrong method yields 405 rather than 404
	s.router.HandleFunc(apiPrefix+"/plan", s.handlePlan).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/goals/project", s.handleProjectGoal).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/goals/suggest", s.handleSuggest).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/allocation", s.handleAllocation).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	s.router.Use(requestIDMiddleware, s.instrumentMiddleware)
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then drains connections
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
