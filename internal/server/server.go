// Package server exposes analyses over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"github.com/rs/cors"

	"MoonSentinel/internal/model"
)

// Runner runs one analysis. Implemented by *analysis.Analyzer.
type Runner interface {
	Run(ctx context.Context, period model.Period) (*model.AnalysisReport, error)
}

// Server wires the gin router behind a CORS handler.
type Server struct {
	runner        Runner
	defaultPeriod model.Period
	corsOrigins   []string
}

// New creates a Server.
func New(runner Runner, defaultPeriod model.Period, corsOrigins []string) *Server {
	return &Server{runner: runner, defaultPeriod: defaultPeriod, corsOrigins: corsOrigins}
}

// Handler returns the full HTTP handler.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(requestLogger(), errorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/periods", s.listPeriods)
		api.GET("/analysis", s.runAnalysis)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "NOT_FOUND", Message: "Not found"}})
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	}
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
