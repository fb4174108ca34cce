package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zuxercoding99/social-media-api/internal/metrics"
)

const (
	metricsReadTimeout  = 15 * time.Second
	metricsWriteTimeout = 15 * time.Second
	metricsIdleTimeout  = 60 * time.Second
)

// MetricsServer serves the Prometheus scrape endpoint on its own
// listener, keeping /metrics off the public API port and outside the
// admission pipeline.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer builds the metrics listener. A nil provider yields a
// server with no /metrics route, which only happens in tests.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	return &MetricsServer{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  metricsReadTimeout,
			WriteTimeout: metricsWriteTimeout,
			IdleTimeout:  metricsIdleTimeout,
		},
		logger: logger,
	}
}

// GetHandler exposes the router for in-process tests.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks serving scrapes until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("starting metrics server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight scrapes and stops the listener.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
