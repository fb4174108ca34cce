// Package http provides the HTTP server and the request pipeline.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	authHTTP "github.com/zuxercoding99/social-media-api/internal/auth/http"
	authService "github.com/zuxercoding99/social-media-api/internal/auth/service"
	"github.com/zuxercoding99/social-media-api/internal/config"
	"github.com/zuxercoding99/social-media-api/internal/metrics"
	"github.com/zuxercoding99/social-media-api/internal/ratelimit"
	userHTTP "github.com/zuxercoding99/social-media-api/internal/user/http"
)

// Server represents the API HTTP server. The router is assembled lazily on
// Start so tests can install a custom router first.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	db     *sql.DB
	config *config.Config

	authHandler  *authHTTP.AuthHandler
	userHandler  *userHTTP.UserHandler
	tokenService authService.AccessTokenService

	admissionStore    *ratelimit.Store
	classifier        *ratelimit.Classifier
	admissionRecorder ratelimit.DecisionRecorder

	metricsProvider *metrics.Provider
}

// NewServer creates a new HTTP server with all pipeline dependencies.
// Handler and pipeline dependencies may be nil; the corresponding routes
// and middleware stages are then skipped, which keeps partial setups
// usable in tests.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	userHandler *userHTTP.UserHandler,
	tokenService authService.AccessTokenService,
	admissionStore *ratelimit.Store,
	classifier *ratelimit.Classifier,
	admissionRecorder ratelimit.DecisionRecorder,
	metricsProvider *metrics.Provider,
) *Server {
	return &Server{
		logger:            logger,
		db:                db,
		config:            cfg,
		authHandler:       authHandler,
		userHandler:       userHandler,
		tokenService:      tokenService,
		admissionStore:    admissionStore,
		classifier:        classifier,
		admissionRecorder: admissionRecorder,
		metricsProvider:   metricsProvider,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the request pipeline. Stage order is significant:
// request id first so every later stage can correlate, then CORS, then
// admission control so throttled requests never pay the cost of the
// stages behind it, then the error boundary and logging, and
// authentication last before routing.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()

	// Trust no proxies by default so ClientIP (the bucket key) cannot be
	// spoofed via X-Forwarded-For. A trusted platform header opts back in.
	_ = router.SetTrustedProxies(nil)
	if s.config.TrustedProxyHeader != "" {
		router.TrustedPlatform = s.config.TrustedProxyHeader
	}

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))

	if corsMiddleware := createCORSMiddleware(s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.config.RateLimitEnabled && s.admissionStore != nil && s.classifier != nil {
		router.Use(ratelimit.Middleware(
			s.admissionStore,
			s.classifier,
			s.config.RateLimitFailOpen,
			s.admissionRecorder,
			s.logger,
		))
	}

	router.Use(RecoveryMiddleware(s.logger))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metricsProvider.MeterProvider(), s.config.MetricsNamespace))
	}

	if s.tokenService != nil {
		router.Use(authHTTP.AuthenticationMiddleware(s.tokenService, s.logger))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if s.authHandler != nil {
		authGroup := router.Group("/api/v1/auth")
		authGroup.POST("/register", s.authHandler.RegisterHandler)
		authGroup.POST("/login", s.authHandler.LoginHandler)
		authGroup.POST("/oauth/google", s.authHandler.OAuthGoogleHandler)
		authGroup.POST("/refresh", s.authHandler.RefreshHandler)
		authGroup.POST("/logout", s.authHandler.LogoutHandler)
	}

	if s.userHandler != nil {
		userGroup := router.Group("/api/v1/users")
		userGroup.GET("/me", authHTTP.RequireAuthenticated(s.logger), s.userHandler.MeHandler)

		adminGroup := router.Group("/admin", authHTTP.RequireRole(authDomain.RoleAdmin, s.logger))
		adminGroup.GET("/users/:id", s.userHandler.AdminGetUserHandler)
		adminGroup.PATCH("/users/:id/enabled", s.userHandler.AdminSetEnabledHandler)
	}

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic,
// checking each dependency individually.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the router, assembling it on first use. Used by tests
// that mount the server inside an httptest.Server.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		s.router = s.SetupRouter()
	}
	return s.router
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.GetHandler()

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
