// Package api exposes the questionnaire engine over HTTP. The transport layer
// carries no business rules: handlers translate JSON payloads to manager and
// bank calls and map the error taxonomy onto status codes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/questionbank"
	"github.com/genetic-risk-server/internal/session"
)

// Server is the HTTP API server.
type Server struct {
	logger   *logrus.Logger
	cfg      *domain.Config
	manager  *session.Manager
	bank     *questionbank.Bank
	router   *gin.Engine
	srv      *http.Server
	limiters *clientLimiters
}

// NewServer wires the router and middleware.
func NewServer(cfg *domain.Config, logger *logrus.Logger, manager *session.Manager, bank *questionbank.Bank) *Server {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		logger:  logger,
		cfg:     cfg,
		manager: manager,
		bank:    bank,
	}
	if cfg.RateLimit.Enabled {
		s.limiters = newClientLimiters(cfg.RateLimit)
	}

	s.router = gin.New()
	s.router.Use(s.loggingMiddleware())
	s.router.Use(gin.Recovery())
	s.router.Use(s.corsMiddleware())
	s.router.Use(s.requestIDMiddleware())
	if s.limiters != nil {
		s.router.Use(s.rateLimitMiddleware())
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", s.handleCreateSession)
			sessions.GET("/:id", s.handleGetSession)
			sessions.GET("/:id/next", s.handleNextQuestion)
			sessions.POST("/:id/responses", s.handleRecordResponse)
			sessions.POST("/:id/pause", s.handlePause)
			sessions.POST("/:id/resume", s.handleResume)
			sessions.GET("/:id/progress", s.handleProgress)
			sessions.GET("/:id/risks", s.handleInterimRisks)
			sessions.GET("/:id/results", s.handleResults)
		}

		v1.GET("/questions", s.handleBrowseQuestions)
		v1.GET("/questions/:id", s.handleGetQuestion)
		v1.GET("/bank/validate", s.handleValidateBank)

		v1.POST("/recommendations", s.handleRecommendVariants)
	}
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		}).Info("Request handled")
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiters.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "too many requests",
				},
			})
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
