// Package http provides the HTTP adapter for the application layer.
// This is a thin translation layer: it parses requests, resolves the acting
// user from headers set by the auth middleware, and maps service error kinds
// to status codes deterministically.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexserve/backoffice/internal/application/service"
	"github.com/lexserve/backoffice/internal/export"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config       ServerConfig
	httpServer   *http.Server
	router       *gin.Engine
	settlement   service.SettlementService
	compensation service.CompensationService
	reports      service.ReportService
	exporter     *export.LedgerExporter
	logger       Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	settlement service.SettlementService,
	compensation service.CompensationService,
	reports service.ReportService,
	exporter *export.LedgerExporter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:       config,
		router:       gin.New(),
		settlement:   settlement,
		compensation: compensation,
		reports:      reports,
		exporter:     exporter,
		logger:       logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.settlement, s.compensation, s.reports, s.exporter, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api/v1")
	{
		api.POST("/service-requests/:id/approve", handlers.ApproveServiceRequest)
		api.POST("/service-requests/:id/reject", handlers.RejectServiceRequest)

		api.POST("/individual-requests/:id/approve", handlers.ApproveIndividualRequest)
		api.POST("/individual-requests/:id/reject", handlers.RejectIndividualRequest)

		api.POST("/financial-aid/:id/approve", handlers.ApproveFinancialAid)
		api.POST("/financial-aid/:id/reject", handlers.RejectFinancialAid)
		api.POST("/financial-aid/:id/request-info", handlers.RequestMoreInfo)
		api.PUT("/financial-aid/:id/status", handlers.OverrideAidStatus)

		api.GET("/reports/dashboard", handlers.DashboardStats)
		api.GET("/reports/financial-aid/queue", handlers.AidQueue)

		api.GET("/lawyers/ledger", handlers.LawyerLedger)
		api.GET("/lawyers/ledger/export", handlers.ExportLedger)
		api.POST("/lawyers/:id/pay", handlers.PayLawyer)
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}
