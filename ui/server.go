// Package ui serves the detection HTTP API and the HTMX preview fragments.
package ui

import (
	"context"
	stderrors "errors"
	"html/template"
	"net/http"
	"time"

	"structdetect/app"
	"structdetect/internal"
	"structdetect/internal/config"
	"structdetect/ui/middleware"
	"structdetect/ui/services"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the detection API
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	service    *app.DetectionService
	render     *services.RenderService
	templates  *template.Template
	logger     *internal.Logger

	uploadLimit int64
	bodyLimit   int64
	startedAt   time.Time
}

// NewServer creates a new web server instance with routes registered
func NewServer(service *app.DetectionService, cfg *config.Config, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:      gin.New(),
		service:     service,
		render:      services.NewRenderService(templates, logger),
		templates:   templates,
		logger:      logger,
		uploadLimit: cfg.Upload.MaxFileBytes,
		bodyLimit:   cfg.Upload.MaxFileBytes,
		startedAt:   time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.Use(middleware.BodyLimit(s.bodyLimit))
	{
		api.POST("/detect/check", s.handleCheck)
		api.POST("/detect", s.handleDetect)
		api.POST("/detect/batch", s.handleDetectBatch)
		api.POST("/detect/file", s.handleDetectFile)

		api.GET("/detections", s.handleHistory)
		api.GET("/detections/stats", s.handleHistoryStats)
		api.GET("/detections/:id", s.handleHistoryEntry)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("[Server] Starting detection API on http://%s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("[Server] Shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	})
}
