package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the HTTP front of the prediction service.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds the gin router and wraps it in an http.Server
// listening on addr. Report files are served statically from reportsDir
// under the URL prefix the download endpoint hands out.
func NewServer(addr string, reportsDir string, handler *Handler, logger *zap.Logger) *Server {
	router := NewRouter(reportsDir, handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter wires the route groups. Split out of NewServer so tests can
// drive the router directly with httptest.
func NewRouter(reportsDir string, handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/health", handler.Health)
	router.Static("/static/reports", reportsDir)

	api := router.Group("/api")
	{
		api.POST("/predict", handler.Predict)
		api.POST("/download-report", handler.DownloadReport)
		api.GET("/logs", handler.Logs)
		api.GET("/model-info", handler.ModelInfo)
	}

	return router
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server stopped unexpectedly", zap.Error(err))
		}
	}()
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
