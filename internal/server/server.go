// Package server exposes saved analysis results over a small read-only API
// for the rankings viewer.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/cascadia-snow/resortwatch/internal/results"
	"github.com/gin-gonic/gin"
)

// Server bundles the router and the results store.
type Server struct {
	store  *results.Store
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(store *results.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	server := &Server{store: store, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/api/rankings", s.handleRankings)
	s.engine.GET("/api/resorts/:key", s.handleResort)
}

func (s *Server) handleRankings(c *gin.Context) {
	doc, err := s.store.Document()
	if err != nil {
		s.documentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated_at": doc.UpdatedAt,
		"rankings":   doc.Rankings(),
	})
}

func (s *Server) handleResort(c *gin.Context) {
	key := c.Param("key")

	doc, err := s.store.Document()
	if err != nil {
		s.documentError(c, err)
		return
	}

	for _, resort := range doc.Resorts {
		if resort.ResortKey == key {
			c.JSON(http.StatusOK, gin.H{
				"updated_at": doc.UpdatedAt,
				"resort":     resort,
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "unknown resort: " + key})
}

func (s *Server) documentError(c *gin.Context, err error) {
	if errors.Is(err, os.ErrNotExist) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis results found, run `resortwatch analyze` first"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
