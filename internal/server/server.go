// Package server exposes the vault over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/agenthands/memoryvault/internal/config"
	"github.com/agenthands/memoryvault/internal/core"
)

type Server struct {
	Vault *core.Vault
	// BirthYear is used when a request does not carry one.
	BirthYear     int
	BackfillDelay time.Duration
	CORSOrigins   []string
	Logger        *slog.Logger

	mu   sync.Mutex
	rand *rand.Rand
}

func NewServer(v *core.Vault, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Vault:         v,
		BirthYear:     cfg.Backfill.BirthYear,
		BackfillDelay: cfg.Backfill.Delay.Std(),
		CORSOrigins:   cfg.Server.CORSOrigins,
		Logger:        logger,
		rand:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.Health)

	api := r.Group("/api")
	api.GET("/models", s.ListModels)
	api.POST("/generate", s.Generate)

	api.GET("/memories", s.ListMemories)
	api.POST("/memories", s.AddMemory)
	api.POST("/memories/search", s.Search)
	api.POST("/memories/backfill-years", s.BackfillYears)
	api.GET("/memories/:id", s.GetMemory)
	api.PATCH("/memories/:id", s.UpdateMemory)
	api.PATCH("/memories/:id/tags", s.UpdateTags)
	api.DELETE("/memories/:id", s.DeleteMemory)
	api.POST("/memories/:id/classify", s.ClassifyMemory)
	api.POST("/memories/:id/infer-year", s.InferMemoryYear)

	api.POST("/classify", s.Classify)
	api.POST("/infer-year", s.InferYear)
	api.GET("/timeline", s.Timeline)
	api.POST("/profile/parse", s.ParseProfile)

	api.GET("/themes", s.ListThemes)
	api.GET("/themes/:id", s.GetTheme)
	api.GET("/themes/:id/follow-up", s.FollowUp)

	return r
}

// Handler is the router wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(s.SetupRouter())
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
