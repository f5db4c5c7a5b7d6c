// Package server wires the HTTP surface: routes, middleware and static
// serving of uploaded files.
package server

import (
	"context"
	"net/http"
	"time"

	"hirehub/internal/config"
	"hirehub/internal/server/handlers"
	"hirehub/internal/server/middleware"
	"hirehub/internal/storage/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

func New(
	cfg *config.Config,
	authSvc handlers.AuthService,
	jobSvc handlers.JobService,
	sessions middleware.SessionResolver,
	cache *redis.Cache,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	if cache != nil {
		engine.Use(middleware.RateLimit(cache, cfg.RateLimitPerMinute, logger))
	}

	engine.Use(middleware.Session(sessions, logger))

	engine.MaxMultipartMemory = cfg.MaxUploadSize

	h := handlers.New(authSvc, jobSvc, cfg.MaxUploadSize, logger)
	registerRoutes(engine, h, cfg.UploadDir)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func registerRoutes(engine *gin.Engine, h *handlers.Handler, uploadDir string) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// uploaded blobs are public by URL
	engine.Static("/uploads", uploadDir)

	api := engine.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", h.SignUp)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/logout", middleware.RequireAuth(), h.Logout)
			authGroup.GET("/me", middleware.RequireAuth(), h.Me)
		}

		api.POST("/profile/role", middleware.RequireAuth(), h.SetRole)

		api.GET("/jobs", h.ListJobs)
		api.GET("/jobs/:id", h.GetJob)
		api.POST("/jobs", middleware.RequireRecruiter(), h.PostJob)
		api.PATCH("/jobs/:id/status", middleware.RequireRecruiter(), h.SetHiringStatus)
		api.DELETE("/jobs/:id", middleware.RequireRecruiter(), h.DeleteJob)
		api.GET("/jobs/:id/applications", middleware.RequireRecruiter(), h.Applications)
		api.PATCH("/applications/:id/status", middleware.RequireRecruiter(), h.SetApplicationStatus)

		api.POST("/jobs/:id/apply", middleware.RequireCandidate(), h.Apply)
		api.POST("/jobs/:id/save", middleware.RequireCandidate(), h.SaveJob)
		api.DELETE("/jobs/:id/save", middleware.RequireCandidate(), h.UnsaveJob)
		api.GET("/saved-jobs", middleware.RequireCandidate(), h.SavedJobs)

		api.GET("/my-jobs", middleware.RequireAuth(), h.MyJobs)

		api.GET("/companies", h.ListCompanies)
		api.POST("/companies", middleware.RequireRecruiter(), h.AddCompany)
	}
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
