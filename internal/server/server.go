// Package server contains the HTTP handlers exposing the matching core to
// the presentation layer.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"kindling/internal/config"
	"kindling/internal/middleware"
	"kindling/internal/repository"
	"kindling/internal/service"
	"kindling/internal/session"
	"kindling/internal/store"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	mongo          *store.Mongo
	redis          *redis.Client
	sessions       *session.Manager
	promMiddleware *fiberprometheus.FiberPrometheus

	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeLedger
	matchRepo   repository.MatchRepository

	profileService   *service.ProfileService
	discoveryService *service.DiscoveryService
	matchService     *service.MatchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	mongo, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout())
	if err != nil {
		return nil, fmt.Errorf("document store connection failed: %w", err)
	}

	redisClient := store.NewRedisClient(cfg.RedisURL)

	var blobs store.BlobStore
	if cfg.CloudinaryURL != "" {
		cloudinaryStore, err := store.NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			return nil, fmt.Errorf("blob store init failed: %w", err)
		}
		blobs = cloudinaryStore
	}

	profileRepo := repository.NewProfileRepository(mongo)
	swipeRepo := repository.NewSwipeLedger(mongo)
	matchRepo := repository.NewMatchRepository(mongo)

	srv := newServerWith(cfg, redisClient, profileRepo, swipeRepo, matchRepo, blobs)
	srv.mongo = mongo
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized repositories
// and stores. Used by tests and bootstrap layers.
func NewServerWithDeps(cfg *config.Config, redisClient *redis.Client, profiles repository.ProfileRepository, swipes repository.SwipeLedger, matches repository.MatchRepository, blobs store.BlobStore) *Server {
	return newServerWith(cfg, redisClient, profiles, swipes, matches, blobs)
}

func newServerWith(cfg *config.Config, redisClient *redis.Client, profiles repository.ProfileRepository, swipes repository.SwipeLedger, matches repository.MatchRepository, blobs store.BlobStore) *Server {
	srv := &Server{
		config:         cfg,
		redis:          redisClient,
		promMiddleware: middleware.NewHTTPMetrics(),
		sessions:       session.NewManager(cfg.JWTSecret, cfg.SessionTTL(), redisClient, middleware.Logger),
		profileRepo:    profiles,
		swipeRepo:      swipes,
		matchRepo:      matches,
	}

	srv.profileService = service.NewProfileService(profiles, blobs)
	srv.discoveryService = service.NewDiscoveryService(profiles, swipes)
	srv.matchService = service.NewMatchService(profiles, swipes, matches, middleware.Logger)

	return srv
}

// Sessions exposes the identity provider, mainly for tests that need to
// mint tokens.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.HTTPMetrics(s.promMiddleware))
	}

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 5, 15*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	protected := api.Group("/", middleware.AuthRequired(s.sessions))
	protected.Post("/auth/logout", s.Logout)

	protected.Get("/users/:id", s.GetUserProfile)
	protected.Put("/profile", s.UpdateProfile)
	protected.Post("/images", middleware.RateLimit(s.redis, 20, time.Hour, "image_upload"), s.UploadImage)

	protected.Get("/candidates", s.GetCandidates)
	protected.Post("/swipes", s.CreateSwipe)
	protected.Get("/matches", s.GetMatches)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if s.mongo != nil {
		if err := s.mongo.Ping(ctx); err != nil {
			storeStatus = "unhealthy"
		}
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "ready"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"store":  storeStatus,
		"redis":  redisStatus,
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.mongo != nil {
		return s.mongo.Close(ctx)
	}
	return nil
}
